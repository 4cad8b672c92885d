package ocr

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/pic2block/internal/imaging"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

const (
	// regionInset is trimmed from every side of a region before OCR so the
	// block outline is not read as characters.
	regionInset = 4

	// minTextHeight is the crop height below which the crop is enlarged.
	// Tesseract recognizes poorly below roughly 30px cap height.
	minTextHeight = 60
	maxUpscale    = 4.0
)

// ErrClosed is returned by a Reader after Close.
var ErrClosed = errors.New("ocr: reader closed")

// ExtractTextFromRegion performs OCR on the interior of one region of an image.
//
// Parameters:
//   - img: The source image (already loaded into memory).
//   - rect: Region bounds in img coordinates.
//   - language: Tesseract language code (e.g., "eng"). Empty means DefaultLanguage.
//
// Returns:
//   - string: The recognized text with runs of whitespace collapsed to single
//     spaces. Empty when the region holds no text.
//   - error: Non-nil if cropping, encoding, or OCR fails.
//
// # Implementation Details
//
//  1. Crops rect shrunk by a few pixels, dropping the outline
//  2. Enlarges small crops (Lanczos) for better recognition
//  3. Encodes the crop as PNG in memory
//  4. Runs Tesseract in single-block page segmentation mode
func ExtractTextFromRegion(img image.Image, rect image.Rectangle, language string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := configure(client, language); err != nil {
		return "", err
	}
	return readRegion(client, img, rect)
}

// Reader extracts text from many regions with one Tesseract client.
//
// Reader is safe for concurrent use; calls are serialized.
type Reader struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewReader creates a Reader for language. Empty means DefaultLanguage.
//
// Returns an error if Tesseract cannot be initialised for the language.
func NewReader(language string) (*Reader, error) {
	client := gosseract.NewClient()
	if err := configure(client, language); err != nil {
		client.Close()
		return nil, err
	}
	return &Reader{client: client}, nil
}

// ReadText returns the text inside rect. See ExtractTextFromRegion.
func (r *Reader) ReadText(img image.Image, rect image.Rectangle) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return "", ErrClosed
	}
	return readRegion(r.client, img, rect)
}

// Close releases the Tesseract client. Further ReadText calls fail with
// ErrClosed.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

// Available reports whether Tesseract can be initialised and run for
// language. It returns the underlying error when it cannot.
func Available(language string) error {
	client := gosseract.NewClient()
	defer client.Close()

	if err := configure(client, language); err != nil {
		return err
	}

	blank := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range blank.Pix {
		blank.Pix[i] = 0xff
	}
	data, err := imaging.EncodePNG(blank)
	if err != nil {
		return err
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return fmt.Errorf("tesseract unavailable: %w", err)
	}
	if _, err := client.Text(); err != nil {
		return fmt.Errorf("tesseract unavailable: %w", err)
	}
	return nil
}

func configure(client *gosseract.Client, language string) error {
	if language == "" {
		language = DefaultLanguage
	}
	if err := client.SetLanguage(language); err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return nil
}

func readRegion(client *gosseract.Client, img image.Image, rect image.Rectangle) (string, error) {
	crop, err := imaging.CropPadded(img, rect, regionInset)
	if err != nil {
		return "", fmt.Errorf("failed to crop region: %w", err)
	}

	var prepared image.Image = crop
	if h := crop.Bounds().Dy(); h < minTextHeight {
		factor := min(float64(minTextHeight)/float64(h), maxUpscale)
		prepared = imaging.Upscale(crop, factor)
	}

	data, err := imaging.EncodePNG(prepared)
	if err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return normalizeText(text), nil
}

// normalizeText collapses all whitespace, including line breaks inside a
// block, to single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
