package recognition

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ironsheep/pic2block/internal/config"
	"github.com/ironsheep/pic2block/internal/detection"
	"github.com/ironsheep/pic2block/internal/imaging"
	"github.com/ironsheep/pic2block/internal/ocr"
	"github.com/ironsheep/pic2block/internal/shapes"
)

// TextReader reads the text inside a rectangle of an image.
//
// *ocr.Reader satisfies it.
type TextReader interface {
	ReadText(img image.Image, rect image.Rectangle) (string, error)
}

// TextReaderFactory opens a TextReader for a language. If the returned
// reader also implements io.Closer it is closed when the run ends.
type TextReaderFactory func(language string) (TextReader, error)

// Options controls one recognition run.
type Options struct {
	// Tolerance is the pixel tolerance for classification and deduplication.
	Tolerance shapes.Tolerance

	// Extraction configures region extraction.
	Extraction detection.Options

	// MaxDimension, when positive, shrinks larger images before extraction.
	MaxDimension int

	// OCR enables reading the text of every classified block.
	OCR bool

	// Language is the OCR language. Empty means ocr.DefaultLanguage.
	Language string
}

// DefaultOptions returns the built-in run settings.
func DefaultOptions() Options {
	return Options{
		Tolerance:  shapes.DefaultTolerance,
		Extraction: detection.DefaultOptions(),
		Language:   ocr.DefaultLanguage,
	}
}

// OptionsFromConfig converts loaded configuration into run options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Tolerance: shapes.Tolerance(cfg.Tolerance),
		Extraction: detection.Options{
			Threshold: uint8(cfg.Threshold),
			Epsilon:   cfg.Epsilon,
			MinArea:   cfg.MinRegionArea,
		},
		MaxDimension: cfg.MaxDimension,
		OCR:          cfg.OCR,
		Language:     cfg.OCRLanguage,
	}
}

// Recognizer runs the recognition pipeline. It is safe for concurrent use;
// every run builds its own engine and report.
type Recognizer struct {
	cache     *imaging.ImageCache
	logger    *slog.Logger
	ellipsoid shapes.EllipsoidClassifier
	newReader TextReaderFactory
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recognizer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEllipsoidClassifier installs a start/stop sub-classifier.
func WithEllipsoidClassifier(ec shapes.EllipsoidClassifier) Option {
	return func(r *Recognizer) {
		r.ellipsoid = ec
	}
}

// WithTextReaderFactory replaces the Tesseract-backed reader.
func WithTextReaderFactory(f TextReaderFactory) Option {
	return func(r *Recognizer) {
		if f != nil {
			r.newReader = f
		}
	}
}

// New creates a Recognizer.
func New(opts ...Option) *Recognizer {
	r := &Recognizer{
		cache:     imaging.NewImageCache(),
		logger:    slog.New(discardHandler{}),
		newReader: tesseractReader,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func tesseractReader(language string) (TextReader, error) {
	return ocr.NewReader(language)
}

// LoadImage reads path through the cache and fits it within maxDim.
//
// Returns the image to analyse and the applied scale factor.
func (r *Recognizer) LoadImage(path string, maxDim int) (image.Image, float64, error) {
	img, err := r.cache.Load(path)
	if err != nil {
		return nil, 0, fmt.Errorf("recognition: %w", err)
	}
	fitted, scale := imaging.FitWithin(img, maxDim)
	return fitted, scale, nil
}

// Recognize loads the image at path and runs the pipeline on it.
func (r *Recognizer) Recognize(path string, opts Options) (*Report, error) {
	img, scale, err := r.LoadImage(path, opts.MaxDimension)
	if err != nil {
		return nil, err
	}
	rep, err := r.RecognizeImage(img, path, opts)
	if err != nil {
		return nil, err
	}
	rep.Scale = scale
	return rep, nil
}

// RecognizeImage runs the pipeline on an already loaded image. The image is
// analysed at its own size; Options.MaxDimension is ignored.
//
// Returns an error when the image is empty, extraction options are invalid,
// or the tolerance is not positive. Invalid regions, unclassified shapes and
// OCR failures are reported, not returned.
func (r *Recognizer) RecognizeImage(img image.Image, source string, opts Options) (*Report, error) {
	runID := uuid.NewString()
	log := r.logger.With(slog.String("run_id", runID))

	engine, err := shapes.New(
		shapes.WithTolerance(opts.Tolerance),
		shapes.WithEllipsoidClassifier(r.ellipsoid),
		shapes.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("recognition: %w", err)
	}

	ext := opts.Extraction
	ext.Logger = log
	regions, err := detection.ExtractRegions(img, ext)
	if err != nil {
		return nil, fmt.Errorf("recognition: %s: %w", source, err)
	}

	res := engine.Run(detection.Shapes(regions))

	b := img.Bounds()
	rep := newReport(runID, source, b.Dx(), b.Dy(), 1, opts.Tolerance, res, regions)

	if opts.OCR {
		r.readTexts(log, img, rep, opts.Language)
	}

	log.Info("recognition finished",
		slog.String("source", source),
		slog.Int("regions", len(regions)),
		slog.Int("shapes", len(rep.Shapes)))

	return rep, nil
}

// readTexts fills in the text of every classified shape.
func (r *Recognizer) readTexts(log *slog.Logger, img image.Image, rep *Report, language string) {
	if language == "" {
		language = ocr.DefaultLanguage
	}
	reader, err := r.newReader(language)
	if err != nil {
		log.Warn("text extraction unavailable", slog.String("language", language), slog.Any("error", err))
		return
	}
	if c, ok := reader.(io.Closer); ok {
		defer c.Close()
	}

	for i := range rep.Shapes {
		s := &rep.Shapes[i]
		if s.Class == shapes.ClassUnclassified {
			continue
		}
		text, err := reader.ReadText(img, s.Bounds.Rect())
		if err != nil {
			log.Warn("text extraction failed", slog.String("key", s.Key.String()), slog.Any("error", err))
			if errors.Is(err, ocr.ErrClosed) {
				return
			}
			continue
		}
		s.Text = text
		log.Debug("block text", slog.String("key", s.Key.String()), slog.String("text", text))
	}
}
