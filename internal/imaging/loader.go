package imaging

import (
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path,
// together with the file's modification time and size at load time. Load
// checks both on every call and decodes the file again when either changed,
// so an edited flowchart is never answered from a stale copy.
//
// ImageCache is safe for concurrent use by multiple goroutines. All methods use
// appropriate locking to prevent data races.
//
// # Memory Management
//
// An entry is replaced when its file changes and dropped when its file can no
// longer be found. The MCP server keeps one cache for its lifetime, so a
// client that annotates the same flowchart after classifying it reads the
// file once.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/flowchart.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use img...
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

type cachedImage struct {
	img     image.Image
	modTime time.Time
	size    int64
}

func (c cachedImage) matches(fi os.FileInfo) bool {
	return c.modTime.Equal(fi.ModTime()) && c.size == fi.Size()
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached
// or changed since it was cached.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     those of disintegration/imaging: PNG, JPEG, GIF, TIFF and BMP.
//
// Returns:
//   - image.Image: The decoded image. JPEG files are rotated according to their
//     EXIF orientation tag, so photographed flowcharts come out upright.
//   - error: Non-nil if the file cannot be found, opened or decoded.
//
// The image is cached using the exact path string provided. Different paths to the
// same file (e.g., relative vs absolute) will result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		c.evict(path)
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.RLock()
	entry, ok := c.images[path]
	c.mu.RUnlock()
	if ok && entry.matches(fi) {
		return entry.img, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		c.evict(path)
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = cachedImage{img: img, modTime: fi.ModTime(), size: fi.Size()}
	c.mu.Unlock()

	return img, nil
}

func (c *ImageCache) evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// FitWithin scales img down so neither side exceeds maxDim pixels, keeping
// the aspect ratio.
//
// Returns the (possibly unchanged) image and the scale factor applied. Images
// already within the limit, and a maxDim of zero or less, are returned as is
// with scale 1.
func FitWithin(img image.Image, maxDim int) (image.Image, float64) {
	b := img.Bounds()
	if maxDim <= 0 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img, 1
	}

	fitted := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	return fitted, float64(fitted.Bounds().Dx()) / float64(b.Dx())
}
