package detection

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/pic2block/internal/shapes"
)

const (
	// DefaultThreshold is the binarization level. Pixels at or above it are
	// white, which matches a "> 127" binary threshold.
	DefaultThreshold uint8 = 128

	// DefaultEpsilon is the polygon approximation tolerance as a fraction of
	// the boundary length.
	DefaultEpsilon = 0.01

	// DefaultMinArea is the smallest region, in pixels, that is reported.
	DefaultMinArea = 100
)

var (
	// ErrEmptyImage is returned for images with no pixels.
	ErrEmptyImage = errors.New("detection: empty image")

	// ErrInvalidOptions is returned when Options are out of range.
	ErrInvalidOptions = errors.New("detection: invalid options")
)

// Options controls region extraction. Zero-valued fields take the package
// defaults.
type Options struct {
	// Threshold is the binarization level (1-255).
	Threshold uint8

	// Epsilon is the Douglas-Peucker tolerance as a fraction of the traced
	// boundary length. Must lie in (0, 1).
	Epsilon float64

	// MinArea is the minimum component size in pixels.
	MinArea int

	// Logger receives per-region debug output. Nil discards it.
	Logger *slog.Logger
}

// DefaultOptions returns the extraction defaults.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Epsilon:   DefaultEpsilon,
		MinArea:   DefaultMinArea,
	}
}

func (o Options) withDefaults() (Options, error) {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Epsilon == 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.MinArea == 0 {
		o.MinArea = DefaultMinArea
	}
	if o.Epsilon < 0 || o.Epsilon >= 1 {
		return o, fmt.Errorf("%w: epsilon %v outside (0, 1)", ErrInvalidOptions, o.Epsilon)
	}
	if o.MinArea < 0 {
		return o, fmt.Errorf("%w: negative minimum area %d", ErrInvalidOptions, o.MinArea)
	}
	if o.Logger == nil {
		o.Logger = slog.New(discardHandler{})
	}
	return o, nil
}

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// The coordinate convention follows standard image bounds:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Rect converts b to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Region is one enclosed area found in an image.
type Region struct {
	// Centroid is the boundary's area centroid, or nil when the boundary
	// encloses no area.
	Centroid *shapes.Point `json:"centroid"`

	// Vertices is the approximated outline in normalized winding.
	Vertices shapes.Polygon `json:"vertices"`

	// Bounds is the bounding box of the region's pixels.
	Bounds Bounds `json:"bounds"`

	// Area is the number of pixels in the region.
	Area int `json:"area"`
}

// Shape returns the region in the form consumed by the shapes engine.
func (r Region) Shape() shapes.Region {
	return shapes.Region{Centroid: r.Centroid, Vertices: r.Vertices}
}

// Shapes converts a batch of regions, preserving order.
func Shapes(regions []Region) []shapes.Region {
	out := make([]shapes.Region, len(regions))
	for i, r := range regions {
		out[i] = r.Shape()
	}
	return out
}

// ExtractRegions finds every enclosed light region of img.
//
// Parameters:
//   - img: Source image. Any color model; it is converted to grayscale.
//   - opts: Extraction options. Zero fields take the defaults.
//
// Returns:
//   - []Region: Regions in raster order of their first pixel.
//   - error: ErrEmptyImage for an image without pixels, ErrInvalidOptions
//     for out-of-range options.
//
// # Algorithm
//
//  1. Grayscale and binary threshold at opts.Threshold
//  2. 4-connected labeling of white pixels
//  3. Border-touching and undersized components are discarded
//  4. Moore-neighbour boundary trace of each remaining component
//  5. Centroid from the boundary's area moments
//  6. Douglas-Peucker approximation and winding normalization
//
// A region whose approximation cannot be converted to pixel coordinates is
// still returned, without vertices, so the caller can report it.
func ExtractRegions(img image.Image, opts Options) ([]Region, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	origin := img.Bounds().Min
	gray := effect.Grayscale(img)
	binary := segment.Threshold(gray, opts.Threshold)
	mask := newBitmap(binary)

	labels, comps := labelComponents(mask)
	regions := make([]Region, 0, len(comps))

	for _, comp := range comps {
		if comp.touchesBorder {
			continue
		}
		if comp.area < opts.MinArea {
			opts.Logger.Debug("region below minimum area",
				slog.Int("area", comp.area),
				slog.Int("x", comp.startX+origin.X),
				slog.Int("y", comp.startY+origin.Y))
			continue
		}

		boundary := traceBoundary(labels, mask.width, mask.height, comp.label, comp.startX, comp.startY)
		boundary = translate(boundary, origin)

		region := Region{
			Centroid: centroidOf(boundary),
			Bounds: Bounds{
				X1: comp.minX + origin.X,
				Y1: comp.minY + origin.Y,
				X2: comp.maxX + origin.X + 1,
				Y2: comp.maxY + origin.Y + 1,
			},
			Area: comp.area,
		}

		vertices, err := approximate(boundary, opts.Epsilon)
		if err != nil {
			opts.Logger.Warn("region approximation failed",
				slog.Int("x", region.Bounds.X1),
				slog.Int("y", region.Bounds.Y1),
				slog.Any("error", err))
		} else {
			region.Vertices = vertices
		}

		opts.Logger.Debug("region extracted",
			slog.Any("centroid", region.Centroid),
			slog.Int("vertices", len(region.Vertices)),
			slog.Int("area", region.Area))
		regions = append(regions, region)
	}

	return regions, nil
}

func translate(pts []image.Point, by image.Point) []image.Point {
	if by == (image.Point{}) {
		return pts
	}
	for i := range pts {
		pts[i] = pts[i].Add(by)
	}
	return pts
}
