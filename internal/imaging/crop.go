package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropPadded extracts the interior of a region, shrinking rect by inset
// pixels on every side so that the region's outline stays out of the crop.
//
// Parameters:
//   - img: Source image.
//   - rect: Region bounds in img coordinates. Must lie inside img.
//   - inset: Pixels trimmed from each side. Negative values grow the crop,
//     clamped to the image.
//
// Returns:
//   - *image.NRGBA: The cropped pixels, with bounds starting at (0,0).
//   - error: Non-nil when rect lies outside the image or nothing is left
//     after the inset.
func CropPadded(img image.Image, rect image.Rectangle, inset int) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if !rect.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	inner := rect.Inset(inset).Intersect(bounds)
	if inner.Empty() {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) is empty after inset %d",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y, inset)
	}

	return imaging.Crop(img, inner), nil
}

// Upscale enlarges img by factor using Lanczos resampling. Factors of 1 or
// less return a copy at the original size.
func Upscale(img image.Image, factor float64) *image.NRGBA {
	if factor <= 1 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
