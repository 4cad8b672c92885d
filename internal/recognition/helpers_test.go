package recognition

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pic2block/internal/imaging"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func paint(img *image.RGBA, on func(x, y int) bool) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if on(x, y) {
				img.Set(x, y, color.Black)
			}
		}
	}
}

// createFlowchart draws a process block centred at (200,100), a decision
// centred at (550,100) and an input parallelogram below them.
func createFlowchart() *image.RGBA {
	img := createTestImage(800, 600, color.White)

	// process block, white interior 103..297 x 53..147
	paint(img, func(x, y int) bool {
		outer := x >= 100 && x <= 300 && y >= 50 && y <= 150
		inner := x >= 103 && x <= 297 && y >= 53 && y <= 147
		return outer && !inner
	})

	// decision
	paint(img, func(x, y int) bool {
		d := abs(x-550) + abs(y-100)
		return d <= 80 && d > 76
	})

	// input, top edge shifted 50 pixels right of the bottom edge
	const px, top, width, height, slant, thickness = 100, 300, 200, 120, 50, 4
	paint(img, func(x, y int) bool {
		if y < top || y > top+height {
			return false
		}
		l := px + slant*(top+height-y)/height
		outer := x >= l && x <= l+width
		inner := y >= top+thickness && y <= top+height-thickness &&
			x >= l+thickness && x <= l+width-thickness
		return outer && !inner
	})

	return img
}

// createTerminator draws a single ring centred at (150,150).
func createTerminator() *image.RGBA {
	img := createTestImage(300, 300, color.White)
	paint(img, func(x, y int) bool {
		d2 := (x-150)*(x-150) + (y-150)*(y-150)
		return d2 <= 100*100 && d2 > 96*96
	})
	return img
}

// savePNG writes img to a temporary file and returns its path.
func savePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowchart.png")
	require.NoError(t, imaging.Save(img, path))
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
