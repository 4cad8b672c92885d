package detection

import (
	"image"
	"image/color"
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

// paint sets every pixel of img for which on(x, y) is true to black
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

// drawRectOutline draws a rectangle outline covering [x1..x2]×[y1..y2]
// with the given stroke thickness. The white interior starts thickness
// pixels inside.
func drawRectOutline(img *image.RGBA, x1, y1, x2, y2, thickness int) {
	paint(img, func(x, y int) bool {
		inOuter := x >= x1 && x <= x2 && y >= y1 && y <= y2
		inInner := x >= x1+thickness && x <= x2-thickness && y >= y1+thickness && y <= y2-thickness
		return inOuter && !inInner
	})
}

// drawDiamondOutline draws the outline of |dx|+|dy| <= r, leaving
// |dx|+|dy| <= r-thickness white.
func drawDiamondOutline(img *image.RGBA, cx, cy, r, thickness int) {
	paint(img, func(x, y int) bool {
		d := abs(x-cx) + abs(y-cy)
		return d <= r && d > r-thickness
	})
}

// drawParallelogramOutline draws a parallelogram with horizontal top and
// bottom edges. The top edge is shifted right by slant pixels relative to the
// bottom edge.
func drawParallelogramOutline(img *image.RGBA, x, top, width, height, slant, thickness int) {
	left := func(y int) int {
		return x + slant*(top+height-y)/height
	}
	paint(img, func(px, py int) bool {
		if py < top || py > top+height {
			return false
		}
		l := left(py)
		inOuter := px >= l && px <= l+width
		inInner := py >= top+thickness && py <= top+height-thickness &&
			px >= l+thickness && px <= l+width-thickness
		return inOuter && !inInner
	})
}

// drawCircleOutline draws a ring of the given thickness around (cx, cy).
func drawCircleOutline(img *image.RGBA, cx, cy, r, thickness int) {
	paint(img, func(x, y int) bool {
		d2 := (x-cx)*(x-cx) + (y-cy)*(y-cy)
		inner := r - thickness
		return d2 <= r*r && d2 > inner*inner
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
