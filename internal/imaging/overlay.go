package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay is one annotated outline drawn by DrawOverlay.
type Overlay struct {
	// Outline is the closed polygon to stroke. The last vertex connects back
	// to the first.
	Outline []image.Point

	// Center is marked with a small filled square.
	Center image.Point

	// Label is printed next to Center. Empty labels are skipped.
	Label string

	// Color strokes the outline and the center mark.
	Color color.Color
}

const (
	strokeWidth = 2
	centerMark  = 3 // half-size of the center square
	labelPad    = 2
)

// DrawOverlay renders overlays on a copy of img.
//
// Outlines are stroked strokeWidth pixels wide, each center gets a filled
// square, and labels are drawn in the 7x13 basic font on a lightened
// background of the overlay color. Drawing is clipped to the image.
func DrawOverlay(img image.Image, overlays []Overlay) *image.NRGBA {
	// imaging.Clone rebases the copy to (0,0)
	origin := img.Bounds().Min
	dst := imaging.Clone(img)

	for _, o := range overlays {
		col := o.Color
		if col == nil {
			col = color.Black
		}

		n := len(o.Outline)
		for i := 0; i < n; i++ {
			a := o.Outline[i].Sub(origin)
			b := o.Outline[(i+1)%n].Sub(origin)
			drawLine(dst, a, b, col)
		}

		c := o.Center.Sub(origin)
		fillRect(dst, image.Rect(c.X-centerMark, c.Y-centerMark, c.X+centerMark+1, c.Y+centerMark+1), col)

		if o.Label != "" {
			drawLabel(dst, c.X+centerMark+labelPad, c.Y-centerMark, o.Label, col)
		}
	}

	return dst
}

// drawLine draws a thick line using Bresenham's algorithm.
func drawLine(img draw.Image, a, b image.Point, col color.Color) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	err := dx + dy
	x, y := a.X, a.Y
	for {
		fillRect(img, image.Rect(x, y, x+strokeWidth, y+strokeWidth), col)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func fillRect(img draw.Image, r image.Rectangle, col color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// drawLabel draws text with its top-left corner at (x, y) on a background
// box blended three quarters of the way from col to white.
func drawLabel(img draw.Image, x, y int, text string, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	metrics := face.Metrics()
	height := metrics.Height.Ceil()

	fillRect(img, image.Rect(x-labelPad, y-labelPad, x+width+labelPad, y+height+labelPad), labelBackground(col))

	d.Dot = fixed.Point26_6{
		X: fixed.I(x),
		Y: fixed.I(y) + metrics.Ascent,
	}
	d.DrawString(text)
}

func labelBackground(col color.Color) color.Color {
	c, ok := colorful.MakeColor(col)
	if !ok {
		return color.White
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.75).Clamped()
}

// ParseHexColor parses a hex color string like "#FF0000" or "#FF000080".
// The leading '#' is optional.
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	var alpha uint8 = 255
	switch len(hex) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()

	// color.RGBA is alpha-premultiplied
	return color.RGBA{
		R: uint8(uint16(r) * uint16(alpha) / 255),
		G: uint8(uint16(g) * uint16(alpha) / 255),
		B: uint8(uint16(b) * uint16(alpha) / 255),
		A: alpha,
	}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
