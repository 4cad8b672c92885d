package detection

import "image"

// bitmap is a binarized image; white[y*width+x] is true for foreground.
type bitmap struct {
	width  int
	height int
	white  []bool
}

func newBitmap(g *image.Gray) bitmap {
	b := g.Bounds()
	m := bitmap{
		width:  b.Dx(),
		height: b.Dy(),
		white:  make([]bool, b.Dx()*b.Dy()),
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.white[y*m.width+x] = g.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0
		}
	}
	return m
}

// component is one 4-connected group of white pixels.
type component struct {
	label          int32
	startX, startY int // first pixel in raster order
	minX, minY     int
	maxX, maxY     int
	area           int
	touchesBorder  bool
}

var fourNeighbours = [4]image.Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// labelComponents assigns a label (starting at 1) to every white pixel.
//
// Returns the label grid (0 for black pixels) and the components in raster
// order of their first pixel.
func labelComponents(m bitmap) ([]int32, []component) {
	labels := make([]int32, len(m.white))
	comps := make([]component, 0)
	next := int32(1)

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			i := y*m.width + x
			if m.white[i] && labels[i] == 0 {
				comps = append(comps, floodFill(m, labels, next, x, y))
				next++
			}
		}
	}

	return labels, comps
}

// floodFill labels the component containing (startX, startY).
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large regions. Pixels are labeled when pushed so none is visited twice.
// Uses 4-connectivity, so regions touching only at a corner stay separate.
func floodFill(m bitmap, labels []int32, label int32, startX, startY int) component {
	c := component{
		label:  label,
		startX: startX, startY: startY,
		minX: startX, minY: startY,
		maxX: startX, maxY: startY,
	}

	labels[startY*m.width+startX] = label
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c.area++
		c.minX = min(c.minX, p.X)
		c.minY = min(c.minY, p.Y)
		c.maxX = max(c.maxX, p.X)
		c.maxY = max(c.maxY, p.Y)
		if p.X == 0 || p.Y == 0 || p.X == m.width-1 || p.Y == m.height-1 {
			c.touchesBorder = true
		}

		for _, d := range fourNeighbours {
			q := p.Add(d)
			if q.X < 0 || q.X >= m.width || q.Y < 0 || q.Y >= m.height {
				continue
			}
			i := q.Y*m.width + q.X
			if labels[i] != 0 || !m.white[i] {
				continue
			}
			labels[i] = label
			stack = append(stack, q)
		}
	}

	return c
}
