package detection

import "image"

// Moore neighbourhood in clockwise screen order, starting east.
var mooreOffsets = [8]image.Point{
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
}

func mooreIndex(d image.Point) int {
	for i, o := range mooreOffsets {
		if o == d {
			return i
		}
	}
	return 0
}

// traceBoundary returns the outer boundary of the component labeled label as
// a closed chain of pixel coordinates (the closing point is not repeated).
//
// (sx, sy) must be the component's first pixel in raster order, so its west
// neighbour is known to lie outside the component. The trace runs clockwise on
// screen and stops by Jacob's criterion: when the start pixel is about to be
// left the same way it was left the first time.
func traceBoundary(labels []int32, w, h int, label int32, sx, sy int) []image.Point {
	inside := func(p image.Point) bool {
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
			return false
		}
		return labels[p.Y*w+p.X] == label
	}

	start := image.Pt(sx, sy)
	pts := []image.Point{start}
	cur := start
	back := image.Pt(sx-1, sy)
	maxSteps := 4*w*h + 8

	for steps := 0; steps < maxSteps; steps++ {
		next, nextBack, ok := nextBoundaryPixel(inside, cur, back)
		if !ok {
			// isolated pixel
			break
		}
		if cur == start && len(pts) > 1 && next == pts[1] {
			break
		}
		pts = append(pts, next)
		cur, back = next, nextBack
	}

	if len(pts) > 1 && pts[len(pts)-1] == start {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// nextBoundaryPixel sweeps the Moore neighbourhood of cur clockwise, starting
// just after the backtrack pixel. It returns the first pixel inside the
// component and the outside pixel examined immediately before it, which
// becomes the next backtrack.
func nextBoundaryPixel(inside func(image.Point) bool, cur, back image.Point) (image.Point, image.Point, bool) {
	start := mooreIndex(back.Sub(cur)) + 1
	prev := back
	for k := 0; k < len(mooreOffsets); k++ {
		p := cur.Add(mooreOffsets[(start+k)%len(mooreOffsets)])
		if inside(p) {
			return p, prev, true
		}
		prev = p
	}
	return image.Point{}, image.Point{}, false
}
