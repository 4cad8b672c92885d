package detection

import (
	"fmt"
	"image"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"

	"github.com/ironsheep/pic2block/internal/shapes"
)

// centroidOf returns the area centroid of the closed polygon pts, truncated
// toward zero, or nil when the polygon encloses no area.
//
// The moments are accumulated in integers so that a centroid lying exactly on
// a pixel is never truncated to its neighbour by rounding error.
func centroidOf(pts []image.Point) *shapes.Point {
	if len(pts) < 3 {
		return nil
	}

	// a2 = 2*m00, sx = 6*m10, sy = 6*m01
	var a2, sx, sy int64
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		cross := int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
		a2 += cross
		sx += int64(p.X+q.X) * cross
		sy += int64(p.Y+q.Y) * cross
	}
	if a2 == 0 {
		return nil
	}

	c := shapes.Pt(int(sx/(3*a2)), int(sy/(3*a2)))
	return &c
}

// approximate simplifies a traced boundary with Douglas-Peucker, using
// epsilon times the boundary length as the distance threshold, and returns
// the vertices in normalized winding.
func approximate(boundary []image.Point, epsilon float64) (shapes.Polygon, error) {
	if len(boundary) == 0 {
		return nil, nil
	}

	ring := make(orb.Ring, 0, len(boundary)+1)
	for _, p := range boundary {
		ring = append(ring, orb.Point{float64(p.X), float64(p.Y)})
	}
	ring = append(ring, ring[0])

	threshold := epsilon * planar.Length(ring)
	ls := orb.LineString(ring)
	simplified, ok := simplify.DouglasPeucker(threshold).Simplify(ls.Clone()).(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("detection: unexpected simplification result: %w", shapes.ErrInvalidPolygon)
	}

	open := orb.Ring(simplified)
	if len(open) > 1 && open[0].Equal(open[len(open)-1]) {
		open = open[:len(open)-1]
	}

	return toPolygon(normalizeWinding(open))
}

// normalizeWinding reorders an open ring (closing point omitted) so that it
// runs counter-clockwise on screen, starting at the top-most, left-most
// vertex.
//
// With y pointing down, a counter-clockwise screen winding has a negative
// shoelace sum, which orb reports as orb.CW.
func normalizeWinding(r orb.Ring) orb.Ring {
	if len(r) < 3 {
		return r
	}

	out := make(orb.Ring, len(r))
	copy(out, r)
	if out.Orientation() == orb.CCW {
		out.Reverse()
	}

	first := 0
	for i, p := range out {
		f := out[first]
		if p[1] < f[1] || (p[1] == f[1] && p[0] < f[0]) {
			first = i
		}
	}

	rotated := make(orb.Ring, 0, len(out))
	rotated = append(rotated, out[first:]...)
	rotated = append(rotated, out[:first]...)
	return rotated
}

// toPolygon rounds ring vertices to pixel coordinates. Non-finite or
// out-of-range coordinates wrap shapes.ErrInvalidPolygon.
func toPolygon(r orb.Ring) (shapes.Polygon, error) {
	out := make(shapes.Polygon, len(r))
	for i, p := range r {
		x, err := toPixel(p[0])
		if err != nil {
			return nil, fmt.Errorf("detection: vertex %d x: %w", i, err)
		}
		y, err := toPixel(p[1])
		if err != nil {
			return nil, fmt.Errorf("detection: vertex %d y: %w", i, err)
		}
		out[i] = shapes.Pt(x, y)
	}
	return out, nil
}

func toPixel(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("coordinate %v: %w", v, shapes.ErrInvalidPolygon)
	}
	return int(math.Round(v)), nil
}
