package shapes

import "fmt"

// DefaultTolerance is the pixel distance below which two coordinates are
// treated as equal.
const DefaultTolerance Tolerance = 5

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Polygon is an ordered vertex sequence describing one approximated contour.
// Order is significant; see the package documentation on winding.
type Polygon []Point

// Clone returns a copy of the polygon that shares no memory with p.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Equal reports whether both polygons have the same vertices in the same order.
func (p Polygon) Equal(q Polygon) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// ShapeKey identifies a shape by its centroid.
//
// Two distinct shapes whose centroids coincide exactly share a key; the later
// one overwrites the earlier in the Catalog (reported as a Collision).
type ShapeKey struct {
	X int
	Y int
}

// KeyOf returns the key for a shape centred at c.
func KeyOf(c Point) ShapeKey {
	return ShapeKey{X: c.X, Y: c.Y}
}

// Centroid returns the centroid the key was derived from.
func (k ShapeKey) Centroid() Point {
	return Point{X: k.X, Y: k.Y}
}

// String returns the stable textual form, e.g. "c.x:200, c.y:200".
func (k ShapeKey) String() string {
	return fmt.Sprintf("c.x:%d, c.y:%d", k.X, k.Y)
}

// MarshalText implements encoding.TextMarshaler so keys serialize (including
// as JSON object keys) in their string form.
func (k ShapeKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Tolerance is the pixel threshold for approximate coordinate equality.
type Tolerance int

// Near reports whether |a-b| < t. A difference equal to t is not near.
func (t Tolerance) Near(a, b int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < int(t)
}
