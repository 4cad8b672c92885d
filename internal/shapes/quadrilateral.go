package shapes

import "log/slog"

// Class is the semantic flowchart symbol assigned to a shape.
type Class int

const (
	// ClassUnclassified means no predicate matched.
	ClassUnclassified Class = iota

	// ClassRectangle is a process block.
	ClassRectangle

	// ClassDiamond is a decision block.
	ClassDiamond

	// ClassInput is an input/output parallelogram.
	ClassInput

	// ClassStartStop is a terminator. Only an EllipsoidClassifier assigns it.
	ClassStartStop
)

func (c Class) String() string {
	switch c {
	case ClassRectangle:
		return "Rectangle"
	case ClassDiamond:
		return "Diamond"
	case ClassInput:
		return "Input"
	case ClassStartStop:
		return "Start/Stop"
	default:
		return "Unclassified"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Buckets holds the keys assigned to each quadrilateral class. Before
// Deduplicate a key may sit in several buckets; afterwards it sits in at most
// one, with Rectangles and Diamonds taking priority over Inputs.
type Buckets struct {
	Rectangles *KeySet `json:"rectangles"`
	Diamonds   *KeySet `json:"diamonds"`
	Inputs     *KeySet `json:"inputs"`
}

// NewBuckets returns three empty buckets.
func NewBuckets() Buckets {
	return Buckets{
		Rectangles: &KeySet{},
		Diamonds:   &KeySet{},
		Inputs:     &KeySet{},
	}
}

// Clone returns buckets that share no state with b.
func (b Buckets) Clone() Buckets {
	return Buckets{
		Rectangles: b.Rectangles.Clone(),
		Diamonds:   b.Diamonds.Clone(),
		Inputs:     b.Inputs.Clone(),
	}
}

// Equal reports whether every bucket holds the same keys in the same order.
func (b Buckets) Equal(o Buckets) bool {
	return b.Rectangles.Equal(o.Rectangles) &&
		b.Diamonds.Equal(o.Diamonds) &&
		b.Inputs.Equal(o.Inputs)
}

// Diagnostic describes a quadrilateral that matched none of the predicates.
// It is dropped from every bucket.
type Diagnostic struct {
	Key      ShapeKey `json:"key"`
	Vertices Polygon  `json:"vertices"`
}

// MatchQuadrilateral applies the quadrilateral predicates to v in priority
// order and returns the first match.
//
// With near(a, b) := |a-b| < t:
//
//  1. Rectangle: near(v0.x, v1.x) ∧ near(v1.y, v2.y) ∧ near(v2.x, v3.x) ∧ near(v0.y, v3.y)
//  2. Diamond:   near(v0.x, v2.x) ∧ near(v1.y, v3.y)
//  3. Input:     (near(v0.y, v3.y) ∧ near(v1.y, v2.y)) ∨ all four x pairwise distinct
//
// The second Input alternative is a loose fallback that accepts most skewed
// quadrilaterals. It is a known source of false positives, and the reason
// Deduplicate exists.
//
// v must hold exactly four vertices; any other length is Unclassified.
func MatchQuadrilateral(v Polygon, t Tolerance) Class {
	if len(v) != quadrilateralVertices {
		return ClassUnclassified
	}
	v0, v1, v2, v3 := v[0], v[1], v[2], v[3]

	switch {
	case t.Near(v0.X, v1.X) && t.Near(v1.Y, v2.Y) && t.Near(v2.X, v3.X) && t.Near(v0.Y, v3.Y):
		return ClassRectangle
	case t.Near(v0.X, v2.X) && t.Near(v1.Y, v3.Y):
		return ClassDiamond
	case t.Near(v0.Y, v3.Y) && t.Near(v1.Y, v2.Y):
		return ClassInput
	case distinctX(v0, v1, v2, v3):
		return ClassInput
	}
	return ClassUnclassified
}

func distinctX(pts ...Point) bool {
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if pts[i].X == pts[j].X {
				return false
			}
		}
	}
	return true
}

// ClassifyQuadrilaterals assigns every Quadrilateral in the catalog to a
// bucket, scanning in catalog order. Each bucket keeps a key once, at its
// first position. Cross-bucket duplicates are left for Deduplicate.
//
// Quadrilaterals matching no predicate are logged at warn level and returned
// as diagnostics. A nil logger discards output.
func ClassifyQuadrilaterals(c *Catalog, t Tolerance, logger *slog.Logger) (Buckets, []Diagnostic) {
	if logger == nil {
		logger = nopLogger()
	}
	b := NewBuckets()
	var unclassified []Diagnostic

	for _, rec := range c.OfKind(KindQuadrilateral) {
		switch cls := MatchQuadrilateral(rec.Vertices, t); cls {
		case ClassRectangle:
			b.Rectangles.Add(rec.Key)
		case ClassDiamond:
			b.Diamonds.Add(rec.Key)
		case ClassInput:
			b.Inputs.Add(rec.Key)
		default:
			logger.Warn("unclassified quadrilateral",
				slog.String("key", rec.Key.String()),
				slog.Any("vertices", rec.Vertices))
			unclassified = append(unclassified, Diagnostic{Key: rec.Key, Vertices: rec.Vertices.Clone()})
			continue
		}
		logger.Debug("quadrilateral classified", slog.String("key", rec.Key.String()))
	}

	return b, unclassified
}
