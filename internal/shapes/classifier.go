package shapes

const (
	// quadrilateralVertices is the exact vertex count of a Quadrilateral.
	quadrilateralVertices = 4

	// ellipsoidMinVertices is the exclusive lower bound for EllipsoidCandidate.
	// A polygon needs more than this many vertices.
	ellipsoidMinVertices = 10
)

// Region is one detected shape as delivered by the contour extractor.
//
// Centroid is nil when the region's area moment is degenerate. The extractor
// must never substitute (0,0) for an undefined centroid.
type Region struct {
	Centroid *Point  `json:"centroid"`
	Vertices Polygon `json:"vertices"`
}

// Classify tags one polygon by its vertex count.
//
// Returns:
//   - ShapeRecord: the tagged record, keyed by the centroid.
//   - bool: false when the polygon is dropped. Polygons with 1-3 or 5-10
//     vertices receive no catalog entry; this is a deliberate boundary, not a
//     failure.
//   - error: an *InvalidPolygonError (Index -1) when the centroid is nil or
//     the polygon has no vertices.
//
// The boundary for EllipsoidCandidate is strict: 11 vertices qualify, 10 do not.
func Classify(centroid *Point, vertices Polygon) (ShapeRecord, bool, error) {
	if centroid == nil {
		return ShapeRecord{}, false, &InvalidPolygonError{Index: -1, Reason: "centroid undefined"}
	}
	if len(vertices) == 0 {
		return ShapeRecord{}, false, &InvalidPolygonError{Index: -1, Reason: "no vertices"}
	}

	var kind Kind
	switch n := len(vertices); {
	case n == quadrilateralVertices:
		kind = KindQuadrilateral
	case n > ellipsoidMinVertices:
		kind = KindEllipsoidCandidate
	default:
		return ShapeRecord{}, false, nil
	}

	return ShapeRecord{
		Key:      KeyOf(*centroid),
		Vertices: vertices.Clone(),
		Kind:     kind,
	}, true, nil
}
