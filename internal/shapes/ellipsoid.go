package shapes

// EllipsoidClassifier sub-classifies catalog entries already known to have
// more than ten vertices.
//
// Implementations return ClassStartStop for a recognised terminator or
// ClassUnclassified otherwise. Any other class is treated as unclassified.
type EllipsoidClassifier interface {
	ClassifyEllipsoid(rec ShapeRecord) Class
}

// EllipsoidClassifierFunc adapts a function to EllipsoidClassifier.
type EllipsoidClassifierFunc func(rec ShapeRecord) Class

// ClassifyEllipsoid calls f(rec).
func (f EllipsoidClassifierFunc) ClassifyEllipsoid(rec ShapeRecord) Class {
	return f(rec)
}

// UnimplementedEllipsoid is the default EllipsoidClassifier. No terminator
// predicate exists yet, so every candidate stays unclassified and remains
// visible only through the Catalog.
type UnimplementedEllipsoid struct{}

// ClassifyEllipsoid always returns ClassUnclassified.
func (UnimplementedEllipsoid) ClassifyEllipsoid(ShapeRecord) Class {
	return ClassUnclassified
}

// classifyEllipsoids runs ec over every EllipsoidCandidate in catalog order.
func classifyEllipsoids(c *Catalog, ec EllipsoidClassifier) *KeySet {
	out := &KeySet{}
	for _, rec := range c.OfKind(KindEllipsoidCandidate) {
		if ec.ClassifyEllipsoid(rec) == ClassStartStop {
			out.Add(rec.Key)
		}
	}
	return out
}
