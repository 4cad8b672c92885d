package shapes

import (
	"errors"
	"log/slog"
)

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	tolerance Tolerance
	ellipsoid EllipsoidClassifier
	logger    *slog.Logger
}

func defaultOptions() engineOptions {
	return engineOptions{
		tolerance: DefaultTolerance,
		ellipsoid: UnimplementedEllipsoid{},
		logger:    nopLogger(),
	}
}

// WithTolerance sets the Tolerance Policy used by the sub-classifier and the
// deduplication engine. Non-positive values make New return an error.
func WithTolerance(t Tolerance) Option {
	return func(o *engineOptions) {
		o.tolerance = t
	}
}

// WithEllipsoidClassifier installs a start/stop sub-classifier. A nil value
// restores the default UnimplementedEllipsoid.
func WithEllipsoidClassifier(ec EllipsoidClassifier) Option {
	return func(o *engineOptions) {
		if ec == nil {
			ec = UnimplementedEllipsoid{}
		}
		o.ellipsoid = ec
	}
}

// WithLogger sets the logger for diagnostics. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		if l == nil {
			l = nopLogger()
		}
		o.logger = l
	}
}

// Engine runs complete classification passes. It holds configuration only;
// each Run owns its Catalog and buckets, so an Engine may be used from
// several goroutines at once.
type Engine struct {
	opts engineOptions
}

// New creates an Engine.
//
// Returns ErrInvalidTolerance when the configured tolerance is not positive.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.tolerance <= 0 {
		return nil, ErrInvalidTolerance
	}
	return &Engine{opts: o}, nil
}

// Tolerance returns the engine's tolerance.
func (e *Engine) Tolerance() Tolerance {
	return e.opts.tolerance
}

// Result is the outcome of one classification run.
type Result struct {
	// Catalog holds every Quadrilateral and EllipsoidCandidate in submission
	// order.
	Catalog *Catalog

	// Buckets holds the deduplicated Rectangles, Diamonds and Inputs.
	Buckets Buckets

	// StartStop holds EllipsoidCandidates recognised by the configured
	// EllipsoidClassifier. Always empty with the default classifier.
	StartStop *KeySet

	// Unclassified lists quadrilaterals that matched no predicate.
	Unclassified []Diagnostic

	// Invalid lists per-region InvalidPolygon errors. They never abort a run.
	Invalid []*InvalidPolygonError

	// Collisions lists catalog inserts that overwrote a different shape with
	// the same key.
	Collisions []Collision
}

// ClassOf returns the final class of key. Bucket priority is Rectangle,
// Diamond, Input, then Start/Stop.
func (r *Result) ClassOf(key ShapeKey) Class {
	switch {
	case r.Buckets.Rectangles.Contains(key):
		return ClassRectangle
	case r.Buckets.Diamonds.Contains(key):
		return ClassDiamond
	case r.Buckets.Inputs.Contains(key):
		return ClassInput
	case r.StartStop.Contains(key):
		return ClassStartStop
	}
	return ClassUnclassified
}

// Run classifies one image's regions.
//
// Regions are processed in order. An invalid region is recorded in
// Result.Invalid and skipped; processing continues with the next region.
// Once all regions are catalogued, quadrilaterals are sub-classified,
// ellipsoid candidates are passed to the EllipsoidClassifier, and the buckets
// are deduplicated.
func (e *Engine) Run(regions []Region) *Result {
	log := e.opts.logger
	res := &Result{Catalog: NewCatalog()}

	for i, reg := range regions {
		rec, ok, err := Classify(reg.Centroid, reg.Vertices)
		if err != nil {
			var ipe *InvalidPolygonError
			if errors.As(err, &ipe) {
				ipe.Index = i
			} else {
				ipe = &InvalidPolygonError{Index: i, Reason: err.Error()}
			}
			log.Warn("invalid polygon skipped", slog.Int("region", i), slog.String("reason", ipe.Reason))
			res.Invalid = append(res.Invalid, ipe)
			continue
		}
		if !ok {
			log.Debug("polygon dropped", slog.Int("region", i), slog.Int("vertices", len(reg.Vertices)))
			continue
		}

		if prev, replaced := res.Catalog.Put(rec); replaced {
			log.Warn("shape key collision",
				slog.String("key", rec.Key.String()),
				slog.Any("previous", prev.Vertices),
				slog.Any("current", rec.Vertices))
			res.Collisions = append(res.Collisions, Collision{
				Key:      rec.Key,
				Previous: prev.Vertices,
				Current:  rec.Vertices.Clone(),
			})
		}
		log.Debug("shape catalogued",
			slog.String("key", rec.Key.String()),
			slog.String("kind", rec.Kind.String()))
	}

	buckets, unclassified := ClassifyQuadrilaterals(res.Catalog, e.opts.tolerance, log)
	res.Unclassified = unclassified
	res.StartStop = classifyEllipsoids(res.Catalog, e.opts.ellipsoid)
	res.Buckets = Deduplicate(buckets, e.opts.tolerance)

	log.Info("classification finished",
		slog.Int("regions", len(regions)),
		slog.Int("catalogued", res.Catalog.Len()),
		slog.Int("rectangles", res.Buckets.Rectangles.Len()),
		slog.Int("diamonds", res.Buckets.Diamonds.Len()),
		slog.Int("inputs", res.Buckets.Inputs.Len()),
		slog.Int("start_stop", res.StartStop.Len()),
		slog.Int("unclassified", len(res.Unclassified)),
		slog.Int("invalid", len(res.Invalid)))

	return res
}
