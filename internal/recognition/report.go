package recognition

import (
	"github.com/ironsheep/pic2block/internal/detection"
	"github.com/ironsheep/pic2block/internal/shapes"
)

// Report is the outcome of one recognition run.
type Report struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`

	// Source names the input, usually its file path.
	Source string `json:"source"`

	// Width and Height are the dimensions of the analysed image.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Scale is the resize factor applied before extraction (1 = original).
	Scale float64 `json:"scale"`

	// Tolerance is the pixel tolerance used for classification.
	Tolerance int `json:"tolerance"`

	// Shapes lists every catalogued shape in catalog order.
	Shapes []ShapeReport `json:"shapes"`

	Rectangles *shapes.KeySet `json:"rectangles"`
	Diamonds   *shapes.KeySet `json:"diamonds"`
	Inputs     *shapes.KeySet `json:"inputs"`
	StartStop  *shapes.KeySet `json:"start_stop"`

	// Unclassified lists quadrilaterals no predicate matched.
	Unclassified []shapes.Diagnostic `json:"unclassified"`

	// Invalid lists regions that were skipped.
	Invalid []InvalidRegion `json:"invalid"`

	// Collisions lists shapes that replaced an earlier shape with the same key.
	Collisions []shapes.Collision `json:"collisions"`
}

// ShapeReport describes one catalogued shape.
type ShapeReport struct {
	Key      shapes.ShapeKey  `json:"key"`
	Kind     shapes.Kind      `json:"kind"`
	Class    shapes.Class     `json:"class"`
	Vertices shapes.Polygon   `json:"vertices"`
	Bounds   detection.Bounds `json:"bounds"`

	// Text is the block's text when OCR ran and found any.
	Text string `json:"text,omitempty"`
}

// InvalidRegion describes a region that could not be classified.
type InvalidRegion struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Summary holds the per-class counts of a report.
type Summary struct {
	RunID        string `json:"run_id"`
	Source       string `json:"source"`
	Shapes       int    `json:"shapes"`
	Rectangles   int    `json:"rectangles"`
	Diamonds     int    `json:"diamonds"`
	Inputs       int    `json:"inputs"`
	StartStop    int    `json:"start_stop"`
	Unclassified int    `json:"unclassified"`
	Invalid      int    `json:"invalid"`
}

// Summary returns the report's counts.
func (r *Report) Summary() Summary {
	return Summary{
		RunID:        r.RunID,
		Source:       r.Source,
		Shapes:       len(r.Shapes),
		Rectangles:   r.Rectangles.Len(),
		Diamonds:     r.Diamonds.Len(),
		Inputs:       r.Inputs.Len(),
		StartStop:    r.StartStop.Len(),
		Unclassified: len(r.Unclassified),
		Invalid:      len(r.Invalid),
	}
}

// Shape returns the entry for key.
func (r *Report) Shape(key shapes.ShapeKey) (ShapeReport, bool) {
	for _, s := range r.Shapes {
		if s.Key == key {
			return s, true
		}
	}
	return ShapeReport{}, false
}

func newReport(runID, source string, width, height int, scale float64, tol shapes.Tolerance,
	res *shapes.Result, regions []detection.Region) *Report {

	bounds := catalogBounds(res.Catalog, regions)

	rep := &Report{
		RunID:        runID,
		Source:       source,
		Width:        width,
		Height:       height,
		Scale:        scale,
		Tolerance:    int(tol),
		Shapes:       make([]ShapeReport, 0, res.Catalog.Len()),
		Rectangles:   res.Buckets.Rectangles,
		Diamonds:     res.Buckets.Diamonds,
		Inputs:       res.Buckets.Inputs,
		StartStop:    res.StartStop,
		Unclassified: res.Unclassified,
		Invalid:      make([]InvalidRegion, 0, len(res.Invalid)),
		Collisions:   res.Collisions,
	}
	if rep.Unclassified == nil {
		rep.Unclassified = []shapes.Diagnostic{}
	}
	if rep.Collisions == nil {
		rep.Collisions = []shapes.Collision{}
	}

	for _, rec := range res.Catalog.Records() {
		rep.Shapes = append(rep.Shapes, ShapeReport{
			Key:      rec.Key,
			Kind:     rec.Kind,
			Class:    res.ClassOf(rec.Key),
			Vertices: rec.Vertices,
			Bounds:   bounds[rec.Key],
		})
	}
	for _, e := range res.Invalid {
		rep.Invalid = append(rep.Invalid, InvalidRegion{Index: e.Index, Reason: e.Reason})
	}

	return rep
}

// catalogBounds maps every catalogued key to the bounds of the region that
// produced its record. Regions the classifier dropped never contribute, and
// when several regions share a key the one whose record survived wins.
func catalogBounds(c *shapes.Catalog, regions []detection.Region) map[shapes.ShapeKey]detection.Bounds {
	out := make(map[shapes.ShapeKey]detection.Bounds, c.Len())
	for _, reg := range regions {
		rec, ok, err := shapes.Classify(reg.Centroid, reg.Vertices)
		if err != nil || !ok {
			continue
		}
		if kept, found := c.Get(rec.Key); found && kept.Kind == rec.Kind && kept.Vertices.Equal(rec.Vertices) {
			out[rec.Key] = reg.Bounds
		}
	}
	return out
}
