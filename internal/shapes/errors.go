package shapes

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolygon indicates a region whose centroid is undefined or
	// whose vertex sequence is empty. The region is skipped, never fabricated.
	ErrInvalidPolygon = errors.New("shapes: invalid polygon")

	// ErrInvalidTolerance indicates a non-positive tolerance.
	ErrInvalidTolerance = errors.New("shapes: tolerance must be positive")
)

// InvalidPolygonError records why one region of a batch was rejected.
// It unwraps to ErrInvalidPolygon.
type InvalidPolygonError struct {
	// Index is the region's position in the submitted batch, or -1 when the
	// polygon was classified on its own.
	Index int

	// Reason is a short human-readable cause ("centroid undefined", ...).
	Reason string
}

func (e *InvalidPolygonError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %s", ErrInvalidPolygon, e.Reason)
	}
	return fmt.Sprintf("%v: region %d: %s", ErrInvalidPolygon, e.Index, e.Reason)
}

func (e *InvalidPolygonError) Unwrap() error {
	return ErrInvalidPolygon
}
