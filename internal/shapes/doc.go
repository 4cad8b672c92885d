// Package shapes classifies flowchart symbols from approximated contour
// polygons and resolves duplicate detections into a clean shape catalog.
//
// The package is the decision core of pic2block. It never touches pixels:
// an upstream extractor (see internal/detection) supplies, for every detected
// region, a centroid and an approximated polygon. This package decides what
// the region is.
//
// # Pipeline
//
// One classification run over one image proceeds in four phases:
//
//  1. Classify: each polygon is tagged by vertex count. Four vertices make a
//     Quadrilateral, more than ten an EllipsoidCandidate ("Start/Stop").
//     Anything else is dropped. Tagged shapes are stored in a Catalog keyed
//     by their centroid.
//  2. ClassifyQuadrilaterals: every Quadrilateral is tested against ordered
//     geometric predicates (Rectangle, Diamond, Input) and its key appended to
//     the matching bucket.
//  3. The EllipsoidClassifier extension point runs over EllipsoidCandidates.
//     The default implementation leaves them unclassified.
//  4. Deduplicate: keys already claimed by Rectangles or Diamonds are removed
//     from Inputs, then Input keys whose x-coordinates fall within the
//     tolerance of an earlier Input are merged into that earlier key.
//
// Engine.Run performs all four phases and returns a Result.
//
// # Coordinate System
//
// Coordinates are integer pixels with the origin at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Winding
//
// The quadrilateral predicates index vertices positionally (v0..v3). They
// assume the winding produced by the extractor: counter-clockwise on screen,
// starting at the top-most, left-most vertex, so v0->v1 runs down the left
// side of an axis-aligned box. The core cannot verify this.
//
// # Tolerance
//
// All "approximately equal" comparisons use a single Tolerance T in pixels:
// two coordinates are near when |a-b| < T. The default is 5.
//
// # Ordering
//
// Buckets are insertion-ordered sets. The near-duplicate merge keeps the
// earliest-inserted key of every cluster, so the order in which regions are
// submitted decides which key survives. Given the same input order, results
// are deterministic.
//
// # Concurrency
//
// An Engine holds only configuration and may be shared. Every Run creates its
// own Catalog and buckets; nothing is shared between runs.
package shapes
