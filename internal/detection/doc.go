// Package detection extracts closed regions from flowchart images and turns
// them into polygons the shapes package can classify.
//
// It is the contour extraction stage of the pipeline: it knows nothing about
// flowchart symbols, it only finds enclosed areas and describes their outlines.
//
// # Algorithm Overview
//
//  1. Binarization: convert to grayscale and threshold (pixel >= level is white)
//  2. Labeling: group white pixels into 4-connected components
//  3. Filtering: drop components touching the image border (the background)
//     and components smaller than the minimum area (noise, letter counters)
//  4. Tracing: follow each component's outer boundary with Moore-neighbour
//     tracing, using Jacob's stopping criterion
//  5. Centroid: area moments of the traced boundary, truncated toward zero
//  6. Approximation: Douglas-Peucker with epsilon proportional to the
//     boundary length, then winding normalization
//
// A flowchart drawn as dark strokes on a light page therefore yields one
// region per enclosed symbol: the light interior bounded by the stroke.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Winding
//
// Vertices are reported counter-clockwise as seen on screen, starting at the
// top-most, left-most vertex. For an axis-aligned rectangle that is top-left,
// bottom-left, bottom-right, top-right. The quadrilateral predicates in the
// shapes package depend on this order.
//
// # Ordering
//
// Regions are returned in raster order of their first pixel (top to bottom,
// then left to right). The order is stable for a given image and options.
//
// # Limitations
//
// These algorithms work best on clean, high-contrast images:
//   - Diagrams with solid, closed outlines
//   - Images without heavy compression artifacts
//
// A gap in an outline merges the symbol's interior with the page background
// and the symbol is lost.
package detection
