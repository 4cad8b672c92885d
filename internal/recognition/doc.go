// Package recognition runs the complete flowchart recognition pipeline for one
// image: load, optional resize, region extraction, shape classification,
// optional block text extraction, and report assembly.
//
// # Pipeline
//
//  1. Load: images are read through an imaging.ImageCache
//  2. Resize: images larger than Options.MaxDimension are scaled down
//  3. Extract: detection.ExtractRegions finds the enclosed regions
//  4. Classify: a shapes.Engine catalogs, sub-classifies and deduplicates
//  5. Read: with Options.OCR, the text inside every classified block is read
//  6. Report: everything is gathered into a Report keyed by shape key
//
// Each run gets a random run id, attached to every log record of the run and
// to the report, so reports can be matched with server logs.
//
// # Coordinates
//
// All report coordinates refer to the image after resizing. Report.Scale is
// the factor that was applied; divide by it to map back to the source file.
//
// # Text Extraction Failures
//
// OCR is best effort. A block whose text cannot be read gets an empty text and
// a warning in the log; the run itself still succeeds.
package recognition
