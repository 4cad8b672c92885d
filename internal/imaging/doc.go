// Package imaging provides the image handling around flowchart recognition:
// loading and caching source images, resizing, cropping block interiors for
// text extraction, and rendering annotated overlays.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images. Functions
// that draw always work on a copy; the source image is never modified.
//
// # Colors
//
// Overlay colors are given as hex strings ("#RRGGBB" or "#RRGGBBAA") and parsed
// with go-colorful, which also supplies the lighter label backgrounds.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Regions outside image bounds or empty after padding
//   - Malformed hex colors
//   - File I/O errors during image loading
//   - Encoding errors during image output
package imaging
