// Package imaging is the in-process raster backend for the editor.
//
// [Backend] implements editor.Backend on top of github.com/disintegration/imaging,
// with github.com/anthonynsimon/bild for arbitrary-angle rotation and
// convolution, and github.com/nfnt/resize for the fast pre-shrink that
// precedes large reductions. Every canvas is an *image.NRGBA anchored at (0,0).
//
// # Coordinate System
//
// All pixel coordinates are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x, y) is the inclusive top-left corner and the region
//     extends width pixels right and height pixels down
//
// # Formats
//
// Decoding accepts JPEG, PNG, GIF, BMP, TIFF and WebP. Encoding supports the
// same set except WebP; [NewBackend] probes each encoder once and requests
// for a format that failed the probe return editor.ErrUnsupportedFormat.
//
// # Thread Safety
//
// The Backend and [ImageCache] are safe for concurrent use. A single canvas
// must not be used from more than one goroutine at a time.
//
// # Memory Management
//
// Decoded sources may be cached by path (see [WithCache]). Decode always
// returns a deep copy, so edits never leak into the cache. Writing a file
// evicts that path from the cache.
package imaging
