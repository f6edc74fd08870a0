// Package editor implements the geometry and compositing policy for image edits.
//
// An [Image] is a handle over a canvas owned by a [Backend]. Callers request
// high-level edits (resize to fit a box, crop from the bottom-right corner,
// watermark centered, ...) and the editor resolves each request into exact
// pixel-space parameters before delegating to the backend. The editor never
// touches pixels itself.
//
// # Resolution Rules
//
// Every operation follows the same pattern:
//
//  1. Validate and clamp the caller's parameters (opacity, quality, amount).
//  2. Resolve ambiguous geometry (missing dimensions, centered or far-edge
//     offsets, master dimension selection) into integer widths, heights and
//     origins that lie inside the current canvas.
//  3. Call the backend primitive with the resolved values.
//  4. Resynchronize width and height from the canvas the backend returned.
//
// A resolved width or height of zero never reaches the backend; the operation
// fails with [ErrInvalidDimensions] instead.
//
// # Offsets
//
// Crop and watermark positions are expressed with [Offset]:
//   - [OffsetCenter] (the zero value): centered along the axis
//   - [OffsetFar]: flush against the right or bottom edge
//   - [OffsetAt] with n >= 0: n pixels from the left or top edge
//   - [OffsetAt] with n < 0: measured inward from the right or bottom edge
//
// # Resource Ownership
//
// A canvas is owned by exactly one Image. When a primitive returns a new
// canvas the previous one is released. Call [Image.Close] (usually deferred)
// to release the final canvas.
//
// # Thread Safety
//
// An Image is not safe for concurrent use. Distinct images may be edited from
// different goroutines if the backend allows it.
package editor
