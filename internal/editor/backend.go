package editor

import "strings"

// Direction is the axis used by Flip.
type Direction int

const (
	// Horizontal mirrors the image left to right.
	Horizontal Direction = iota + 1
	// Vertical mirrors the image top to bottom.
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Canvas is a pixel buffer owned by a Backend. The editor only reads its
// dimensions; everything else is opaque. Implementations must be comparable
// (typically a pointer type).
type Canvas interface {
	Width() int
	Height() int
	// Release frees the pixel storage. It must be safe to call more than once.
	Release()
}

// Backend performs pixel operations on canvases. The editor calls these
// primitives only with resolved, in-bounds parameters.
//
// Primitives that return a Canvas may return the input canvas (mutated in
// place) or a new one; they must not release the input. The editor releases
// the old canvas when a new one is returned and resynchronizes its dimensions
// from the result.
type Backend interface {
	// Decode loads the image at path.
	Decode(path string) (Canvas, Format, error)

	// Clone returns a deep copy that shares no pixel storage with c.
	Clone(c Canvas) (Canvas, error)

	ResizeTo(c Canvas, width, height int) (Canvas, error)
	CropTo(c Canvas, width, height, x, y int) (Canvas, error)

	// RotateBy rotates clockwise; degrees is always in (-180, 180].
	RotateBy(c Canvas, degrees int) (Canvas, error)

	FlipAlong(c Canvas, dir Direction) (Canvas, error)

	// SharpenBy sharpens by amount, which is always in [1, 100].
	SharpenBy(c Canvas, amount int) (Canvas, error)

	// BuildReflection appends height mirrored lines below the image. Line i
	// (0 is adjacent to the image) keeps opacity[i] of its alpha, a factor in
	// [0, 1].
	BuildReflection(c Canvas, height int, opacity []float64) (Canvas, error)

	// CompositeWatermark draws mark over c at (x, y) with opacity in [1, 100],
	// preserving the mark's own alpha.
	CompositeWatermark(c, mark Canvas, x, y, opacity int) (Canvas, error)

	// FillBackground composites c over a solid color whose opacity is in
	// [0, 100].
	FillBackground(c Canvas, r, g, b uint8, opacity int) (Canvas, error)

	// Clear returns a fully transparent canvas of the same size.
	Clear(c Canvas) (Canvas, error)

	// Encode serializes c. Quality is in [1, 100]; formats without a quality
	// setting ignore it.
	Encode(c Canvas, f Format, quality int) ([]byte, error)

	// Write encodes c to the file at path.
	Write(c Canvas, path string, f Format, quality int) error
}

// ParseDirection maps "horizontal" (or "h") to Horizontal. Every other value
// is Vertical, matching Flip's normalization.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal
	}
	return Vertical
}
