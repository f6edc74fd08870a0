package editor

import (
	"fmt"
	"math"
)

type offsetKind int

const (
	offsetCenter offsetKind = iota
	offsetFar
	offsetExplicit
)

// Offset positions a region along one axis of a larger area. The zero value
// centers the region.
type Offset struct {
	kind offsetKind
	n    int
}

// OffsetCenter centers the region along the axis.
func OffsetCenter() Offset { return Offset{} }

// OffsetFar places the region flush against the right or bottom edge.
func OffsetFar() Offset { return Offset{kind: offsetFar} }

// OffsetAt places the region n pixels from the left or top edge. A negative n
// is measured inward from the right or bottom edge, so OffsetAt(-5) leaves
// five pixels between the region and the far edge.
func OffsetAt(n int) Offset { return Offset{kind: offsetExplicit, n: n} }

func (o Offset) String() string {
	switch o.kind {
	case offsetFar:
		return "far"
	case offsetExplicit:
		return fmt.Sprintf("%d", o.n)
	default:
		return "center"
	}
}

// resolve returns the origin of a span of length size inside an axis of
// length space. The result may be negative or exceed space-size; callers clamp.
func (o Offset) resolve(space, size int) int {
	switch o.kind {
	case offsetFar:
		return space - size
	case offsetExplicit:
		if o.n < 0 {
			return space - size + o.n
		}
		return o.n
	default:
		return int(math.Round(float64(space-size) / 2))
	}
}
