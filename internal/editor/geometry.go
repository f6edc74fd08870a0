package editor

import (
	"fmt"
	"math"
	"strings"
)

// ResizeMode selects how Resize treats the requested box.
type ResizeMode int

const (
	// ResizeDefault behaves as ResizeAuto.
	ResizeDefault ResizeMode = iota
	// ResizeNone stretches to exactly width x height, ignoring aspect ratio.
	// An omitted dimension keeps its current value.
	ResizeNone
	// ResizeWidth scales proportionally so the width matches.
	ResizeWidth
	// ResizeHeight scales proportionally so the height matches.
	ResizeHeight
	// ResizeAuto scales proportionally to fit inside the box.
	ResizeAuto
	// ResizeInverse scales proportionally to cover the box.
	ResizeInverse
	// ResizeRemove covers the box, then crops the overflow around the center.
	ResizeRemove
	// ResizeFill fits inside the box and letterboxes the rest with
	// transparency.
	ResizeFill
	// ResizeTopRemove covers the box, then crops horizontal overflow from the
	// left edge and vertical overflow around the center.
	ResizeTopRemove
)

var resizeModeNames = []string{
	ResizeDefault:   "default",
	ResizeNone:      "none",
	ResizeWidth:     "width",
	ResizeHeight:    "height",
	ResizeAuto:      "auto",
	ResizeInverse:   "inverse",
	ResizeRemove:    "remove",
	ResizeFill:      "fill",
	ResizeTopRemove: "top_remove",
}

func (m ResizeMode) String() string {
	if m >= 0 && int(m) < len(resizeModeNames) {
		return resizeModeNames[m]
	}
	return fmt.Sprintf("ResizeMode(%d)", int(m))
}

// ParseResizeMode maps a mode name ("auto", "top_remove", ...) to a
// ResizeMode. The empty string is ResizeDefault.
func ParseResizeMode(s string) (ResizeMode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if key == "" {
		return ResizeDefault, nil
	}
	for i, name := range resizeModeNames {
		if name == key {
			return ResizeMode(i), nil
		}
	}
	return ResizeDefault, fmt.Errorf("unknown resize mode %q", s)
}

// resizeDimensions resolves a proportional or stretching resize request
// against the current size. Zero width or height means "omitted".
//
// ResizeWidth and ResizeHeight with their own dimension present are treated as
// ResizeAuto with the other dimension dropped; older callers pass them as hints.
func resizeDimensions(curW, curH, width, height int, mode ResizeMode) (int, int, error) {
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("%w: resize to %dx%d", ErrInvalidDimensions, width, height)
	}

	switch {
	case mode == ResizeDefault:
		mode = ResizeAuto
	case mode == ResizeWidth && width > 0:
		mode = ResizeAuto
		height = 0
	case mode == ResizeHeight && height > 0:
		mode = ResizeAuto
		width = 0
	}

	if width == 0 {
		if mode == ResizeNone {
			width = curW
		} else {
			mode = ResizeHeight
		}
	}
	if height == 0 {
		if mode == ResizeNone {
			height = curH
		} else {
			mode = ResizeWidth
		}
	}

	switch mode {
	case ResizeAuto:
		// Greatest reduction ratio drives.
		if ratio(curW, width) > ratio(curH, height) {
			mode = ResizeWidth
		} else {
			mode = ResizeHeight
		}
	case ResizeInverse:
		if ratio(curW, width) > ratio(curH, height) {
			mode = ResizeHeight
		} else {
			mode = ResizeWidth
		}
	}

	fw, fh := float64(width), float64(height)
	switch mode {
	case ResizeWidth:
		fh = float64(curH) * fw / float64(curW)
	case ResizeHeight:
		fw = float64(curW) * fh / float64(curH)
	}

	w, h := int(math.Round(fw)), int(math.Round(fh))
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: resize resolved to %dx%d", ErrInvalidDimensions, w, h)
	}
	return w, h, nil
}

// cropBox resolves a crop request into an in-bounds box. A zero width or
// height keeps the current dimension. The box is shrunk, never shifted, when
// the resolved origin leaves too little room.
func cropBox(curW, curH, width, height int, x, y Offset) (w, h, ox, oy int, err error) {
	if width < 0 || height < 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: crop to %dx%d", ErrInvalidDimensions, width, height)
	}
	if width == 0 || width > curW {
		width = curW
	}
	if height == 0 || height > curH {
		height = curH
	}

	ox = max(x.resolve(curW, width), 0)
	oy = max(y.resolve(curH, height), 0)

	w = min(width, curW-ox)
	h = min(height, curH-oy)
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: crop at (%d,%d) leaves %dx%d", ErrInvalidDimensions, ox, oy, w, h)
	}
	return w, h, ox, oy, nil
}

// placeOrigin resolves a watermark origin along one axis. The result is kept
// inside [0, space-size]; a mark larger than the image is pinned at 0.
func placeOrigin(o Offset, space, size int) int {
	return clamp(o.resolve(space, size), 0, max(space-size, 0))
}

// normalizeDegrees maps any angle into (-180, 180].
func normalizeDegrees(d int) int {
	d %= 360
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

func ratio(current, target int) float64 {
	return float64(current) / float64(target)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
