package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/ironsheep/image-edit-mcp/internal/editor"
)

// preShrinkMargin keeps the pre-shrunk image at least this much larger than
// the target so the final resample still has detail to work with.
const preShrinkMargin = 1.1

// ResizeTo scales c to exactly width x height.
func (b *Backend) ResizeTo(c editor.Canvas, width, height int) (editor.Canvas, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid resize target %dx%d", width, height)
	}
	return wrap(imaging.Resize(preShrink(src, width, height), width, height, b.filter)), nil
}

// preShrink halves src with nearest-neighbour sampling while both halves stay
// above the target by preShrinkMargin.
func preShrink(src *image.NRGBA, width, height int) image.Image {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	limitW := float64(width) * preShrinkMargin
	limitH := float64(height) * preShrinkMargin
	for float64(w/2) > limitW && float64(h/2) > limitH {
		w, h = w/2, h/2
	}
	if w == src.Rect.Dx() {
		return src
	}
	return resize.Resize(uint(w), uint(h), src, resize.NearestNeighbor)
}

// CropTo extracts the width x height region whose top-left corner is (x, y).
func (b *Backend) CropTo(c editor.Canvas, width, height, x, y int) (editor.Canvas, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	rect := image.Rect(x, y, x+width, y+height)
	if rect.Empty() || !rect.In(src.Rect) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", rect, src.Rect)
	}
	return wrap(imaging.Crop(src, rect)), nil
}

// RotateBy rotates clockwise. Right angles are exact; other angles grow the
// canvas to fit and leave the uncovered corners transparent.
func (b *Backend) RotateBy(c editor.Canvas, degrees int) (editor.Canvas, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	// imaging rotates counter-clockwise.
	switch degrees {
	case 0:
		return c, nil
	case 90:
		return wrap(imaging.Rotate270(src)), nil
	case -90:
		return wrap(imaging.Rotate90(src)), nil
	case 180, -180:
		return wrap(imaging.Rotate180(src)), nil
	}
	rotated := transform.Rotate(src, float64(degrees), &transform.RotationOptions{ResizeBounds: true})
	return wrap(imaging.Clone(rotated)), nil
}

// FlipAlong mirrors c along dir.
func (b *Backend) FlipAlong(c editor.Canvas, dir editor.Direction) (editor.Canvas, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	if dir == editor.Horizontal {
		return wrap(imaging.FlipH(src)), nil
	}
	return wrap(imaging.FlipV(src)), nil
}

// SharpenBy applies a 3x3 sharpening kernel whose centre weight grows with
// amount. The kernel always sums to one, so flat regions are unchanged.
func (b *Backend) SharpenBy(c editor.Canvas, amount int) (editor.Canvas, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	out := convolution.Convolve(src, sharpenKernel(amount), &convolution.Options{KeepAlpha: true})
	return wrap(imaging.Clone(out)), nil
}

func sharpenKernel(amount int) *convolution.Kernel {
	center := math.Round(math.Abs(-18+float64(amount)*0.08)*100) / 100
	div := center - 8
	k := convolution.NewKernel(3, 3)
	for i := range k.Matrix {
		k.Matrix[i] = -1 / div
	}
	k.Matrix[4] = center / div
	return k
}
