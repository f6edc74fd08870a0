package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-edit-mcp/internal/editor"
)

// BuildReflection returns a canvas height lines taller than c. The extra lines
// mirror the bottom of c, line i keeping opacity[i] of the source alpha.
func (b *Backend) BuildReflection(c editor.Canvas, height int, opacity []float64) (editor.Canvas, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if height < 0 || height > h {
		return nil, fmt.Errorf("reflection height %d outside [0, %d]", height, h)
	}

	dst := imaging.Paste(imaging.New(w, h+height, color.NRGBA{}), src, image.Pt(0, 0))
	for i := 0; i < height && i < len(opacity); i++ {
		factor := math.Min(math.Max(opacity[i], 0), 1)
		from := src.Pix[src.PixOffset(0, h-i-1):][:w*4]
		to := dst.Pix[dst.PixOffset(0, h+i):][:w*4]
		for x := 0; x < len(from); x += 4 {
			to[x], to[x+1], to[x+2] = from[x], from[x+1], from[x+2]
			to[x+3] = uint8(math.Round(float64(from[x+3]) * factor))
		}
	}
	return wrap(dst), nil
}

// CompositeWatermark blends mark over c with its top-left corner at (x, y).
func (b *Backend) CompositeWatermark(c, mark editor.Canvas, x, y, opacity int) (editor.Canvas, error) {
	dst, err := pixels(c)
	if err != nil {
		return nil, err
	}
	m, err := pixels(mark)
	if err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	return wrap(imaging.Overlay(dst, m, image.Pt(x, y), float64(opacity)/100)), nil
}

// FillBackground places c over a solid color. At opacity 100 the result is
// fully opaque.
func (b *Backend) FillBackground(c editor.Canvas, r, g, bl uint8, opacity int) (editor.Canvas, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	alpha := uint8(math.Round(float64(opacity) * 255 / 100))
	bg := imaging.New(src.Rect.Dx(), src.Rect.Dy(), color.NRGBA{R: r, G: g, B: bl, A: alpha})
	return wrap(imaging.Overlay(bg, src, image.Pt(0, 0), 1)), nil
}

// Clear returns a transparent canvas the size of c.
func (b *Backend) Clear(c editor.Canvas) (editor.Canvas, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	return wrap(imaging.New(src.Rect.Dx(), src.Rect.Dy(), color.NRGBA{})), nil
}
