package editor

import (
	"fmt"
)

// Resize scales the image. Zero width or height means the dimension was
// omitted and is derived from the other one.
//
//	img.Resize(200, 200, ResizeAuto)    // fit inside 200x200
//	img.Resize(200, 200, ResizeInverse) // cover 200x200
//	img.Resize(500, 0, ResizeDefault)   // 500 wide, proportional height
//	img.Resize(200, 500, ResizeNone)    // stretch to 200x500
//	img.Resize(200, 200, ResizeRemove)  // cover, then crop to 200x200
//	img.Resize(200, 200, ResizeFill)    // fit, then letterbox to 200x200
//
// ResizeRemove, ResizeTopRemove and ResizeFill need both dimensions.
func (img *Image) Resize(width, height int, mode ResizeMode) error {
	if err := img.usable(); err != nil {
		return err
	}

	switch mode {
	case ResizeRemove, ResizeTopRemove:
		return img.resizeCover(width, height, mode == ResizeTopRemove)
	case ResizeFill:
		return img.resizeFill(width, height)
	}

	w, h, err := resizeDimensions(img.width, img.height, width, height, mode)
	if err != nil {
		return err
	}
	Logger().Debug("editor: resize", "mode", mode, "from_width", img.width, "from_height", img.height, "width", w, "height", h)
	return img.apply("resize", func(c Canvas) (Canvas, error) {
		return img.backend.ResizeTo(c, w, h)
	})
}

// resizeCover scales so the box is fully covered, driving by whichever axis
// has the smaller reduction ratio, then crops the overflow. Vertical overflow
// is always cropped around the center; with top, horizontal overflow is
// cropped from the left edge instead.
func (img *Image) resizeCover(width, height int, top bool) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: cover resize needs both dimensions, got %dx%d", ErrInvalidDimensions, width, height)
	}

	if ratio(img.width, width) > ratio(img.height, height) {
		if err := img.Resize(width, height, ResizeHeight); err != nil {
			return err
		}
		x := 0
		if !top {
			x = (img.width - width) / 2
		}
		return img.Crop(width, height, OffsetAt(x), OffsetAt(0))
	}

	if err := img.Resize(width, height, ResizeWidth); err != nil {
		return err
	}
	y := (img.height - height) / 2
	return img.Crop(width, height, OffsetAt(0), OffsetAt(y))
}

// resizeFill letterboxes: a proportional copy fitted inside the box is
// centered over a transparent canvas of exactly width x height.
func (img *Image) resizeFill(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: fill resize needs both dimensions, got %dx%d", ErrInvalidDimensions, width, height)
	}

	fitted, err := img.Clone()
	if err != nil {
		return err
	}
	defer fitted.Close()

	if err := fitted.Resize(width, height, ResizeAuto); err != nil {
		return err
	}
	if err := img.Resize(width, height, ResizeNone); err != nil {
		return err
	}
	if err := img.apply("clear", img.backend.Clear); err != nil {
		return err
	}
	return img.Watermark(fitted, OffsetCenter(), OffsetCenter(), 100)
}

// Crop cuts a width x height region. Sizes larger than the image are reduced
// to the image size and zero keeps the current dimension. The region never
// extends past the canvas.
func (img *Image) Crop(width, height int, x, y Offset) error {
	if err := img.usable(); err != nil {
		return err
	}
	w, h, ox, oy, err := cropBox(img.width, img.height, width, height, x, y)
	if err != nil {
		return err
	}
	Logger().Debug("editor: crop", "width", w, "height", h, "x", ox, "y", oy)
	return img.apply("crop", func(c Canvas) (Canvas, error) {
		return img.backend.CropTo(c, w, h, ox, oy)
	})
}

// Rotate rotates clockwise by degrees; negative values rotate
// counter-clockwise. The angle is normalized into (-180, 180] first. The new
// dimensions are whatever the backend reports.
func (img *Image) Rotate(degrees int) error {
	if err := img.usable(); err != nil {
		return err
	}
	d := normalizeDegrees(degrees)
	return img.apply("rotate", func(c Canvas) (Canvas, error) {
		return img.backend.RotateBy(c, d)
	})
}

// Flip mirrors the image. Anything other than Horizontal flips vertically.
func (img *Image) Flip(dir Direction) error {
	if err := img.usable(); err != nil {
		return err
	}
	if dir != Horizontal {
		dir = Vertical
	}
	return img.apply("flip", func(c Canvas) (Canvas, error) {
		return img.backend.FlipAlong(c, dir)
	})
}

// Sharpen sharpens by amount percent, clamped to [1, 100].
func (img *Image) Sharpen(amount int) error {
	if err := img.usable(); err != nil {
		return err
	}
	amount = clamp(amount, 1, 100)
	return img.apply("sharpen", func(c Canvas) (Canvas, error) {
		return img.backend.SharpenBy(c, amount)
	})
}

// Reflection appends a mirrored copy of the bottom height lines below the
// image, fading between opacity percent (clamped to [0, 100]) and full
// transparency. A height of zero, or one taller than the image, uses the
// image height.
//
// With fadeIn the reflection starts at the given opacity next to the image
// and fades out; otherwise it starts transparent and fades in toward the
// given opacity.
func (img *Image) Reflection(height, opacity int, fadeIn bool) error {
	if err := img.usable(); err != nil {
		return err
	}
	if height <= 0 || height > img.height {
		height = img.height
	}
	opacity = clamp(opacity, 0, 100)
	lines := reflectionOpacity(height, opacity, fadeIn)

	Logger().Debug("editor: reflection", "height", height, "opacity", opacity, "fade_in", fadeIn)
	return img.apply("reflection", func(c Canvas) (Canvas, error) {
		return img.backend.BuildReflection(c, height, lines)
	})
}

// Watermark draws mark over the image. Offsets are resolved against the
// space left by the mark and kept inside the image. Opacity is clamped to
// [1, 100]. The mark is not modified.
func (img *Image) Watermark(mark *Image, x, y Offset, opacity int) error {
	if err := img.usable(); err != nil {
		return err
	}
	if err := mark.usable(); err != nil {
		return fmt.Errorf("watermark: %w", err)
	}

	ox := placeOrigin(x, img.width, mark.width)
	oy := placeOrigin(y, img.height, mark.height)
	opacity = clamp(opacity, 1, 100)

	Logger().Debug("editor: watermark", "x", ox, "y", oy, "opacity", opacity)
	return img.apply("watermark", func(c Canvas) (Canvas, error) {
		return img.backend.CompositeWatermark(c, mark.canvas, ox, oy, opacity)
	})
}

// Background flattens transparency onto a solid color given as 3 or 6 digit
// hex with an optional leading '#'. Opacity is clamped to [0, 100].
func (img *Image) Background(hex string, opacity int) error {
	if err := img.usable(); err != nil {
		return err
	}
	r, g, b, err := parseHexColor(hex)
	if err != nil {
		return err
	}
	opacity = clamp(opacity, 0, 100)
	return img.apply("background", func(c Canvas) (Canvas, error) {
		return img.backend.FillBackground(c, r, g, b, opacity)
	})
}
