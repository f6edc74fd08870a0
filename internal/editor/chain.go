package editor

// Chain applies a sequence of edits to one image and stops at the first
// error. Later calls become no-ops.
//
//	err := editor.Edit(img).
//		Resize(800, 0, editor.ResizeDefault).
//		Sharpen(20).
//		Background("#fff", 100).
//		Err()
type Chain struct {
	img *Image
	err error
}

// Edit starts a chain on img.
func Edit(img *Image) *Chain {
	return &Chain{img: img}
}

func (c *Chain) do(fn func() error) *Chain {
	if c.err == nil {
		c.err = fn()
	}
	return c
}

// Resize calls Image.Resize unless an earlier step failed.
func (c *Chain) Resize(width, height int, mode ResizeMode) *Chain {
	return c.do(func() error { return c.img.Resize(width, height, mode) })
}

// Crop calls Image.Crop unless an earlier step failed.
func (c *Chain) Crop(width, height int, x, y Offset) *Chain {
	return c.do(func() error { return c.img.Crop(width, height, x, y) })
}

// Rotate calls Image.Rotate unless an earlier step failed.
func (c *Chain) Rotate(degrees int) *Chain {
	return c.do(func() error { return c.img.Rotate(degrees) })
}

// Flip calls Image.Flip unless an earlier step failed.
func (c *Chain) Flip(dir Direction) *Chain {
	return c.do(func() error { return c.img.Flip(dir) })
}

// Sharpen calls Image.Sharpen unless an earlier step failed.
func (c *Chain) Sharpen(amount int) *Chain {
	return c.do(func() error { return c.img.Sharpen(amount) })
}

// Reflection calls Image.Reflection unless an earlier step failed.
func (c *Chain) Reflection(height, opacity int, fadeIn bool) *Chain {
	return c.do(func() error { return c.img.Reflection(height, opacity, fadeIn) })
}

// Watermark calls Image.Watermark unless an earlier step failed.
func (c *Chain) Watermark(mark *Image, x, y Offset, opacity int) *Chain {
	return c.do(func() error { return c.img.Watermark(mark, x, y, opacity) })
}

// Background calls Image.Background unless an earlier step failed.
func (c *Chain) Background(hex string, opacity int) *Chain {
	return c.do(func() error { return c.img.Background(hex, opacity) })
}

// Save calls Image.Save unless an earlier step failed.
func (c *Chain) Save(path string, quality int) *Chain {
	return c.do(func() error { return c.img.Save(path, quality) })
}

// Image returns the image being edited.
func (c *Chain) Image() *Image { return c.img }

// Err returns the first error encountered, if any.
func (c *Chain) Err() error { return c.err }
