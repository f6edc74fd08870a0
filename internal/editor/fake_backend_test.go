package editor

import (
	"errors"
	"testing"
)

type fakeCanvas struct {
	w, h     int
	released bool
}

func (c *fakeCanvas) Width() int  { return c.w }
func (c *fakeCanvas) Height() int { return c.h }
func (c *fakeCanvas) Release()    { c.released = true }

type call struct {
	op   string
	args []int
}

// fakeBackend records every primitive with its resolved arguments and
// produces canvases of the expected size without touching pixels.
type fakeBackend struct {
	calls      []call
	decodeW    int
	decodeH    int
	format     Format
	failOp     string
	reflection []float64
	written    map[string]Format
}

var errFake = errors.New("fake backend failure")

func newFakeBackend() *fakeBackend {
	return &fakeBackend{decodeW: 100, decodeH: 100, format: FormatPNG, written: map[string]Format{}}
}

func (b *fakeBackend) record(op string, args ...int) error {
	b.calls = append(b.calls, call{op: op, args: args})
	if b.failOp == op {
		return errFake
	}
	return nil
}

func (b *fakeBackend) ops() []string {
	out := make([]string, len(b.calls))
	for i, c := range b.calls {
		out[i] = c.op
	}
	return out
}

func (b *fakeBackend) last(op string) (call, bool) {
	for i := len(b.calls) - 1; i >= 0; i-- {
		if b.calls[i].op == op {
			return b.calls[i], true
		}
	}
	return call{}, false
}

func (b *fakeBackend) Decode(path string) (Canvas, Format, error) {
	if err := b.record("decode"); err != nil {
		return nil, FormatUnknown, err
	}
	return &fakeCanvas{w: b.decodeW, h: b.decodeH}, b.format, nil
}

func (b *fakeBackend) Clone(c Canvas) (Canvas, error) {
	if err := b.record("clone"); err != nil {
		return nil, err
	}
	return &fakeCanvas{w: c.Width(), h: c.Height()}, nil
}

func (b *fakeBackend) ResizeTo(c Canvas, width, height int) (Canvas, error) {
	if err := b.record("resize", width, height); err != nil {
		return nil, err
	}
	return &fakeCanvas{w: width, h: height}, nil
}

func (b *fakeBackend) CropTo(c Canvas, width, height, x, y int) (Canvas, error) {
	if err := b.record("crop", width, height, x, y); err != nil {
		return nil, err
	}
	return &fakeCanvas{w: width, h: height}, nil
}

func (b *fakeBackend) RotateBy(c Canvas, degrees int) (Canvas, error) {
	if err := b.record("rotate", degrees); err != nil {
		return nil, err
	}
	if degrees == 90 || degrees == -90 {
		return &fakeCanvas{w: c.Height(), h: c.Width()}, nil
	}
	return &fakeCanvas{w: c.Width(), h: c.Height()}, nil
}

func (b *fakeBackend) FlipAlong(c Canvas, dir Direction) (Canvas, error) {
	if err := b.record("flip", int(dir)); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *fakeBackend) SharpenBy(c Canvas, amount int) (Canvas, error) {
	if err := b.record("sharpen", amount); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *fakeBackend) BuildReflection(c Canvas, height int, opacity []float64) (Canvas, error) {
	if err := b.record("reflection", height, len(opacity)); err != nil {
		return nil, err
	}
	b.reflection = opacity
	return &fakeCanvas{w: c.Width(), h: c.Height() + height}, nil
}

func (b *fakeBackend) CompositeWatermark(c, mark Canvas, x, y, opacity int) (Canvas, error) {
	if err := b.record("watermark", x, y, opacity, mark.Width(), mark.Height()); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *fakeBackend) FillBackground(c Canvas, r, g, bl uint8, opacity int) (Canvas, error) {
	if err := b.record("background", int(r), int(g), int(bl), opacity); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *fakeBackend) Clear(c Canvas) (Canvas, error) {
	if err := b.record("clear"); err != nil {
		return nil, err
	}
	return &fakeCanvas{w: c.Width(), h: c.Height()}, nil
}

func (b *fakeBackend) Encode(c Canvas, f Format, quality int) ([]byte, error) {
	if err := b.record("encode", int(f), quality); err != nil {
		return nil, err
	}
	if f == FormatWebP {
		return nil, ErrUnsupportedFormat
	}
	return []byte(f.String()), nil
}

func (b *fakeBackend) Write(c Canvas, path string, f Format, quality int) error {
	if err := b.record("write", int(f), quality); err != nil {
		return err
	}
	b.written[path] = f
	return nil
}

// newTestImage wraps a fake canvas of the given size.
func newTestImage(t *testing.T, b *fakeBackend, w, h int) *Image {
	t.Helper()
	img, err := New(b, &fakeCanvas{w: w, h: h}, FormatPNG)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { img.Close() })
	return img
}
