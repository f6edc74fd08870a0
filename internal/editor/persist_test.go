package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSource creates a placeholder file the fake backend can "decode".
func writeSource(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("placeholder"), 0o644))
	return path
}

func TestOpen(t *testing.T) {
	b := newFakeBackend()
	b.decodeW, b.decodeH = 64, 32
	path := writeSource(t, "photo.png")

	img, err := Open("  "+path+"  ", b)
	require.NoError(t, err)
	defer img.Close()

	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	assert.Equal(t, resolved, img.Path())
	assert.Equal(t, 64, img.Width())
	assert.Equal(t, 32, img.Height())
	assert.Equal(t, FormatPNG, img.Format())
	assert.Equal(t, "image/png", img.MimeType())
	assert.Equal(t, Info{Path: resolved, Width: 64, Height: 32, Format: "png", MimeType: "image/png"}, img.Info())
}

func TestOpen_InvalidSource(t *testing.T) {
	b := newFakeBackend()

	_, err := Open(filepath.Join(t.TempDir(), "missing.png"), b)
	require.ErrorIs(t, err, ErrInvalidSource)

	_, err = Open("   ", b)
	require.ErrorIs(t, err, ErrInvalidSource)

	b.failOp = "decode"
	_, err = Open(writeSource(t, "broken.png"), b)
	require.ErrorIs(t, err, ErrInvalidSource)

	b.failOp = ""
	b.decodeW = 0
	_, err = Open(writeSource(t, "empty.png"), b)
	require.ErrorIs(t, err, ErrInvalidSource)

	_, err = Open(writeSource(t, "nil.png"), nil)
	require.Error(t, err)
}

func TestSave_MissingTarget(t *testing.T) {
	img := newTestImage(t, newFakeBackend(), 10, 10)
	require.ErrorIs(t, img.Save("", 90), ErrMissingTarget)
}

func TestSave_OverwritesSource(t *testing.T) {
	b := newFakeBackend()
	img, err := Open(writeSource(t, "photo.png"), b)
	require.NoError(t, err)
	defer img.Close()

	require.NoError(t, img.Save("", 150))
	assert.Contains(t, b.written, img.Path())
	assertCall(t, b, "write", int(FormatPNG), 100)
}

func TestSave_ChangesFormatFromExtension(t *testing.T) {
	b := newFakeBackend()
	img := newTestImage(t, b, 10, 10)
	target := filepath.Join(t.TempDir(), "out.JPG")

	require.NoError(t, img.Save(target, 0))
	assert.Equal(t, FormatJPEG, b.written[target])
	assertCall(t, b, "write", int(FormatJPEG), 1)
	assert.Equal(t, FormatJPEG, img.Format())
	assert.Equal(t, "image/jpeg", img.MimeType())
}

func TestSave_NoExtensionKeepsFormat(t *testing.T) {
	b := newFakeBackend()
	img := newTestImage(t, b, 10, 10)
	target := filepath.Join(t.TempDir(), "out")

	require.NoError(t, img.Save(target, 80))
	assert.Equal(t, FormatPNG, b.written[target])
}

func TestSave_UnknownExtension(t *testing.T) {
	b := newFakeBackend()
	img := newTestImage(t, b, 10, 10)

	err := img.Save(filepath.Join(t.TempDir(), "out.xyz"), 80)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Empty(t, b.written)
}

func TestSave_DirectoryNotWritable(t *testing.T) {
	b := newFakeBackend()
	img := newTestImage(t, b, 10, 10)

	err := img.Save(filepath.Join(t.TempDir(), "missing", "out.png"), 80)
	require.ErrorIs(t, err, ErrDirectoryNotWritable)

	file := writeSource(t, "plain.txt")
	err = img.Save(filepath.Join(file, "out.png"), 80)
	require.ErrorIs(t, err, ErrDirectoryNotWritable)
	assert.Empty(t, b.written)
}

func TestSave_PermissionChecks(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	b := newFakeBackend()
	img := newTestImage(t, b, 10, 10)

	readOnly := writeSource(t, "locked.png")
	require.NoError(t, os.Chmod(readOnly, 0o444))
	require.ErrorIs(t, img.Save(readOnly, 80), ErrNotWritable)

	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })
	require.ErrorIs(t, img.Save(filepath.Join(dir, "out.png"), 80), ErrDirectoryNotWritable)
}

func TestSave_TargetIsDirectory(t *testing.T) {
	img := newTestImage(t, newFakeBackend(), 10, 10)
	require.ErrorIs(t, img.Save(t.TempDir(), 80), ErrNotWritable)
}

func TestSave_BackendFailure(t *testing.T) {
	b := newFakeBackend()
	b.failOp = "write"
	img := newTestImage(t, b, 10, 10)

	err := img.Save(filepath.Join(t.TempDir(), "out.gif"), 80)
	require.ErrorIs(t, err, ErrBackendFailure)
	assert.Equal(t, FormatPNG, img.Format(), "format unchanged after failed save")
}

func TestRender(t *testing.T) {
	b := newFakeBackend()
	img := newTestImage(t, b, 10, 10)

	data, err := img.Render(FormatUnknown, 0)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	assertCall(t, b, "encode", int(FormatPNG), 1)

	data, err = img.Render(FormatJPEG, 75)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
	assert.Equal(t, FormatJPEG, img.Format())
}

func TestRender_UnsupportedFormat(t *testing.T) {
	b := newFakeBackend()
	img := newTestImage(t, b, 10, 10)

	_, err := img.Render(FormatWebP, 80)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, errors.Is(err, ErrBackendFailure))
	assert.Equal(t, FormatPNG, img.Format())
}

func TestRenderOrEmpty(t *testing.T) {
	b := newFakeBackend()
	img := newTestImage(t, b, 10, 10)

	assert.Equal(t, []byte("png"), img.RenderOrEmpty(FormatUnknown, 90))
	assert.Nil(t, img.RenderOrEmpty(FormatWebP, 90))

	require.NoError(t, img.Close())
	assert.Nil(t, img.RenderOrEmpty(FormatPNG, 90))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"jpg", FormatJPEG}, {".JPEG", FormatJPEG}, {"png", FormatPNG}, {"gif", FormatGIF},
		{"bmp", FormatBMP}, {"tif", FormatTIFF}, {".tiff", FormatTIFF}, {"WebP", FormatWebP},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("psd")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.Equal(t, "image/jpeg", FormatJPEG.MimeType())
	assert.Equal(t, "jpg", FormatJPEG.Extension())
	assert.Equal(t, "tiff", FormatTIFF.Extension())
	assert.Equal(t, "application/octet-stream", FormatUnknown.MimeType())
	assert.Equal(t, "unknown", FormatUnknown.String())
}
