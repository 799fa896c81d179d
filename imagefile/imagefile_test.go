package imagefile

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, color.NRGBA{255, 255, 255, 255})
	return img
}

var quadData = []byte{
	255, 0, 0, 255, 0, 255, 0, 255,
	0, 0, 255, 255, 255, 255, 255, 255,
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	bm, format, err := Decode(bytes.NewReader(encodePNG(t, quadImage())))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 2, bm.Width)
	assert.Equal(t, 2, bm.Height)
	assert.Equal(t, quadData, bm.Data)
	assert.True(t, bm.Valid())
}

func TestToBitmapUnpremultiplies(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{128, 0, 0, 128})

	bm := ToBitmap(img)
	assert.Equal(t, []byte{255, 0, 0, 128}, bm.Data)
}

func TestToBitmapRebasesSubImage(t *testing.T) {
	sub := quadImage().SubImage(image.Rect(1, 1, 2, 2))
	bm := ToBitmap(sub)
	assert.Equal(t, 1, bm.Width)
	assert.Equal(t, 1, bm.Height)
	assert.Equal(t, []byte{255, 255, 255, 255}, bm.Data)
}

func TestLoadPNG(t *testing.T) {
	path := writeFile(t, "quad.png", encodePNG(t, quadImage()))

	img, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, 2, img.Dims.Width)
	assert.Equal(t, quadData, img.Bitmap.Data)
}

func TestLoadBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, quadImage()))
	path := writeFile(t, "quad.bmp", buf.Bytes())

	img, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "bmp", img.Format)
	assert.Equal(t, "image/bmp", img.ContentType)
	assert.Equal(t, quadData, img.Bitmap.Data)
}

func TestValidateRejects(t *testing.T) {
	pngPath := writeFile(t, "quad.png", encodePNG(t, quadImage()))
	textPath := writeFile(t, "notes.txt", []byte("hello, world\n"))

	tests := []struct {
		name   string
		path   string
		max    int64
		reason string
	}{
		{"text file", textPath, 0, "not an image"},
		{"too large", pngPath, 10, "file is too large"},
		{"directory", t.TempDir(), 0, "is a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.path, tt.max)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.path, verr.Path)
			assert.Contains(t, verr.Reason, tt.reason)
		})
	}

	_, err := Validate(filepath.Join(t.TempDir(), "missing.png"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1 MB"},
		{1294336, "1.23 MB"},
		{DefaultMaxBytes, "50 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.n), "FormatFileSize(%d)", tt.n)
	}
}

func TestHasImageExt(t *testing.T) {
	for name, want := range map[string]bool{
		"photo.PNG":      true,
		"scan.tiff":      true,
		"a.b.webp":       true,
		"notes.txt":      false,
		"png":            false,
		"archive.png.gz": false,
	} {
		assert.Equal(t, want, HasImageExt(name), name)
	}
}
