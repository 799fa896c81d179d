// Package imagefile validates image files and decodes them into RGBA bitmaps
// ready for pixel extraction.
package imagefile

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"rgbmatrix/pixel"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBytes is the default file size limit (50 MB).
const DefaultMaxBytes = 50 * 1024 * 1024

// MaxPixels bounds the decoded size; larger images would need gigabytes of
// records.
const MaxPixels = 64 * 1024 * 1024

// sniffLen is how much of the file http.DetectContentType looks at.
const sniffLen = 512

// Extensions lists the file name suffixes of the formats Decode reads.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// HasImageExt reports whether name ends in one of Extensions, ignoring
// case. Validate still sniffs the content; this only filters listings.
func HasImageExt(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}

// ValidationError explains why a file was refused.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Info describes a validated file.
type Info struct {
	Path        string
	Size        int64
	ContentType string
	Format      string
	Dims        pixel.Dimensions
}

// Image is a decoded file.
type Image struct {
	Info
	Bitmap *pixel.Bitmap
}

// Validate checks that path is a regular image file no larger than maxBytes
// (0 means DefaultMaxBytes) and reads its header.
func Validate(path string, maxBytes int64) (Info, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	info := Info{Path: path}

	st, err := os.Stat(path)
	if err != nil {
		return info, err
	}
	if st.IsDir() {
		return info, &ValidationError{Path: path, Reason: "is a directory"}
	}
	info.Size = st.Size()
	if info.Size > maxBytes {
		return info, &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("file is too large (%s); the limit is %s", FormatFileSize(info.Size), FormatFileSize(maxBytes)),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return info, fmt.Errorf("read %s: %w", path, err)
	}
	info.ContentType = http.DetectContentType(head[:n])

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("seek %s: %w", path, err)
	}
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		// The sniffer and the registered decoders disagree only for formats
		// we cannot read anyway.
		if strings.HasPrefix(info.ContentType, "image/") {
			return info, &ValidationError{Path: path, Reason: fmt.Sprintf("unsupported image format (%s)", info.ContentType)}
		}
		return info, &ValidationError{Path: path, Reason: fmt.Sprintf("not an image (%s)", info.ContentType)}
	}
	info.Format = format
	info.Dims = pixel.Dimensions{Width: cfg.Width, Height: cfg.Height}

	if !info.Dims.Valid() {
		return info, &ValidationError{Path: path, Reason: "image has no pixels"}
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return info, &ValidationError{Path: path, Reason: fmt.Sprintf("image is too large (%s pixels)", info.Dims)}
	}
	return info, nil
}

// Load validates and decodes path.
func Load(path string, maxBytes int64) (*Image, error) {
	info, err := Validate(path, maxBytes)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bm, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	slog.Info("image decoded",
		slog.String("path", path),
		slog.String("format", info.Format),
		slog.String("dims", bm.Dimensions().String()),
		slog.Int64("bytes", info.Size))
	return &Image{Info: info, Bitmap: bm}, nil
}

// Decode reads any registered image format and converts it to a
// non-premultiplied RGBA bitmap.
func Decode(r io.Reader) (*pixel.Bitmap, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return ToBitmap(img), format, nil
}

// ToBitmap copies img into a tightly packed RGBA buffer with its origin at
// (0, 0).
func ToBitmap(img image.Image) *pixel.Bitmap {
	b := img.Bounds()
	dst, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) || dst.Stride != b.Dx()*pixel.BytesPerPixel ||
		len(dst.Pix) != b.Dx()*b.Dy()*pixel.BytesPerPixel {
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return &pixel.Bitmap{Width: b.Dx(), Height: b.Dy(), Data: dst.Pix}
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with 1024-based units and at most two
// decimals, e.g. "1.5 MB".
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	i := 0
	for unit := int64(1024); n >= unit && i < len(sizeUnits)-1; unit *= 1024 {
		i++
	}
	v := float64(n) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
