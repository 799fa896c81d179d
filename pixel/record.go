// Package pixel turns decoded RGBA bitmaps into ordered per-pixel records
// and provides the pure operations over them: coordinate indexing, color
// statistics, hex conversion and CSV export.
package pixel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Record is one sample's position and color. Hex is always the lowercase
// "#rrggbb" form of R, G and B.
type Record struct {
	X   int
	Y   int
	R   uint8
	G   uint8
	B   uint8
	Hex string
}

// NewRecord builds a record and derives its hex string.
func NewRecord(x, y int, r, g, b uint8) Record {
	return Record{X: x, Y: y, R: r, G: g, B: b, Hex: Hex(r, g, b)}
}

// Luma returns the BT.601 integer-weighted brightness of the record.
func (p Record) Luma() float64 {
	return Luma(p.R, p.G, p.B)
}

// Contrast returns the text tone that stays legible on the record's color.
func (p Record) Contrast() Tone {
	return Contrast(p.R, p.G, p.B)
}

const hexDigits = "0123456789abcdef"

// Hex converts RGB values to a "#rrggbb" string.
func Hex(r, g, b uint8) string {
	buf := [7]byte{'#'}
	for i, c := range [3]uint8{r, g, b} {
		buf[1+i*2] = hexDigits[c>>4]
		buf[2+i*2] = hexDigits[c&0x0f]
	}
	return string(buf[:])
}

// ErrBadHex is returned by ParseHex for anything but six hex digits.
var ErrBadHex = errors.New("invalid hex color")

// ParseHex converts a "#rrggbb" (or "rrggbb") string back to RGB values.
// Matching is case-insensitive; shorthand forms are rejected.
func ParseHex(s string) (r, g, b uint8, err error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// Luma computes perceptual brightness as (r*299 + g*587 + b*114) / 1000.
// This is the BT.601 weighting on gamma-encoded values, not linear luminance.
func Luma(r, g, b uint8) float64 {
	return float64(int(r)*299+int(g)*587+int(b)*114) / 1000
}

// Tone is the foreground tone used for labels drawn over a pixel color.
type Tone int

const (
	Light Tone = iota // light text for dark backgrounds
	Dark              // dark text for bright backgrounds
)

func (t Tone) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Contrast picks dark text when the color's luma exceeds 127.5.
func Contrast(r, g, b uint8) Tone {
	if Luma(r, g, b) > 127.5 {
		return Dark
	}
	return Light
}
