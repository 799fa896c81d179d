package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rgbmatrix/pixel"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("invalid coordinate")

// ValidationError reports coordinate input that is not a non-negative
// integer.
type ValidationError struct {
	Field string
	Input string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s must be a non-negative integer, got %q", e.Field, e.Input)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ParseCoordinate parses one free-text coordinate. Surrounding whitespace
// is ignored; otherwise only an optional '+' followed by decimal digits is
// accepted.
func ParseCoordinate(field, text string) (int, error) {
	s := strings.TrimSpace(text)
	digits := strings.TrimPrefix(s, "+")
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, &ValidationError{Field: field, Input: text}
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		// Only overflow gets here.
		return 0, &ValidationError{Field: field, Input: text}
	}
	return v, nil
}

// Jump validates a coordinate query and starts a centered smooth scroll to
// the pixel. On any error the view is left untouched. In Matrix mode the
// column axis is centered on x as well.
func (v *View) Jump(xText, yText string) (pixel.Record, error) {
	x, err := ParseCoordinate("X", xText)
	if err != nil {
		return pixel.Record{}, err
	}
	y, err := ParseCoordinate("Y", yText)
	if err != nil {
		return pixel.Record{}, err
	}

	seq := v.Layout.Sequence()
	dims := seq.Dimensions()
	i, err := pixel.ToIndex(x, y, dims)
	if err != nil {
		return pixel.Record{}, err
	}
	p, ok := seq.At(i)
	if !ok {
		return pixel.Record{}, &pixel.OutOfRangeError{X: x, Y: y, Width: dims.Width, Height: dims.Height}
	}

	v.Rows.ScrollToIndex(v.Layout.RowOf(i), AlignCenter)
	if v.Layout.Mode() == ModeMatrix {
		v.Cols.ScrollToIndex(x, AlignCenter)
	}
	return p, nil
}
