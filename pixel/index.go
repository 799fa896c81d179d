package pixel

import (
	"errors"
	"fmt"
)

// Dimensions is the size of one image in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Valid reports whether both sides are positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// Area returns Width*Height, or 0 for invalid dimensions.
func (d Dimensions) Area() int {
	if !d.Valid() {
		return 0
	}
	return d.Width * d.Height
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%d × %d", d.Width, d.Height)
}

// ErrOutOfRange matches every *OutOfRangeError.
var ErrOutOfRange = errors.New("coordinate out of range")

// OutOfRangeError reports a coordinate outside [0,Width)×[0,Height).
type OutOfRangeError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("coordinate (%d, %d) outside %d × %d image", e.X, e.Y, e.Width, e.Height)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// ToIndex maps (x, y) to its row-major offset y*width + x.
func ToIndex(x, y int, dims Dimensions) (int, error) {
	if x < 0 || x >= dims.Width || y < 0 || y >= dims.Height {
		return 0, &OutOfRangeError{X: x, Y: y, Width: dims.Width, Height: dims.Height}
	}
	return y*dims.Width + x, nil
}

// FromIndex is the inverse of ToIndex. It is total for i in [0, width*height)
// and width > 0; callers own that precondition.
func FromIndex(i, width int) (x, y int) {
	return i % width, i / width
}
