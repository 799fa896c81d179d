package table

import "fmt"

// Zoom is a percentage applied to Matrix row and cell sizes.
type Zoom int

const (
	MinZoom     Zoom = 50
	MaxZoom     Zoom = 200
	ZoomStep    Zoom = 25
	DefaultZoom Zoom = 100
)

// NormalizeZoom clamps v into [MinZoom, MaxZoom] and snaps it down to a
// multiple of ZoomStep.
func NormalizeZoom(v int) Zoom {
	z := Zoom(v)
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z - z%ZoomStep
}

// In returns the next zoom level, clamped at MaxZoom.
func (z Zoom) In() Zoom {
	return NormalizeZoom(int(z + ZoomStep))
}

// Out returns the previous zoom level, clamped at MinZoom.
func (z Zoom) Out() Zoom {
	return NormalizeZoom(int(z - ZoomStep))
}

// Scale applies the zoom to a base size, rounding down.
func (z Zoom) Scale(base int) int {
	return base * int(z) / 100
}

func (z Zoom) String() string {
	return fmt.Sprintf("%d%%", int(z))
}
