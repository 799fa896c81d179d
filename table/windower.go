// Package table turns a pixel sequence into a virtualized, scrollable table.
// Only the rows that intersect the viewport (plus an overscan margin) are
// ever materialized, so browsing stays cheap regardless of image size.
//
// Sizes and offsets are abstract units; the terminal UI uses lines for rows
// and columns for Matrix cells.
package table

// Sizer reports the extent of each row along the scroll axis.
type Sizer interface {
	// Size returns the extent of row i.
	Size(i int) int
	// Offset returns the sum of the sizes of rows [0, i).
	Offset(i int) int
	// IndexAt returns the row containing the absolute offset off, assuming
	// an unbounded row count. Callers clamp the result.
	IndexAt(off int) int
}

// FixedSize gives every row the same extent regardless of zoom.
type FixedSize int

func (f FixedSize) unit() int { return max(1, int(f)) }

func (f FixedSize) Size(int) int { return f.unit() }

func (f FixedSize) Offset(i int) int { return i * f.unit() }

func (f FixedSize) IndexAt(off int) int { return floorDiv(off, f.unit()) }

// ZoomedSize gives every row Base scaled by Zoom, never less than Floor.
type ZoomedSize struct {
	Base  int
	Zoom  Zoom
	Floor int
}

func (z ZoomedSize) unit() int { return max(1, z.Floor, z.Zoom.Scale(z.Base)) }

func (z ZoomedSize) Size(int) int { return z.unit() }

func (z ZoomedSize) Offset(i int) int { return i * z.unit() }

func (z ZoomedSize) IndexAt(off int) int { return floorDiv(off, z.unit()) }

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Align selects where ScrollToIndex places the target row.
type Align int

const (
	// AlignAuto scrolls the minimum distance needed to make the row fully
	// visible, and not at all when it already is.
	AlignAuto Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// Item is one materialized row of a Window.
type Item struct {
	Index int
	Start int
	Size  int
}

// End returns the offset just past the row.
func (it Item) End() int { return it.Start + it.Size }

// Window is the set of rows to render for the current scroll position.
// EndIndex is exclusive.
type Window struct {
	StartIndex  int
	EndIndex    int
	Items       []Item
	TotalExtent int
}

// Len returns the number of materialized rows.
func (w Window) Len() int { return w.EndIndex - w.StartIndex }

// Windower tracks the scroll position over Count rows and computes the
// visible Window. Every recompute costs O(window), never O(Count).
type Windower struct {
	sizer    Sizer
	count    int
	viewport int
	overscan int

	offset    int
	target    int
	animating bool

	window Window
	dirty  bool
}

// NewWindower creates a windower with no rows and an empty viewport.
func NewWindower(sizer Sizer, overscan int) *Windower {
	if sizer == nil {
		sizer = FixedSize(1)
	}
	return &Windower{sizer: sizer, overscan: max(0, overscan), dirty: true}
}

// Count returns the number of rows.
func (w *Windower) Count() int { return w.count }

// SetCount replaces the row count, clamping the scroll offset.
func (w *Windower) SetCount(n int) {
	n = max(0, n)
	if n == w.count {
		return
	}
	w.count = n
	w.settle()
}

// Sizer returns the current sizing model.
func (w *Windower) Sizer() Sizer { return w.sizer }

// SetSizer re-measures every row. The row at the top of the viewport stays
// at the top; a running smooth scroll is completed first.
func (w *Windower) SetSizer(s Sizer) {
	if s == nil {
		return
	}
	w.Finish()
	anchor := w.IndexAt(w.offset)
	into := 0
	if anchor >= 0 {
		// Keep the same fraction of the anchor row scrolled off.
		old := w.sizer.Size(anchor)
		into = (w.offset - w.sizer.Offset(anchor)) * s.Size(anchor) / max(1, old)
	}
	w.sizer = s
	if anchor >= 0 {
		w.offset = s.Offset(anchor) + into
	}
	w.settle()
}

// Viewport returns the visible extent.
func (w *Windower) Viewport() int { return w.viewport }

// SetViewport changes the visible extent, clamping the scroll offset.
func (w *Windower) SetViewport(v int) {
	v = max(0, v)
	if v == w.viewport {
		return
	}
	w.viewport = v
	w.settle()
}

// SetOverscan changes the number of extra rows materialized on each side.
func (w *Windower) SetOverscan(o int) {
	w.overscan = max(0, o)
	w.dirty = true
}

// TotalExtent is the sum of all row sizes.
func (w *Windower) TotalExtent() int {
	return w.sizer.Offset(w.count)
}

// MaxScroll is the largest valid scroll offset.
func (w *Windower) MaxScroll() int {
	return max(0, w.TotalExtent()-w.viewport)
}

// ScrollOffset returns the current scroll offset.
func (w *Windower) ScrollOffset() int { return w.offset }

// ScrollTo jumps to off, clamped to [0, MaxScroll]. It cancels any smooth
// scroll in progress.
func (w *Windower) ScrollTo(off int) {
	w.animating = false
	w.setOffset(off)
}

// ScrollBy moves the scroll offset by delta.
func (w *Windower) ScrollBy(delta int) {
	w.ScrollTo(w.offset + delta)
}

// IndexAt returns the row under the absolute offset off, or -1 if there
// is none.
func (w *Windower) IndexAt(off int) int {
	if w.count == 0 || off < 0 || off >= w.TotalExtent() {
		return -1
	}
	return min(w.count-1, w.sizer.IndexAt(off))
}

// IndexAtViewport returns the row under position pos relative to the top
// of the viewport, or -1.
func (w *Windower) IndexAtViewport(pos int) int {
	if pos < 0 || pos >= w.viewport {
		return -1
	}
	return w.IndexAt(w.offset + pos)
}

// IsVisible reports whether row i lies entirely inside the viewport.
func (w *Windower) IsVisible(i int) bool {
	if i < 0 || i >= w.count {
		return false
	}
	start := w.sizer.Offset(i)
	return start >= w.offset && start+w.sizer.Size(i) <= w.offset+w.viewport
}

// ScrollToIndex starts a smooth scroll that brings row i to the requested
// alignment. It reports false, and does nothing, for i outside [0, Count).
func (w *Windower) ScrollToIndex(i int, align Align) bool {
	if i < 0 || i >= w.count {
		return false
	}
	target := w.targetFor(i, align)
	if target == w.offset {
		w.animating = false
		return true
	}
	w.target = target
	w.animating = true
	return true
}

// Reveal makes row i fully visible immediately, scrolling as little as
// possible.
func (w *Windower) Reveal(i int) {
	if w.ScrollToIndex(i, AlignAuto) {
		w.Finish()
	}
}

func (w *Windower) targetFor(i int, align Align) int {
	start := w.sizer.Offset(i)
	size := w.sizer.Size(i)

	var off int
	switch align {
	case AlignStart:
		off = start
	case AlignEnd:
		off = start + size - w.viewport
	case AlignCenter:
		off = start + size/2 - w.viewport/2
	default:
		cur := w.offset
		if w.animating {
			cur = w.target
		}
		switch {
		case start < cur:
			off = start
		case start+size > cur+w.viewport:
			off = start + size - w.viewport
		default:
			off = cur
		}
	}
	return clamp(off, 0, w.MaxScroll())
}

// Animating reports whether a smooth scroll is in progress.
func (w *Windower) Animating() bool { return w.animating }

// Target returns the destination of the smooth scroll in progress, or the
// current offset when idle.
func (w *Windower) Target() int {
	if w.animating {
		return w.target
	}
	return w.offset
}

// Step advances a smooth scroll by one frame, covering a quarter of the
// remaining distance and at least one unit. It reports whether more frames
// are needed.
func (w *Windower) Step() bool {
	if !w.animating {
		return false
	}
	d := w.target - w.offset
	move := d / 4
	if move == 0 {
		move = sign(d)
	}
	w.setOffset(w.offset + move)
	if w.offset == w.target || move == 0 {
		w.offset = w.target
		w.animating = false
	}
	return w.animating
}

// Finish completes a smooth scroll immediately.
func (w *Windower) Finish() {
	if !w.animating {
		return
	}
	w.animating = false
	w.setOffset(w.target)
}

// Window returns the rows intersecting [offset, offset+viewport) expanded
// by the overscan on each side and clamped to [0, Count). The result is
// cached until the next change.
func (w *Windower) Window() Window {
	if !w.dirty {
		return w.window
	}
	w.window = w.compute()
	w.dirty = false
	return w.window
}

func (w *Windower) compute() Window {
	total := w.TotalExtent()
	if w.count == 0 {
		return Window{TotalExtent: total}
	}

	lo := clamp(w.sizer.IndexAt(w.offset), 0, w.count-1)
	hi := lo + 1
	if w.viewport > 0 {
		hi = clamp(w.sizer.IndexAt(w.offset+w.viewport-1), lo, w.count-1) + 1
	}
	lo = max(0, lo-w.overscan)
	hi = min(w.count, hi+w.overscan)

	items := make([]Item, 0, hi-lo)
	for i := lo; i < hi; i++ {
		items = append(items, Item{Index: i, Start: w.sizer.Offset(i), Size: w.sizer.Size(i)})
	}
	return Window{StartIndex: lo, EndIndex: hi, Items: items, TotalExtent: total}
}

func (w *Windower) setOffset(off int) {
	off = clamp(off, 0, w.MaxScroll())
	if off != w.offset {
		w.offset = off
		w.dirty = true
	}
}

// settle re-clamps positions after the geometry changed.
func (w *Windower) settle() {
	w.dirty = true
	w.offset = clamp(w.offset, 0, w.MaxScroll())
	if w.animating {
		w.target = clamp(w.target, 0, w.MaxScroll())
		if w.target == w.offset {
			w.animating = false
		}
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
