package table

import "rgbmatrix/pixel"

// View couples a Layout with the windowers for both axes and keeps their
// geometry in step with the layout's mode and zoom.
type View struct {
	Layout *Layout
	Rows   *Windower
	Cols   *Windower
}

// NewView creates an empty view.
func NewView(base Metrics, overscan int) *View {
	l := NewLayout(base)
	v := &View{
		Layout: l,
		Rows:   NewWindower(l.RowSizer(), overscan),
		Cols:   NewWindower(l.ColumnSizer(), min(overscan, 2)),
	}
	v.sync()
	return v
}

// SetSequence installs a new snapshot and scrolls back to the top.
func (v *View) SetSequence(seq *pixel.Sequence) {
	v.Layout.SetSequence(seq)
	v.sync()
	v.Rows.ScrollTo(0)
	v.Cols.ScrollTo(0)
}

// SetMode switches projection. The scroll position is clamped, callers
// usually Reveal the selection afterwards.
func (v *View) SetMode(m Mode) {
	if m == v.Layout.Mode() {
		return
	}
	v.Rows.Finish()
	v.Layout.SetMode(m)
	v.sync()
}

// SetZoom re-measures every row and column.
func (v *View) SetZoom(z Zoom) {
	v.Layout.SetZoom(z)
	v.sync()
}

// Resize sets the viewport: rows in lines, cols in terminal columns.
func (v *View) Resize(rows, cols int) {
	v.Rows.SetViewport(rows)
	v.Cols.SetViewport(cols)
}

// Reveal scrolls immediately so that the record at linear index i is fully
// visible on both axes.
func (v *View) Reveal(i int) {
	if i < 0 || i >= v.Layout.Sequence().Len() {
		return
	}
	v.Rows.Reveal(v.Layout.RowOf(i))
	if v.Layout.Mode() == ModeMatrix {
		x, _ := pixel.FromIndex(i, v.Layout.Sequence().Width())
		v.Cols.Reveal(x)
	}
}

// Animating reports whether either axis is in a smooth scroll.
func (v *View) Animating() bool {
	return v.Rows.Animating() || v.Cols.Animating()
}

// Step advances both axes by one animation frame.
func (v *View) Step() bool {
	r := v.Rows.Step()
	c := v.Cols.Step()
	return r || c
}

func (v *View) sync() {
	v.Rows.SetSizer(v.Layout.RowSizer())
	v.Rows.SetCount(v.Layout.RowCount())
	v.Cols.SetSizer(v.Layout.ColumnSizer())
	if v.Layout.Mode() == ModeMatrix {
		v.Cols.SetCount(v.Layout.ColumnCount())
	} else {
		v.Cols.SetCount(0)
	}
}
