package table

import (
	"fmt"
	"strings"

	"rgbmatrix/pixel"
)

// Mode selects how the pixel sequence is projected onto rows.
type Mode int

const (
	// ModeList shows one row per pixel.
	ModeList Mode = iota
	// ModeMatrix shows one row per image line with one cell per pixel.
	ModeMatrix
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeMatrix:
		return "matrix"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeMatrix {
		return ModeList
	}
	return ModeMatrix
}

// ParseMode accepts "list" or "matrix", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "list":
		return ModeList, nil
	case "matrix":
		return ModeMatrix, nil
	}
	return ModeList, fmt.Errorf("unknown layout mode %q (want list or matrix)", s)
}

// Base sizes at 100% zoom.
type Metrics struct {
	ListRowHeight   int
	MatrixRowHeight int
	MatrixCellWidth int
}

// DefaultMetrics matches the default configuration.
var DefaultMetrics = Metrics{ListRowHeight: 1, MatrixRowHeight: 2, MatrixCellWidth: 8}

const (
	minCellWidth = 2
	// Narrowest label that is still rendered; smaller cells show only the
	// swatch.
	minLabelWidth  = 6
	fullLabelWidth = 7
)

// Cell is one synthesized Matrix cell.
type Cell struct {
	X, Y  int
	Pixel pixel.Record
	// OK is false for the "no data" sentinel: a coordinate inside the grid
	// that the sequence has no record for.
	OK   bool
	Text pixel.Tone
}

// Layout projects one sequence as either a list or a matrix. It never copies
// or mutates the sequence.
type Layout struct {
	seq  *pixel.Sequence
	mode Mode
	zoom Zoom
	base Metrics
}

// NewLayout creates an empty list layout at the default zoom.
func NewLayout(base Metrics) *Layout {
	return &Layout{seq: pixel.Empty, zoom: DefaultZoom, base: base}
}

func (l *Layout) Sequence() *pixel.Sequence { return l.seq }

// SetSequence replaces the snapshot wholesale. nil means empty.
func (l *Layout) SetSequence(seq *pixel.Sequence) {
	if seq == nil {
		seq = pixel.Empty
	}
	l.seq = seq
}

func (l *Layout) Mode() Mode { return l.mode }

func (l *Layout) SetMode(m Mode) { l.mode = m }

func (l *Layout) Zoom() Zoom { return l.zoom }

// SetZoom normalizes z into the supported range.
func (l *Layout) SetZoom(z Zoom) { l.zoom = NormalizeZoom(int(z)) }

func (l *Layout) Metrics() Metrics { return l.base }

// RowCount is N in List mode and ceil(N/width) in Matrix mode.
func (l *Layout) RowCount() int {
	n := l.seq.Len()
	if l.mode == ModeList {
		return n
	}
	w := l.seq.Width()
	if w <= 0 {
		return 0
	}
	return (n + w - 1) / w
}

// ColumnCount is 1 in List mode and the image width in Matrix mode.
func (l *Layout) ColumnCount() int {
	if l.mode == ModeList {
		if l.seq.IsEmpty() {
			return 0
		}
		return 1
	}
	if l.seq.IsEmpty() {
		return 0
	}
	return l.seq.Width()
}

// RowHeight is the height of every row under the current mode and zoom.
func (l *Layout) RowHeight() int {
	return l.RowSizer().Size(0)
}

// CellWidth is the width of a Matrix cell at the current zoom.
func (l *Layout) CellWidth() int {
	return l.ColumnSizer().Size(0)
}

// RowSizer returns the sizing model for the row axis. Zoom only affects
// Matrix rows.
func (l *Layout) RowSizer() Sizer {
	if l.mode == ModeList {
		return FixedSize(l.base.ListRowHeight)
	}
	return ZoomedSize{Base: l.base.MatrixRowHeight, Zoom: l.zoom, Floor: 1}
}

// ColumnSizer returns the sizing model for Matrix columns.
func (l *Layout) ColumnSizer() Sizer {
	return ZoomedSize{Base: l.base.MatrixCellWidth, Zoom: l.zoom, Floor: minCellWidth}
}

// LabelWidth is the width of the hex label that fits in a Matrix cell with
// one column of padding, or 0 when the cell is too narrow for any label.
func (l *Layout) LabelWidth() int {
	avail := l.CellWidth() - 1
	switch {
	case avail >= fullLabelWidth:
		return fullLabelWidth
	case avail >= minLabelWidth:
		return minLabelWidth
	}
	return 0
}

// Label returns the cell label for p at the current zoom.
func (l *Layout) Label(p pixel.Record) string {
	switch l.LabelWidth() {
	case fullLabelWidth:
		return p.Hex
	case minLabelWidth:
		return strings.TrimPrefix(p.Hex, "#")
	}
	return ""
}

// ListRow returns the record shown on List row i.
func (l *Layout) ListRow(i int) (pixel.Record, bool) {
	return l.seq.At(i)
}

// MatrixRow synthesizes the cells of image line y for columns [from, to).
// The range is clamped to the image width.
func (l *Layout) MatrixRow(y, from, to int) []Cell {
	dims := l.seq.Dimensions()
	from = max(0, from)
	to = min(dims.Width, to)
	if from >= to {
		return nil
	}
	cells := make([]Cell, 0, to-from)
	for x := from; x < to; x++ {
		c := Cell{X: x, Y: y}
		if i, err := pixel.ToIndex(x, y, dims); err == nil {
			if p, ok := l.seq.At(i); ok {
				c.Pixel = p
				c.OK = true
				c.Text = p.Contrast()
			}
		}
		cells = append(cells, c)
	}
	return cells
}

// RowOf returns the row that displays the record at linear index i.
func (l *Layout) RowOf(i int) int {
	if l.mode == ModeList {
		return i
	}
	w := l.seq.Width()
	if w <= 0 {
		return 0
	}
	return i / w
}

// IndexOf maps a (row, column) position back to a linear index. The column
// is ignored in List mode.
func (l *Layout) IndexOf(row, col int) int {
	if l.mode == ModeList {
		return row
	}
	return row*l.seq.Width() + col
}
