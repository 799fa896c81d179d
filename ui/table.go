package ui

import (
	"strconv"
	"strings"

	"rgbmatrix/pixel"
	"rgbmatrix/table"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TableRenderer draws the visible window of a table.View, one string per
// terminal line, in either projection.
type TableRenderer struct {
	styles Styles
	ascii  bool
}

// NewTableRenderer creates a renderer for the given styles
func NewTableRenderer(styles Styles) *TableRenderer {
	return &TableRenderer{styles: styles}
}

// SetStyles updates the styles for runtime theme changes
func (r *TableRenderer) SetStyles(styles Styles) {
	r.styles = styles
}

// SetASCII avoids non-ASCII filler characters
func (r *TableRenderer) SetASCII(ascii bool) {
	r.ascii = ascii
}

func digits(n int) int {
	return len(strconv.Itoa(max(0, n)))
}

// Gutter returns the width of the row-label column in Matrix mode.
func (r *TableRenderer) Gutter(v *table.View) int {
	if v.Layout.Mode() != table.ModeMatrix {
		return 0
	}
	return max(3, digits(v.Layout.Sequence().Height()-1)) + 1
}

type listColumns struct {
	x, y int
}

func columnsFor(dims pixel.Dimensions) listColumns {
	return listColumns{
		x: max(3, digits(dims.Width-1)),
		y: max(3, digits(dims.Height-1)),
	}
}

func padLeft(s string, w int) string {
	if n := runewidth.StringWidth(s); n < w {
		return strings.Repeat(" ", w-n) + s
	}
	return s
}

// fit pads or cuts s to exactly w columns.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, w, ""), w)
}

// Header renders the column header line.
func (r *TableRenderer) Header(v *table.View, width int) string {
	if v.Layout.Mode() == table.ModeMatrix {
		return r.matrixHeader(v, width)
	}
	c := columnsFor(v.Layout.Sequence().Dimensions())
	text := " " + padLeft("X", c.x) + "  " + padLeft("Y", c.y) +
		"    R    G    B  HEX      Color"
	return r.styles.Header.Render(fit(text, width))
}

func (r *TableRenderer) matrixHeader(v *table.View, width int) string {
	gutter := r.Gutter(v)
	line := []byte(fit("y\\x", gutter) + strings.Repeat(" ", max(0, width-gutter)))
	scroll := v.Cols.ScrollOffset()
	for _, it := range v.Cols.Window().Items {
		label := strconv.Itoa(it.Index)
		if len(label) > it.Size-1 {
			continue
		}
		for k := range label {
			col := gutter + it.Start - scroll + k
			if col >= gutter && col < width {
				line[col] = label[k]
			}
		}
	}
	return r.styles.Header.Render(string(line[:max(0, width)]))
}

// Body renders height lines of the table starting at the current scroll
// offset. selected is the linear index of the selected record, or -1.
func (r *TableRenderer) Body(v *table.View, selected, width, height int) []string {
	lines := make([]string, max(0, height))
	blank := r.styles.Table.Render(strings.Repeat(" ", max(0, width)))
	for i := range lines {
		lines[i] = blank
	}
	if v.Layout.Sequence().IsEmpty() || width <= 0 {
		return lines
	}

	scroll := v.Rows.ScrollOffset()
	for _, it := range v.Rows.Window().Items {
		for k := range it.Size {
			line := it.Start + k - scroll
			if line < 0 || line >= height {
				continue
			}
			// the label goes on the middle line of tall rows
			labelLine := k == (it.Size-1)/2
			if v.Layout.Mode() == table.ModeMatrix {
				lines[line] = r.matrixLine(v, it.Index, selected, width, labelLine)
			} else {
				lines[line] = r.listLine(v, it.Index, selected, width, k == 0)
			}
		}
	}
	return lines
}

func (r *TableRenderer) listLine(v *table.View, row, selected, width int, first bool) string {
	p, ok := v.Layout.ListRow(row)
	if !ok {
		return r.styles.NoData.Render(fit(" "+r.noData(), width))
	}
	c := columnsFor(v.Layout.Sequence().Dimensions())

	var text string
	if first {
		text = " " + padLeft(strconv.Itoa(p.X), c.x) + "  " + padLeft(strconv.Itoa(p.Y), c.y) +
			"  " + padLeft(strconv.Itoa(int(p.R)), 3) +
			"  " + padLeft(strconv.Itoa(int(p.G)), 3) +
			"  " + padLeft(strconv.Itoa(int(p.B)), 3) +
			"  " + p.Hex + "  "
	} else {
		text = strings.Repeat(" ", 1+c.x+2+c.y+5*3+2+7+2)
	}

	textWidth := runewidth.StringWidth(text)
	swatchWidth := min(12, width-textWidth)
	if swatchWidth < 2 {
		return r.rowStyle(row == selected).Render(fit(text, width))
	}

	var sb strings.Builder
	sb.WriteString(r.rowStyle(row == selected).Render(text))
	sb.WriteString(r.styles.Swatch(p, strings.Repeat(" ", swatchWidth)))
	if rest := width - textWidth - swatchWidth; rest > 0 {
		sb.WriteString(r.rowStyle(row == selected).Render(strings.Repeat(" ", rest)))
	}
	return sb.String()
}

func (r *TableRenderer) rowStyle(selected bool) lipgloss.Style {
	if selected {
		return r.styles.Selection
	}
	return r.styles.Table
}

func (r *TableRenderer) noData() string {
	if r.ascii {
		return "n/a"
	}
	return "∅"
}

func (r *TableRenderer) matrixLine(v *table.View, y, selected, width int, labelLine bool) string {
	gutter := r.Gutter(v)
	var sb strings.Builder
	if labelLine {
		sb.WriteString(r.styles.Coordinate.Render(fit(padLeft(strconv.Itoa(y), gutter-1)+" ", gutter)))
	} else {
		sb.WriteString(r.styles.Coordinate.Render(strings.Repeat(" ", gutter)))
	}

	avail := width - gutter
	scroll := v.Cols.ScrollOffset()
	win := v.Cols.Window()
	if win.Len() == 0 || avail <= 0 {
		sb.WriteString(r.styles.Table.Render(strings.Repeat(" ", max(0, avail))))
		return sb.String()
	}
	cells := v.Layout.MatrixRow(y, win.StartIndex, win.EndIndex)

	used := 0
	for i, it := range win.Items {
		// clip the cell to [scroll, scroll+avail)
		from := max(it.Start, scroll)
		to := min(it.End(), scroll+avail)
		if from >= to || i >= len(cells) {
			continue
		}
		if gap := from - scroll - used; gap > 0 {
			sb.WriteString(r.styles.Table.Render(strings.Repeat(" ", gap)))
			used += gap
		}
		text := r.cellText(v, cells[i], it.Size, labelLine)
		text = text[from-it.Start : to-it.Start]
		sb.WriteString(r.paintCell(cells[i], v.Layout.IndexOf(y, cells[i].X) == selected, text))
		used += to - from
	}
	if rest := avail - used; rest > 0 {
		sb.WriteString(r.styles.Table.Render(strings.Repeat(" ", rest)))
	}
	return sb.String()
}

// cellText returns exactly size bytes of ASCII text for a cell.
func (r *TableRenderer) cellText(v *table.View, c table.Cell, size int, labelLine bool) string {
	label := ""
	if labelLine {
		if c.OK {
			label = v.Layout.Label(c.Pixel)
		} else if size > 3 {
			label = "n/a"
		}
	}
	if label == "" {
		return strings.Repeat(" ", size)
	}
	left := (size - len(label)) / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", size-left-len(label))
}

func (r *TableRenderer) paintCell(c table.Cell, selected bool, text string) string {
	switch {
	case !c.OK:
		return r.styles.NoData.Render(text)
	case selected:
		return r.styles.Selection.Render(text)
	}
	return r.styles.Swatch(c.Pixel, text)
}
