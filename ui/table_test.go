package ui

import (
	"strings"
	"testing"

	"rgbmatrix/pixel"
	"rgbmatrix/table"

	"github.com/charmbracelet/x/ansi"
)

// quadBitmap is the 2×2 red/green/blue/white image.
func quadBitmap() *pixel.Bitmap {
	return &pixel.Bitmap{Width: 2, Height: 2, Data: []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}}
}

func quadView(mode table.Mode, rows, cols int) *table.View {
	v := table.NewView(table.DefaultMetrics, 2)
	v.SetSequence(pixel.Extract(quadBitmap()))
	v.SetMode(mode)
	v.Resize(rows, cols)
	return v
}

func stripAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = ansi.Strip(l)
	}
	return out
}

func TestListBody(t *testing.T) {
	r := NewTableRenderer(DefaultStyles())
	v := quadView(table.ModeList, 6, 0)

	lines := r.Body(v, 1, 50, 6)
	if len(lines) != 6 {
		t.Fatalf("Body() returned %d lines, want 6", len(lines))
	}
	plain := stripAll(lines)
	wantPrefix := []string{
		"   0    0  255    0    0  #ff0000",
		"   1    0    0  255    0  #00ff00",
		"   0    1    0    0  255  #0000ff",
		"   1    1  255  255  255  #ffffff",
	}
	for i, want := range wantPrefix {
		if !strings.HasPrefix(plain[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, plain[i], want)
		}
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 50 {
			t.Errorf("line %d width = %d, want 50", i, w)
		}
	}
	if strings.TrimSpace(plain[4]) != "" {
		t.Errorf("line past the last row = %q, want blank", plain[4])
	}
}

func TestListHeaderAlignsWithRows(t *testing.T) {
	r := NewTableRenderer(DefaultStyles())
	v := quadView(table.ModeList, 4, 0)

	header := ansi.Strip(r.Header(v, 50))
	row := ansi.Strip(r.Body(v, -1, 50, 4)[0])
	if strings.Index(header, "HEX") != strings.Index(row, "#ff0000") {
		t.Errorf("HEX column misaligned:\n%q\n%q", header, row)
	}
}

func TestMatrixBody(t *testing.T) {
	r := NewTableRenderer(DefaultStyles())
	v := quadView(table.ModeMatrix, 4, 0)
	if g := r.Gutter(v); g != 4 {
		t.Fatalf("Gutter() = %d, want 4", g)
	}
	v.Resize(4, 36)

	plain := stripAll(r.Body(v, -1, 40, 4))
	want := []string{
		"  0 #ff0000 #00ff00 " + strings.Repeat(" ", 20),
		strings.Repeat(" ", 40),
		"  1 #0000ff #ffffff " + strings.Repeat(" ", 20),
		strings.Repeat(" ", 40),
	}
	for i := range want {
		if plain[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, plain[i], want[i])
		}
	}

	header := ansi.Strip(r.Header(v, 40))
	if !strings.HasPrefix(header, "y\\x 0       1") {
		t.Errorf("matrix header = %q", header)
	}
}

func TestMatrixBodyZoomedOut(t *testing.T) {
	r := NewTableRenderer(DefaultStyles())
	v := quadView(table.ModeMatrix, 4, 36)
	v.SetZoom(table.MinZoom)

	// 50% zoom: 4-column cells, too narrow for a label
	plain := stripAll(r.Body(v, -1, 40, 4))
	if strings.Contains(plain[0], "ff") {
		t.Errorf("narrow cells should not carry labels: %q", plain[0])
	}
	if !strings.HasPrefix(plain[1], "  1 ") {
		t.Errorf("50%% zoom rows are one line tall, line 1 = %q", plain[1])
	}
}

func TestMatrixBodyClipsScrolledColumns(t *testing.T) {
	bm := &pixel.Bitmap{Width: 10, Height: 1, Data: make([]byte, 10*4)}
	v := table.NewView(table.DefaultMetrics, 0)
	v.SetSequence(pixel.Extract(bm))
	v.SetMode(table.ModeMatrix)
	v.Resize(2, 20)
	v.Cols.ScrollTo(4)

	r := NewTableRenderer(DefaultStyles())
	for i, l := range r.Body(v, -1, 24, 2) {
		if w := ansi.StringWidth(l); w != 24 {
			t.Errorf("line %d width = %d, want 24", i, w)
		}
	}
	line := ansi.Strip(r.Body(v, -1, 24, 2)[0])
	// column 0 starts 4 columns off screen: its label tail "000 " shows first
	if !strings.HasPrefix(line, "  0 000 #000000") {
		t.Errorf("scrolled line = %q", line)
	}
}

func TestEmptyBody(t *testing.T) {
	r := NewTableRenderer(DefaultStyles())
	v := table.NewView(table.DefaultMetrics, 2)
	for _, l := range stripAll(r.Body(v, -1, 10, 3)) {
		if l != strings.Repeat(" ", 10) {
			t.Errorf("empty table line = %q", l)
		}
	}
}
