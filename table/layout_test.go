package table

import (
	"testing"

	"rgbmatrix/pixel"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quad is red, green / blue, white.
func quad() *pixel.Sequence {
	return pixel.Extract(&pixel.Bitmap{
		Width:  2,
		Height: 2,
		Data: []byte{
			255, 0, 0, 255, 0, 255, 0, 255,
			0, 0, 255, 255, 255, 255, 255, 255,
		},
	})
}

func gradient(w, h int) *pixel.Sequence {
	data := make([]byte, 0, w*h*pixel.BytesPerPixel)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			data = append(data, byte(x), byte(y), byte(x+y), 255)
		}
	}
	return pixel.Extract(&pixel.Bitmap{Width: w, Height: h, Data: data})
}

func TestZoomClamps(t *testing.T) {
	z := DefaultZoom
	var ins []Zoom
	for range 5 {
		z = z.In()
		ins = append(ins, z)
	}
	assert.Equal(t, []Zoom{125, 150, 175, 200, 200}, ins)

	z = DefaultZoom
	for range 5 {
		z = z.Out()
	}
	assert.Equal(t, MinZoom, z)

	assert.Equal(t, Zoom(100), NormalizeZoom(int(DefaultZoom)))
	assert.Equal(t, Zoom(100), NormalizeZoom(110))
	assert.Equal(t, MinZoom, NormalizeZoom(10))
	assert.Equal(t, MaxZoom, NormalizeZoom(999))
	assert.Equal(t, 12, Zoom(150).Scale(8))
	assert.Equal(t, "75%", Zoom(75).String())
}

func TestMode(t *testing.T) {
	assert.Equal(t, ModeMatrix, ModeList.Toggle())
	assert.Equal(t, ModeList, ModeMatrix.Toggle())
	assert.Equal(t, "list", ModeList.String())
	assert.Equal(t, "matrix", ModeMatrix.String())

	m, err := ParseMode(" Matrix ")
	require.NoError(t, err)
	assert.Equal(t, ModeMatrix, m)
	_, err = ParseMode("grid")
	assert.Error(t, err)
}

func TestListProjection(t *testing.T) {
	l := NewLayout(DefaultMetrics)
	l.SetSequence(quad())

	assert.Equal(t, 4, l.RowCount())
	assert.Equal(t, 1, l.ColumnCount())
	assert.Equal(t, 1, l.RowHeight())

	l.SetZoom(200)
	assert.Equal(t, 1, l.RowHeight(), "zoom does not affect list rows")

	p, ok := l.ListRow(2)
	require.True(t, ok)
	assert.Equal(t, "#0000ff", p.Hex)
	_, ok = l.ListRow(4)
	assert.False(t, ok)

	assert.Equal(t, 3, l.RowOf(3))
	assert.Equal(t, 3, l.IndexOf(3, 1))
}

func TestMatrixProjection(t *testing.T) {
	l := NewLayout(DefaultMetrics)
	l.SetSequence(quad())
	l.SetMode(ModeMatrix)

	assert.Equal(t, 2, l.RowCount())
	assert.Equal(t, 2, l.ColumnCount())
	assert.Equal(t, 1, l.RowOf(3))
	assert.Equal(t, 3, l.IndexOf(1, 1))

	want := []Cell{
		{X: 0, Y: 0, Pixel: pixel.NewRecord(0, 0, 255, 0, 0), OK: true, Text: pixel.Light},
		{X: 1, Y: 0, Pixel: pixel.NewRecord(1, 0, 0, 255, 0), OK: true, Text: pixel.Dark},
	}
	if diff := cmp.Diff(want, l.MatrixRow(0, 0, 2)); diff != "" {
		t.Errorf("MatrixRow(0) mismatch (-want +got):\n%s", diff)
	}

	cells := l.MatrixRow(1, -3, 10)
	require.Len(t, cells, 2)
	assert.Equal(t, "#ffffff", cells[1].Pixel.Hex)
	assert.Equal(t, pixel.Dark, cells[1].Text)

	assert.Nil(t, l.MatrixRow(0, 2, 2))
}

func TestMatrixTruncatedSequence(t *testing.T) {
	// Four records claiming a 3 × 2 image.
	full := gradient(3, 2)
	var recs []pixel.Record
	for i, p := range full.All() {
		if i < 4 {
			recs = append(recs, p)
		}
	}
	l := NewLayout(DefaultMetrics)
	l.SetSequence(pixel.NewSequence(pixel.Dimensions{Width: 3, Height: 2}, recs))
	l.SetMode(ModeMatrix)

	assert.Equal(t, 2, l.RowCount())
	cells := l.MatrixRow(1, 0, 3)
	require.Len(t, cells, 3)
	assert.True(t, cells[0].OK)
	assert.False(t, cells[1].OK)
	assert.False(t, cells[2].OK)
	assert.Equal(t, 2, cells[2].X)
	assert.Equal(t, 1, cells[2].Y)
}

func TestMatrixMetrics(t *testing.T) {
	tests := []struct {
		zoom       Zoom
		rowHeight  int
		cellWidth  int
		labelWidth int
	}{
		{50, 1, 4, 0},
		{75, 1, 6, 0},
		{100, 2, 8, 7},
		{125, 2, 10, 7},
		{200, 4, 16, 7},
	}
	l := NewLayout(DefaultMetrics)
	l.SetSequence(quad())
	l.SetMode(ModeMatrix)
	for _, tt := range tests {
		l.SetZoom(tt.zoom)
		assert.Equal(t, tt.rowHeight, l.RowHeight(), "row height at %v", tt.zoom)
		assert.Equal(t, tt.cellWidth, l.CellWidth(), "cell width at %v", tt.zoom)
		assert.Equal(t, tt.labelWidth, l.LabelWidth(), "label width at %v", tt.zoom)
	}
}

func TestLabel(t *testing.T) {
	p := pixel.NewRecord(0, 0, 255, 0, 0)

	l := NewLayout(Metrics{ListRowHeight: 1, MatrixRowHeight: 1, MatrixCellWidth: 7})
	l.SetMode(ModeMatrix)
	assert.Equal(t, "ff0000", l.Label(p))

	l.SetZoom(200)
	assert.Equal(t, "#ff0000", l.Label(p))

	l.SetZoom(50)
	assert.Equal(t, "", l.Label(p))
	assert.Equal(t, 3, l.CellWidth())
}

func TestEmptyLayout(t *testing.T) {
	l := NewLayout(DefaultMetrics)
	assert.Equal(t, 0, l.RowCount())
	assert.Equal(t, 0, l.ColumnCount())
	l.SetMode(ModeMatrix)
	assert.Equal(t, 0, l.RowCount())
	assert.Nil(t, l.MatrixRow(0, 0, 10))

	l.SetSequence(nil)
	assert.True(t, l.Sequence().IsEmpty())
}
