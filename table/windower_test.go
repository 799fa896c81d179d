package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWindower(sizer Sizer, n, viewport, overscan int) *Windower {
	w := NewWindower(sizer, overscan)
	w.SetCount(n)
	w.SetViewport(viewport)
	return w
}

func TestWindowEmpty(t *testing.T) {
	w := newWindower(FixedSize(1), 0, 10, 3)
	if diff := cmp.Diff(Window{}, w.Window()); diff != "" {
		t.Errorf("Window() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, w.TotalExtent())
	assert.Equal(t, 0, w.MaxScroll())
	assert.False(t, w.ScrollToIndex(0, AlignCenter))
	assert.Equal(t, -1, w.IndexAt(0))
}

func TestWindowFixed(t *testing.T) {
	w := newWindower(FixedSize(1), 100, 10, 2)

	win := w.Window()
	assert.Equal(t, 0, win.StartIndex)
	assert.Equal(t, 12, win.EndIndex)
	assert.Equal(t, 100, win.TotalExtent)

	w.ScrollTo(50)
	win = w.Window()
	assert.Equal(t, 48, win.StartIndex)
	assert.Equal(t, 62, win.EndIndex)
	require.Len(t, win.Items, 14)
	if diff := cmp.Diff(Item{Index: 48, Start: 48, Size: 1}, win.Items[0]); diff != "" {
		t.Errorf("first item mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowZoomed(t *testing.T) {
	// 2 * 150% = 3 units per row.
	w := newWindower(ZoomedSize{Base: 2, Zoom: 150, Floor: 1}, 10, 7, 0)
	w.ScrollTo(4)

	want := Window{
		StartIndex: 1,
		EndIndex:   4,
		Items: []Item{
			{Index: 1, Start: 3, Size: 3},
			{Index: 2, Start: 6, Size: 3},
			{Index: 3, Start: 9, Size: 3},
		},
		TotalExtent: 30,
	}
	if diff := cmp.Diff(want, w.Window()); diff != "" {
		t.Errorf("Window() mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowCoversViewport(t *testing.T) {
	sizers := []Sizer{
		FixedSize(1),
		FixedSize(3),
		ZoomedSize{Base: 2, Zoom: 50, Floor: 1},
		ZoomedSize{Base: 8, Zoom: 175, Floor: 2},
	}
	for _, s := range sizers {
		for _, n := range []int{1, 2, 7, 50} {
			for _, v := range []int{1, 5, 13} {
				for _, o := range []int{0, 1, 4} {
					w := newWindower(s, n, v, o)
					for off := 0; off <= w.MaxScroll(); off++ {
						w.ScrollTo(off)
						checkWindow(t, w, s, n, v, o)
					}
				}
			}
		}
	}
}

// checkWindow asserts the window is contiguous, covers every row that
// intersects the viewport plus the overscan, and stays inside [0, n).
func checkWindow(t *testing.T, w *Windower, s Sizer, n, v, o int) {
	t.Helper()
	win := w.Window()
	off := w.ScrollOffset()

	total := 0
	for i := 0; i < n; i++ {
		total += s.Size(i)
	}
	require.Equal(t, total, win.TotalExtent)

	require.GreaterOrEqual(t, win.StartIndex, 0)
	require.LessOrEqual(t, win.EndIndex, n)
	require.Len(t, win.Items, win.EndIndex-win.StartIndex)
	for k, it := range win.Items {
		require.Equal(t, win.StartIndex+k, it.Index)
		require.Equal(t, s.Offset(it.Index), it.Start)
	}

	first, last := -1, -1
	for i := 0; i < n; i++ {
		start, end := s.Offset(i), s.Offset(i)+s.Size(i)
		if end > off && start < off+v {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	require.GreaterOrEqual(t, first, 0, "no row intersects the viewport")
	assert.Equal(t, max(0, first-o), win.StartIndex, "offset %d", off)
	assert.Equal(t, min(n, last+1+o), win.EndIndex, "offset %d", off)
}

func TestScrollClamps(t *testing.T) {
	w := newWindower(FixedSize(1), 100, 10, 0)
	w.ScrollTo(1000)
	assert.Equal(t, 90, w.ScrollOffset())
	w.ScrollTo(-5)
	assert.Equal(t, 0, w.ScrollOffset())
	w.ScrollBy(7)
	assert.Equal(t, 7, w.ScrollOffset())

	// Shrinking the row count pulls the offset back.
	w.ScrollTo(90)
	w.SetCount(50)
	assert.Equal(t, 40, w.ScrollOffset())

	// A viewport larger than the content pins the offset at zero.
	w.SetViewport(500)
	assert.Equal(t, 0, w.ScrollOffset())
	assert.Equal(t, 0, w.MaxScroll())
}

func TestScrollToIndexCenter(t *testing.T) {
	tests := []struct {
		name   string
		sizer  Sizer
		n, v   int
		index  int
		target int
	}{
		{"middle", FixedSize(1), 100, 10, 50, 45},
		{"near end clamps", FixedSize(1), 100, 10, 99, 90},
		{"tall rows", FixedSize(2), 100, 9, 10, 17},
		{"zoomed", ZoomedSize{Base: 2, Zoom: 200, Floor: 1}, 20, 10, 5, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWindower(tt.sizer, tt.n, tt.v, 0)
			require.True(t, w.ScrollToIndex(tt.index, AlignCenter))
			assert.True(t, w.Animating())
			assert.Equal(t, tt.target, w.Target())
			assert.Equal(t, 0, w.ScrollOffset(), "smooth scroll does not jump")
			w.Finish()
			assert.False(t, w.Animating())
			assert.Equal(t, tt.target, w.ScrollOffset())
		})
	}
}

func TestScrollToIndexAtTarget(t *testing.T) {
	w := newWindower(FixedSize(1), 100, 10, 0)
	assert.True(t, w.ScrollToIndex(0, AlignCenter))
	assert.False(t, w.Animating())
	assert.False(t, w.ScrollToIndex(100, AlignCenter))
	assert.False(t, w.ScrollToIndex(-1, AlignStart))
}

func TestScrollToIndexAlignments(t *testing.T) {
	w := newWindower(FixedSize(1), 100, 10, 0)

	w.ScrollToIndex(30, AlignStart)
	w.Finish()
	assert.Equal(t, 30, w.ScrollOffset())

	w.ScrollToIndex(30, AlignEnd)
	w.Finish()
	assert.Equal(t, 21, w.ScrollOffset())
}

func TestReveal(t *testing.T) {
	w := newWindower(FixedSize(1), 100, 10, 0)

	w.Reveal(15)
	assert.Equal(t, 6, w.ScrollOffset())
	assert.True(t, w.IsVisible(15))

	w.Reveal(8)
	assert.Equal(t, 6, w.ScrollOffset(), "visible rows do not scroll")

	w.Reveal(2)
	assert.Equal(t, 2, w.ScrollOffset())
	assert.False(t, w.Animating())
}

func TestStepEasesToTarget(t *testing.T) {
	w := newWindower(FixedSize(1), 100, 10, 0)
	w.ScrollToIndex(50, AlignCenter)

	prev := w.ScrollOffset()
	frames := 0
	for w.Step() {
		frames++
		require.Less(t, frames, 100, "animation never settles")
		require.Greater(t, w.ScrollOffset(), prev)
		prev = w.ScrollOffset()
	}
	assert.Equal(t, 45, w.ScrollOffset())
	assert.False(t, w.Step())

	// And back up.
	w.ScrollToIndex(0, AlignStart)
	for w.Step() {
	}
	assert.Equal(t, 0, w.ScrollOffset())
}

func TestManualScrollCancelsAnimation(t *testing.T) {
	w := newWindower(FixedSize(1), 100, 10, 0)
	w.ScrollToIndex(50, AlignCenter)
	w.ScrollBy(1)
	assert.False(t, w.Animating())
	assert.Equal(t, 1, w.ScrollOffset())
}

func TestSetSizerKeepsTopRow(t *testing.T) {
	w := newWindower(FixedSize(1), 100, 10, 0)
	w.ScrollTo(30)
	w.SetSizer(FixedSize(2))
	assert.Equal(t, 60, w.ScrollOffset())
	assert.Equal(t, 200, w.TotalExtent())
	assert.Equal(t, 30, w.Window().StartIndex)

	w.SetSizer(FixedSize(1))
	assert.Equal(t, 30, w.ScrollOffset())
}

func TestIndexAt(t *testing.T) {
	w := newWindower(FixedSize(3), 10, 6, 0)
	assert.Equal(t, 0, w.IndexAt(0))
	assert.Equal(t, 0, w.IndexAt(2))
	assert.Equal(t, 1, w.IndexAt(3))
	assert.Equal(t, 9, w.IndexAt(29))
	assert.Equal(t, -1, w.IndexAt(30))
	assert.Equal(t, -1, w.IndexAt(-1))

	w.ScrollTo(4)
	assert.Equal(t, 1, w.IndexAtViewport(0))
	assert.Equal(t, 3, w.IndexAtViewport(5))
	assert.Equal(t, -1, w.IndexAtViewport(6))
}
