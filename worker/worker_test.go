package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"rgbmatrix/pixel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bitmap(w, h int) *pixel.Bitmap {
	return &pixel.Bitmap{Width: w, Height: h, Data: make([]byte, w*h*pixel.BytesPerPixel)}
}

func next(t *testing.T, w *Worker) Response {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, ok := w.Next(ctx)
	require.True(t, ok, "no response before timeout")
	return resp
}

func TestSubmitAndComplete(t *testing.T) {
	w := New(WithLogger(quietLogger()))
	defer w.Stop()

	id, err := w.Submit(bitmap(3, 2))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	resp := next(t, w)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, KindComplete, resp.Kind)
	assert.NoError(t, resp.Err)
	assert.Equal(t, 6, resp.Pixels.Len())
	assert.False(t, w.Pending())
}

func TestSubmitNilBitmapYieldsEmpty(t *testing.T) {
	w := New(WithLogger(quietLogger()))
	defer w.Stop()

	_, err := w.Submit(nil)
	require.NoError(t, err)
	resp := next(t, w)
	assert.Equal(t, KindComplete, resp.Kind)
	assert.True(t, resp.Pixels.IsEmpty())
}

func TestSubmitWhilePendingIsRejected(t *testing.T) {
	release := make(chan struct{})
	w := New(
		WithLogger(quietLogger()),
		WithExtractFunc(func(b *pixel.Bitmap) *pixel.Sequence {
			<-release
			return pixel.Extract(b)
		}),
	)
	defer w.Stop()

	first, err := w.Submit(bitmap(1, 1))
	require.NoError(t, err)
	assert.True(t, w.Pending())

	_, err = w.Submit(bitmap(2, 2))
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	resp := next(t, w)
	assert.Equal(t, first, resp.ID)
	assert.Equal(t, 1, resp.Pixels.Len())

	// The slot is free again and the worker is reusable.
	second, err := w.Submit(bitmap(2, 2))
	require.NoError(t, err)
	resp = next(t, w)
	assert.Equal(t, second, resp.ID)
	assert.Equal(t, 4, resp.Pixels.Len())
}

func TestPanicBecomesExtractionError(t *testing.T) {
	w := New(
		WithLogger(quietLogger()),
		WithExtractFunc(func(*pixel.Bitmap) *pixel.Sequence {
			panic("decoder exploded")
		}),
	)
	defer w.Stop()

	id, err := w.Submit(bitmap(1, 1))
	require.NoError(t, err)

	resp := next(t, w)
	assert.Equal(t, KindFailed, resp.Kind)
	assert.Nil(t, resp.Pixels)

	var xerr *ExtractionError
	require.True(t, errors.As(resp.Err, &xerr))
	assert.Equal(t, id, xerr.RequestID)
	assert.Contains(t, xerr.Error(), "decoder exploded")

	// A failure does not kill the goroutine.
	assert.False(t, w.Pending())
	_, err = w.Submit(bitmap(1, 1))
	assert.NoError(t, err)
}

func TestStop(t *testing.T) {
	w := New(WithLogger(quietLogger()))
	w.Start()
	w.Stop()
	w.Stop()

	_, err := w.Submit(bitmap(1, 1))
	assert.ErrorIs(t, err, ErrStopped)

	_, ok := w.Next(context.Background())
	assert.False(t, ok)
}

func TestNextHonorsContext(t *testing.T) {
	w := New(WithLogger(quietLogger()))
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := w.Next(ctx)
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "progress", KindProgress.String())
	assert.Equal(t, "complete", KindComplete.String())
	assert.Equal(t, "failed", KindFailed.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
