// Package worker runs pixel extraction on a dedicated goroutine. The caller
// talks to it only through messages: one request in, one terminal response
// out. At most one request may be pending; extra submissions are rejected
// rather than queued, and a running extraction cannot be cancelled.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rgbmatrix/pixel"

	"github.com/google/uuid"
)

var (
	// ErrBusy is returned by Submit while a request is in flight.
	ErrBusy = errors.New("extraction already in progress")
	// ErrStopped is returned by Submit after Stop.
	ErrStopped = errors.New("worker stopped")
)

// Kind tags a Response.
type Kind int

const (
	// KindProgress is reserved for incremental progress reports. The
	// extractor never sends it; it keeps the protocol open for one.
	KindProgress Kind = iota
	KindComplete
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindProgress:
		return "progress"
	case KindComplete:
		return "complete"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request asks for one bitmap to be extracted. A nil Bitmap is allowed and
// produces an empty sequence.
type Request struct {
	ID     uuid.UUID
	Bitmap *pixel.Bitmap
}

// Response carries the outcome of a Request.
type Response struct {
	ID       uuid.UUID
	Kind     Kind
	Progress int // percent, KindProgress only
	Pixels   *pixel.Sequence
	Err      error
	Elapsed  time.Duration
}

// ExtractionError wraps a failure inside the worker goroutine.
type ExtractionError struct {
	RequestID uuid.UUID
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction %s failed: %v", e.RequestID, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ExtractFunc performs the actual work. It defaults to pixel.Extract.
type ExtractFunc func(*pixel.Bitmap) *pixel.Sequence

// Worker owns the background goroutine. The zero value is not usable; call
// New. The goroutine starts lazily on the first Submit (or Start) and is
// terminated by Stop.
type Worker struct {
	extract ExtractFunc
	logger  *slog.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	pending bool

	requests  chan Request
	responses chan Response
	done      chan struct{}
}

// Option configures a Worker.
type Option func(*Worker)

// WithExtractFunc replaces the extraction routine.
func WithExtractFunc(fn ExtractFunc) Option {
	return func(w *Worker) { w.extract = fn }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(w *Worker) { w.logger = l }
}

// New creates a worker. Nothing runs until Start or Submit.
func New(opts ...Option) *Worker {
	w := &Worker{
		extract:   pixel.Extract,
		logger:    slog.Default(),
		requests:  make(chan Request, 1),
		responses: make(chan Response, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the goroutine if it is not already running.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.startLocked()
}

func (w *Worker) startLocked() {
	if w.started || w.stopped {
		return
	}
	w.started = true
	go w.loop()
	w.logger.Debug("extraction worker started")
}

// Submit enqueues bitmap for extraction and returns the request id. It
// never blocks: a pending request yields ErrBusy.
func (w *Worker) Submit(b *pixel.Bitmap) (uuid.UUID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return uuid.Nil, ErrStopped
	}
	if w.pending {
		return uuid.Nil, ErrBusy
	}
	w.startLocked()

	req := Request{ID: uuid.New(), Bitmap: b}
	w.pending = true
	w.requests <- req
	w.logger.Debug("extraction submitted",
		slog.String("request", req.ID.String()),
		slog.Any("dims", b.Dimensions()))
	return req.ID, nil
}

// Pending reports whether a request is in flight.
func (w *Worker) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Next waits for the response to the pending request and frees the slot.
// The second result is false when the worker stopped or ctx ended first.
func (w *Worker) Next(ctx context.Context) (Response, bool) {
	select {
	case resp := <-w.responses:
		w.release()
		return resp, true
	case <-w.done:
		return Response{}, false
	case <-ctx.Done():
		return Response{}, false
	}
}

// release frees the pending slot once a response has been consumed.
func (w *Worker) release() {
	w.mu.Lock()
	w.pending = false
	w.mu.Unlock()
}

// Stop terminates the goroutine. An extraction that is already running
// finishes, but its response is dropped. Stop is idempotent.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.done)
	w.logger.Debug("extraction worker stopped")
}

func (w *Worker) loop() {
	for {
		select {
		case <-w.done:
			return
		case req := <-w.requests:
			resp := w.run(req)
			select {
			case w.responses <- resp:
			case <-w.done:
				return
			}
		}
	}
}

// run executes one request and converts panics into KindFailed.
func (w *Worker) run(req Request) (resp Response) {
	start := time.Now()
	resp = Response{ID: req.ID}

	defer func() {
		resp.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			resp.Kind = KindFailed
			resp.Pixels = nil
			resp.Err = &ExtractionError{RequestID: req.ID, Err: err}
			w.logger.Error("extraction failed",
				slog.String("request", req.ID.String()),
				slog.Any("error", err))
			return
		}
		w.logger.Info("extraction complete",
			slog.String("request", req.ID.String()),
			slog.Int("pixels", resp.Pixels.Len()),
			slog.Duration("elapsed", resp.Elapsed))
	}()

	resp.Pixels = w.extract(req.Bitmap)
	if resp.Pixels == nil {
		resp.Pixels = pixel.Empty
	}
	resp.Kind = KindComplete
	return resp
}
