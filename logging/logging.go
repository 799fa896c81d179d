// Package logging builds the slog handlers used by the CLI and the browser.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// ContextHandler adds attributes stored with AppendCtx to every record.
type ContextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the
// underlying handler.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx returns a copy of parent carrying attr in addition to any
// attributes already stored.
func AppendCtx(parent context.Context, attr ...slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	prev, _ := parent.Value(ctxKey{}).([]slog.Attr)
	v := make([]slog.Attr, 0, len(prev)+len(attr))
	v = append(v, prev...)
	v = append(v, attr...)
	return context.WithValue(parent, ctxKey{}, v)
}

// Logger creates a text or JSON logger writing to w.
func Logger(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(ContextHandler{h})
}

// ParseLevel maps DEBUG, INFO, WARN or ERROR (any case) to a level. The
// second result is false, and the level INFO, for anything else.
func ParseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}

// FileConfig describes the rotating log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// FileWriter returns a size-rotated writer for cfg, creating the parent
// directory if needed.
func FileWriter(cfg FileConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    max(1, cfg.MaxSizeMB),
		MaxBackups: max(0, cfg.MaxBackups),
	}, nil
}
