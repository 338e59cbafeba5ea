// Package log provides the slog handler and the once-only process logging
// setup used by the shim.
package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
)

const timeFormat = "2006-01-02T15:04:05.000"

// Handler implements slog.Handler and renders one line per record:
//
//	[2006-01-02T15:04:05.000  INFO file.go:12] message key=value
type Handler struct {
	opts   handlerConfig
	mu     *sync.Mutex
	attrs  []byte
	prefix string
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	writer    io.Writer
	level     slog.Leveler
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		writer: os.Stdout,
		level:  slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithWriter sets the destination of rendered records.
func WithWriter(w io.Writer) HandlerOption {
	return func(c *handlerConfig) {
		c.writer = w
	}
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{opts: cfg, mu: &sync.Mutex{}}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

// WithAttrs returns a new Handler that renders attrs after every message.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = bytes.Clone(h.attrs)
	for _, a := range attrs {
		clone.attrs = appendAttr(clone.attrs, h.prefix, a)
	}
	return &clone
}

// WithGroup returns a new Handler that qualifies later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// Handle renders record and writes it as a single line.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	buf := make([]byte, 0, 128)
	buf = append(buf, '[')
	buf = record.Time.AppendFormat(buf, timeFormat)
	buf = append(buf, ' ')
	buf = appendLevel(buf, record.Level)
	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		frame, _ := frames.Next()
		buf = append(buf, ' ')
		buf = append(buf, filepath.Base(frame.File)...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(frame.Line), 10)
	}
	buf = append(buf, "] "...)
	buf = append(buf, record.Message...)
	buf = append(buf, h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, h.prefix, a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.opts.writer.Write(buf)
	return err
}

func appendLevel(buf []byte, level slog.Level) []byte {
	s := level.String()
	for i := len(s); i < 5; i++ {
		buf = append(buf, ' ')
	}
	return append(buf, s...)
}
