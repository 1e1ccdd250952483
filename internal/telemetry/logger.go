package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggerOptions controls where and how logs are written.
type LoggerOptions struct {
	Debug  bool
	File   string    // optional, appended to
	Format string    // "json" (default) or "text"
	Writer io.Writer // console sink, defaults to os.Stderr
	Quiet  bool      // drop the console sink
}

// NewLogger builds a logger from opts. The returned closer releases the
// log file, if any.
func NewLogger(opts LoggerOptions) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	newHandler := func(w io.Writer) slog.Handler {
		if strings.EqualFold(opts.Format, "text") {
			return slog.NewTextHandler(w, handlerOpts)
		}
		return slog.NewJSONHandler(w, handlerOpts)
	}

	var handlers []slog.Handler
	if !opts.Quiet {
		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		handlers = append(handlers, newHandler(w))
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
			closer = f
		} else {
			slog.Error("Failed to open log file", "path", opts.File, "error", err)
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(io.Discard, handlerOpts)
	case 1:
		handler = handlers[0]
	default:
		handler = &multiHandler{handlers: handlers}
	}

	return slog.New(handler), closer
}

// InitLogger configures the default logger and returns the closer for the
// optional log file.
func InitLogger(opts LoggerOptions) io.Closer {
	logger, closer := NewLogger(opts)
	slog.SetDefault(logger)
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Component returns the default logger tagged with a component name.
func Component(name string) *slog.Logger {
	return slog.Default().With("component", name)
}

// LogDebug logs a debug message.
func LogDebug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// LogInfo logs an info message.
func LogInfo(msg string, args ...any) {
	slog.Info(msg, args...)
}

// LogError logs an error message.
func LogError(msg string, err error, args ...any) {
	slog.Error(msg, append(args, "error", err)...)
}
