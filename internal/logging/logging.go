// Package logging configures the structured logger shared by all three
// processes.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type correlationKey struct{}

// correlationHandler stamps every record with the run's correlation id.
type correlationHandler struct {
	slog.Handler
	runID string
}

func (h *correlationHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("run_id", h.runID))
	return h.Handler.Handle(ctx, r)
}

func (h *correlationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &correlationHandler{Handler: h.Handler.WithAttrs(attrs), runID: h.runID}
}

func (h *correlationHandler) WithGroup(name string) slog.Handler {
	return &correlationHandler{Handler: h.Handler.WithGroup(name), runID: h.runID}
}

// Init builds and installs the process-wide logger. level is one of
// "debug", "info", "warn", "error" (default "info"); format is "json" or
// "text" (default "text"). Every record carries a fresh per-run
// correlation id so interleaved logs from the three processes can be told
// apart.
func Init(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	handler = &correlationHandler{Handler: handler, runID: uuid.NewString()}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithContext returns a context carrying logger for call chains that want
// to thread a logger without a package-level default.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, correlationKey{}, logger)
}

// FromContext returns the logger stashed by WithContext, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(correlationKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
