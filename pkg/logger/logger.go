package logger

import (
	"context"
	"log/slog"
	"os"
)

// Handler is a slog.Handler that emits JSON with service metadata attached
// to every record.
type Handler struct {
	inner slog.Handler
}

// NewHandler creates a new Handler. A nil opts uses debug level.
func NewHandler(opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelDebug}
	}

	hostname, _ := os.Hostname()

	inner := slog.NewJSONHandler(os.Stdout, opts).WithAttrs([]slog.Attr{
		slog.String("service", "pos-core"),
		slog.String("hostname", hostname),
	})

	return &Handler{inner: inner}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	return h.inner.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name)}
}
