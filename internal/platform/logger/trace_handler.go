package logger

import (
	"context"
	"io"
	"log/slog"
)

// TraceHandler is a slog.Handler that writes JSON and adds the trace ID found
// in the record's context as a trace_id attribute.
type TraceHandler struct {
	handler slog.Handler
}

// NewTraceHandler creates a TraceHandler writing JSON to out.
func NewTraceHandler(out io.Writer, opts *slog.HandlerOptions) *TraceHandler {
	var handlerOpts slog.HandlerOptions
	if opts != nil {
		// Copy so the caller's options are never modified.
		handlerOpts = *opts
	}
	return &TraceHandler{handler: slog.NewJSONHandler(out, &handlerOpts)}
}

// Enabled implements the slog.Handler interface.
func (h *TraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup implements the slog.Handler interface.
func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{handler: h.handler.WithGroup(name)}
}

// Handle implements the slog.Handler interface.
func (h *TraceHandler) Handle(ctx context.Context, record slog.Record) error {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		record = record.Clone()
		record.AddAttrs(slog.String("trace_id", traceID))
	}
	return h.handler.Handle(ctx, record)
}
