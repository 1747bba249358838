//go:build notrace

package axml

import (
	"context"
	"log/slog"
	"time"
)

// No-op implementations when built with -tags notrace

const TracingEnabled = false

var nullLogger = slog.New(slog.DiscardHandler)

type Span interface {
	End()
}

type noOpSpan struct{}

func (s *noOpSpan) End() {}

type SpanInfo struct {
	ID       string
	ParentID string
	Name     string
	Start    time.Time
}

// WithTraceLogger adds a trace logger to the context - no-op version
func WithTraceLogger(ctx context.Context, tlog *slog.Logger) context.Context {
	return ctx
}

// WithSpan creates a new span context - no-op version
func WithSpan(ctx context.Context, name string) (context.Context, *SpanInfo) {
	return ctx, nil
}

// StartSpan creates a new span - no-op version
func StartSpan(ctx context.Context, name string) (context.Context, Span) {
	return ctx, &noOpSpan{}
}

// TraceEvent logs a structured event - no-op version
func TraceEvent(ctx context.Context, msg string, attrs ...slog.Attr) {}

// TraceError logs an error - no-op version
func TraceError(ctx context.Context, err error, msg string, attrs ...slog.Attr) {}

// getTraceLogFromContext returns null logger - no-op version
func getTraceLogFromContext(ctx context.Context) *slog.Logger {
	return nullLogger
}

func generateSpanID() string {
	return ""
}
