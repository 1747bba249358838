//go:build !notrace

package axml

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"runtime"
	"time"
)

// TracingEnabled is false when built with -tags notrace
const TracingEnabled = true

type traceLoggerKey struct{}
type spanKey struct{}

// the null logger is a logger that does nothing
var nullLogger = slog.New(slog.DiscardHandler)

// Span is an operation being traced.
type Span interface {
	End()
}

// SpanInfo holds information about a tracing span
type SpanInfo struct {
	ID       string
	ParentID string
	Name     string
	Start    time.Time
}

type logSpan struct {
	info *SpanInfo
	tlog *slog.Logger
}

func (s *logSpan) End() {
	s.tlog.Debug("END",
		slog.String("span_id", s.info.ID),
		slog.String("span_name", s.info.Name),
		slog.Duration("duration", time.Since(s.info.Start)),
	)
}

// WithTraceLogger returns a context carrying tlog. The parser reports
// every anomaly it recovers from to this logger at Warn level.
func WithTraceLogger(ctx context.Context, tlog *slog.Logger) context.Context {
	// If the context already has a trace logger, return the context as is
	if _, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		return ctx
	}

	return context.WithValue(ctx, traceLoggerKey{}, tlog)
}

// WithSpan creates a new span that is a child of the span in ctx, if
// there is one.
func WithSpan(ctx context.Context, name string) (context.Context, *SpanInfo) {
	info := &SpanInfo{
		ID:    generateSpanID(),
		Name:  name,
		Start: time.Now(),
	}
	if parent, ok := ctx.Value(spanKey{}).(*SpanInfo); ok {
		info.ParentID = parent.ID
	}
	return context.WithValue(ctx, spanKey{}, info), info
}

// StartSpan creates a span and logs its start. Call End on the
// returned Span to log its duration.
func StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, info := WithSpan(ctx, name)
	tlog := spanLogger(ctx, getTraceLogFromContext(ctx))
	tlog.Debug("START",
		slog.String("span_id", info.ID),
		slog.String("span_name", info.Name),
	)
	return ctx, &logSpan{info: info, tlog: tlog}
}

// TraceEvent logs msg at Debug level, tagged with the current span.
func TraceEvent(ctx context.Context, msg string, attrs ...slog.Attr) {
	tlog := spanLogger(ctx, getTraceLogFromContext(ctx))
	tlog.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// TraceError logs err at Error level, tagged with the current span.
func TraceError(ctx context.Context, err error, msg string, attrs ...slog.Attr) {
	tlog := spanLogger(ctx, getTraceLogFromContext(ctx))
	attrs = append(attrs, slog.String("error", err.Error()))
	tlog.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func spanLogger(ctx context.Context, tlog *slog.Logger) *slog.Logger {
	if info, ok := ctx.Value(spanKey{}).(*SpanInfo); ok {
		return tlog.With(slog.String("span_id", info.ID))
	}
	return tlog
}

func getTraceLogFromContext(ctx context.Context) *slog.Logger {
	if tlog, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		// Retrieve the function name of the caller for tracing
		pc, _, _, ok := runtime.Caller(2)
		if ok {
			fn := runtime.FuncForPC(pc)
			if fn != nil {
				tlog = tlog.With(slog.String("fn", fn.Name()))
			}
		}

		return tlog
	}

	return nullLogger
}

func generateSpanID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
