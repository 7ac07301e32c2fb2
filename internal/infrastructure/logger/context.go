package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var loggerKey ctxKey

// WithContext stores l in ctx
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	return FromContextOr(ctx, zap.NewNop())
}

// FromContextOr returns the logger stored in ctx, or fallback
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return fallback
}

// WithRequestID stores a logger tagged with requestID in ctx
func WithRequestID(ctx context.Context, l *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	l = l.With(zap.String("request_id", requestID))
	return WithContext(ctx, l), l
}

// TraceFields returns trace_id and span_id for the active span, if any
func TraceFields(ctx context.Context) []zap.Field {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}

// ContextLogger writes through the logger in ctx and adds the active span IDs
// at write time, so spans started after L was called are still picked up.
type ContextLogger struct {
	ctx    context.Context
	logger *zap.Logger
}

// L returns a ContextLogger for ctx.
// Usage: logger.L(ctx).Info("tour created", zap.String("tour_id", id))
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: FromContext(ctx)}
}

// With returns a child that adds fields to every entry
func (cl *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	return &ContextLogger{ctx: cl.ctx, logger: cl.base().With(fields...)}
}

func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) { cl.write(zapcore.DebugLevel, msg, fields) }
func (cl *ContextLogger) Info(msg string, fields ...zap.Field)  { cl.write(zapcore.InfoLevel, msg, fields) }
func (cl *ContextLogger) Warn(msg string, fields ...zap.Field)  { cl.write(zapcore.WarnLevel, msg, fields) }
func (cl *ContextLogger) Error(msg string, fields ...zap.Field) { cl.write(zapcore.ErrorLevel, msg, fields) }

func (cl *ContextLogger) base() *zap.Logger {
	if cl.logger == nil {
		return zap.NewNop()
	}
	return cl.logger
}

func (cl *ContextLogger) write(lvl zapcore.Level, msg string, fields []zap.Field) {
	l := cl.base()
	if !l.Core().Enabled(lvl) {
		return
	}
	l.With(TraceFields(cl.ctx)...).Log(lvl, msg, fields...)
}
