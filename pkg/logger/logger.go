package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger with the helpers used across the services.
type Logger struct {
	*zap.Logger
}

// New creates a logger for the given level ("debug", "info", ...) and encoding ("json" or "console").
func New(level, encoding string) (*Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if encoding == "" {
		encoding = "json"
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = encoding
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: zl}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

type ctxKey struct{}

// WithFields stores fields on the context so the *Context methods attach them.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	existing, _ := ctx.Value(ctxKey{}).([]zap.Field)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func fromContext(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	ctxFields, ok := ctx.Value(ctxKey{}).([]zap.Field)
	if !ok || len(ctxFields) == 0 {
		return fields
	}
	return append(ctxFields[:len(ctxFields):len(ctxFields)], fields...)
}

func (l *Logger) DebugContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Debug(msg, fromContext(ctx, fields)...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Info(msg, fromContext(ctx, fields)...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Warn(msg, fromContext(ctx, fields)...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Error(msg, fromContext(ctx, fields)...)
}

// Field creates a field of any type.
func Field(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

// ErrorField creates an error field.
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

func Float64Field(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}
