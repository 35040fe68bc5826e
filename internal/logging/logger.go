// Package logging provides structured logging on top of log/slog
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// ContextKey is the type of the context keys copied into log records
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	TaskIDKey    ContextKey = "task_id"
	QueryKey     ContextKey = "query"
)

var contextKeys = []ContextKey{RequestIDKey, TaskIDKey, QueryKey}

var defaultLogger atomic.Pointer[slog.Logger]

// Init configures the default logger. Output goes to stderr so that CLI
// results on stdout stay machine-readable.
func Init(level string, format string) {
	InitWriter(os.Stderr, level, format)
}

// InitWriter configures the default logger to write to w
func InitWriter(w io.Writer, level string, format string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	defaultLogger.Store(logger)
	slog.SetDefault(logger)
}

// ParseLevel maps a level name to a slog level; unknown names map to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the default logger, initializing it on first use
func Default() *slog.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	Init("info", "text")
	return defaultLogger.Load()
}

// FromContext returns the default logger enriched with the request, task
// and query values found in ctx
func FromContext(ctx context.Context) *slog.Logger {
	logger := Default()
	if ctx == nil {
		return logger
	}
	for _, key := range contextKeys {
		if v := ctx.Value(key); v != nil {
			logger = logger.With(string(key), v)
		}
	}
	return logger
}

// WithContext stores a log field in ctx
func WithContext(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

// Info logs at INFO level
func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

// Debug logs at DEBUG level
func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

// Warn logs at WARN level
func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

// Error logs at ERROR level with err attached
func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	FromContext(ctx).Error(msg, args...)
}
