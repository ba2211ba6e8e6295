// Package logging threads a request scoped slog.Logger through context so the
// HTTP middleware, the services, and the reminder job all write through the
// same annotated logger.
package logging

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// WithLogger returns a context carrying logger. A nil logger leaves the
// context unchanged.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger carried by ctx, falling back first to fallback
// and then to slog.Default. It never returns nil.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}

// Attached reports the logger carried by ctx, or nil when none was attached.
func Attached(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey{}).(*slog.Logger)
	return logger
}
