package xlog

import (
	"context"
)

// C is a short alias of FromContext.
var C = FromContext

type contextKey struct{}

// FromContext returns the Logger carried by ctx, or the default one.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	return Default()
}

// WithContext returns a child context carrying the Logger of ctx extended
// with args.
func WithContext(ctx context.Context, args ...any) context.Context {
	return context.WithValue(ctx, contextKey{}, FromContext(ctx).With(args...))
}

// IntoContext returns a child context carrying l.
func IntoContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}
