package log

import "context"

type contextKey struct{}

// IntoContext returns a copy of ctx carrying l.
func IntoContext(ctx context.Context, l Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or the process-wide logger.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(Logger); ok {
			return l
		}
	}
	return std
}

// FromContextOr returns the logger stored in ctx, or def when there is none.
func FromContextOr(ctx context.Context, def Logger) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(Logger); ok {
			return l
		}
	}
	return def
}
