package ctxutil

import (
	"context"
	"log/slog"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Logger returns l tagged with the request ID from ctx, or l itself when the
// context carries none.
func Logger(ctx context.Context, l *slog.Logger) *slog.Logger {
	if id := RequestIDFromCtx(ctx); id != "" {
		return l.With(slog.String("request_id", id))
	}
	return l
}
