package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
)

// WithRequestID tags every Ctx* log line made with the returned context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID tags log lines with the signed-in user
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// FromContext returns the process logger with request_id and user_id
// attached when the context carries them.
func FromContext(ctx context.Context) *slog.Logger {
	l := current()
	if ctx == nil {
		return l
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		l = l.With("request_id", id)
	}
	if id, ok := ctx.Value(userIDKey).(uint); ok && id != 0 {
		l = l.With("user_id", id)
	}
	return l
}

func CtxDebug(ctx context.Context, msg string, args ...any) { FromContext(ctx).Debug(msg, args...) }
func CtxInfo(ctx context.Context, msg string, args ...any)  { FromContext(ctx).Info(msg, args...) }
func CtxWarn(ctx context.Context, msg string, args ...any)  { FromContext(ctx).Warn(msg, args...) }
func CtxError(ctx context.Context, msg string, args ...any) { FromContext(ctx).Error(msg, args...) }

// CtxWithError logs at error level with the error attached
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{"error", err.Error()}, args...)...)
}
