package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

var log *slog.Logger

// Init installs the process logger for an environment:
//   - production: JSON at info
//   - development: text at debug
//   - test: text at warn, so passing suites stay quiet
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

// InitWithWriter is Init with an explicit destination
func InitWithWriter(env string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true}

	var handler slog.Handler
	switch env {
	case "development":
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	case "test":
		opts.Level = slog.LevelWarn
		opts.AddSource = false
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler).With("service", "tfl")
	slog.SetDefault(log)
}

func current() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) { current().Debug(msg, args...) }
func Info(msg string, args ...any)  { current().Info(msg, args...) }
func Warn(msg string, args ...any)  { current().Warn(msg, args...) }
func Error(msg string, args ...any) { current().Error(msg, args...) }

// Fatal logs and exits with status 1
func Fatal(msg string, args ...any) {
	current().Error(msg, args...)
	os.Exit(1)
}

// WithError returns a logger carrying an error field
func WithError(err error) *slog.Logger {
	return current().With("error", err.Error())
}

// DBLog records one SQL statement. Failures go out at error level,
// everything else at debug.
func DBLog(ctx context.Context, operation, query string, duration time.Duration, err error) {
	l := FromContext(ctx).With(
		"operation", operation,
		"query", query,
		"duration_ms", duration.Milliseconds(),
	)
	if err != nil {
		l.Error("database operation failed", "error", err.Error())
		return
	}
	l.Debug("database operation")
}

// MailLog records one outbound email attempt
func MailLog(ctx context.Context, provider, kind, to string, err error) {
	l := FromContext(ctx).With("provider", provider, "kind", kind, "to", to)
	if err != nil {
		l.Error("email send failed", "error", err.Error())
		return
	}
	l.Info("email sent")
}
