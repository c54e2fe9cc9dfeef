package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tfl_backend/pkg/dberrors"
)

// GormLogger routes gorm's query log through DBLog
type GormLogger struct {
	SlowThreshold time.Duration
	level         gormlogger.LogLevel
}

// NewGormLogger returns a gorm logger; queries slower than slow are warned about
func NewGormLogger(slow time.Duration) *GormLogger {
	return &GormLogger{SlowThreshold: slow, level: gormlogger.Warn}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		FromContext(ctx).Info(msg, "args", args)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		FromContext(ctx).Warn(msg, "args", args)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		FromContext(ctx).Error(msg, "args", args)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && expected(err):
		FromContext(ctx).Debug("database operation rejected", "query", sql, "reason", err.Error())
	case err != nil && l.level >= gormlogger.Error:
		DBLog(ctx, operation(sql), sql, elapsed, err)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		FromContext(ctx).Warn("slow query", "query", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		DBLog(ctx, operation(sql), sql, elapsed, nil)
	}
}

// expected reports errors that are part of normal control flow: missing
// rows and unique violations the repositories turn into conflicts.
func expected(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || dberrors.IsUniqueViolation(err)
}

func operation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
