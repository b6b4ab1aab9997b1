package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dom/aura-backend/internal/logger"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// zapGormLogger routes gorm's query log through the application logger.
type zapGormLogger struct {
	log   *logger.Logger
	level gormLogger.LogLevel
}

func newGormLogger(log *logger.Logger) *zapGormLogger {
	return &zapGormLogger{log: log.With("component", "gorm"), level: gormLogger.Warn}
}

func (l *zapGormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *zapGormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormLogger.Info {
		l.log.SugaredLogger.Infof(msg, args...)
	}
}

func (l *zapGormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormLogger.Warn {
		l.log.SugaredLogger.Warnf(msg, args...)
	}
}

func (l *zapGormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormLogger.Error {
		l.log.SugaredLogger.Errorf(msg, args...)
	}
}

func (l *zapGormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormLogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		query, rows := fc()
		l.log.Error("query failed", "query", query, "rows", rows, "elapsed", elapsed, "error", err)
	case elapsed > slowQueryThreshold && l.level >= gormLogger.Warn:
		query, rows := fc()
		l.log.Warn("slow query", "query", query, "rows", rows, "elapsed", elapsed)
	case l.level >= gormLogger.Info:
		query, rows := fc()
		l.log.Debug("query", "query", query, "rows", rows, "elapsed", elapsed)
	}
}

// ParamsFilter keeps bound values (password hashes, emails) out of the log.
func (l *zapGormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}
