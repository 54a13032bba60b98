package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"muthurwa/config"
	deliverycontext "muthurwa/internal/delivery/context"
	"muthurwa/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// gormSlogLogger routes gorm output through the request logger when the query
// runs inside a request, so SQL lines carry the request id and the caller.
// Missing records are the normal outcome of scoped lookups and are not logged.
type gormSlogLogger struct {
	base          *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

// newGormSlogLogger reads the database section: logQueries enables per-query
// lines and slowQueryThreshold (0 disables) flags slow statements.
func newGormSlogLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	l := &gormSlogLogger{
		base:          base,
		level:         logger.Warn,
		slowThreshold: defaultSlowQueryThreshold,
	}
	if cfg == nil {
		return l
	}

	if cfg.Database.LogQueries {
		l.level = logger.Info
	}
	if cfg.Database.SlowQueryThreshold != nil {
		l.slowThreshold = *cfg.Database.SlowQueryThreshold
	}

	return l
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *gormSlogLogger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < threshold {
		return
	}

	l.logger(ctx).LogAttrs(ctx, level, "Database message", slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRows func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		l.query(ctx, slog.LevelError, "Database query failed", sqlAndRows, elapsed, slog.String("error", err.Error()))
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		l.query(ctx, slog.LevelWarn, "Slow database query", sqlAndRows, elapsed, slog.Duration("threshold", l.slowThreshold))
	case l.level >= logger.Info:
		l.query(ctx, slog.LevelDebug, "Database query", sqlAndRows, elapsed)
	}
}

func (l *gormSlogLogger) query(ctx context.Context, level slog.Level, msg string, sqlAndRows func() (string, int64), elapsed time.Duration, extra ...slog.Attr) {
	sql, rows := sqlAndRows()
	attrs := append([]slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}, extra...)

	l.logger(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *gormSlogLogger) logger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return l.base
	}

	return deliverycontext.Logger(ctx, l.base)
}
