package colgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with colgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithColumn adds a column name field to the logger.
func (l *Logger) WithColumn(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("column", name),
	}
}

// WithRows adds a row count field to the logger.
func (l *Logger) WithRows(rows int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows),
	}
}

// LogSort logs a sort operation.
func (l *Logger) LogSort(ctx context.Context, columnName string, rows int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sort failed",
			"column", columnName,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "sort completed",
			"column", columnName,
			"rows", rows,
			"duration", duration,
		)
	}
}

// LogDatasetSave logs a committed dataset save.
func (l *Logger) LogDatasetSave(ctx context.Context, file string, rows int) {
	l.InfoContext(ctx, "dataset saved",
		"file", file,
		"rows", rows,
	)
}

// LogGroupBy logs a group-by operation.
func (l *Logger) LogGroupBy(ctx context.Context, columns []string, groups int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "group-by failed",
			"columns", columns,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "group-by completed",
			"columns", columns,
			"groups", groups,
			"duration", duration,
		)
	}
}
