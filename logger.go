package geovec

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with geovec-specific context.
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

// NewJSONLogger creates a Logger that writes JSON records to w.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that writes human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithContextID adds the engine context id to every record.
func (l *Logger) WithContextID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("context_id", id),
	}
}

// WithOp adds a ufunc name field to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// LogInit logs the activation of an engine context.
func (l *Logger) LogInit(engine string) {
	l.Info("engine context initialized", "engine", engine)
}

// LogClose logs the teardown of an engine context.
func (l *Logger) LogClose(collected int) {
	l.Info("engine context closed", "collected", collected)
}

// LogDispatch logs a completed ufunc call.
func (l *Logger) LogDispatch(op string, elements int, duration time.Duration, err error) {
	ol := l.WithOp(op)
	if err != nil {
		ol.Error("dispatch failed",
			"elements", elements,
			"error", err,
		)
	} else {
		ol.Debug("dispatch completed",
			"elements", elements,
			"duration", duration,
		)
	}
}

// LogNotice logs a non-fatal engine diagnostic.
func (l *Logger) LogNotice(n Notice) {
	l.WithOp(n.Op).Warn("engine notice", "message", n.Message)
}

// LogCollected logs handles reclaimed from the garbage collector.
func (l *Logger) LogCollected(n int) {
	if n > 0 {
		l.Debug("collected unreachable geometries", "count", n)
	}
}
