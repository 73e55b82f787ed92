package densekit

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the field helpers the container packages
// agree on, so log lines stay greppable across call sites. Its embedded
// *slog.Logger plugs directly into codec.WithLogger.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler falls back to text output on
// stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger writes JSON records to w at the given minimum level.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger writes human-readable records to w at the given minimum
// level.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger discards all records.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithContainer tags records with the container kind they concern, useful
// when an application juggles several snapshot streams.
func (l *Logger) WithContainer(kind string) *Logger {
	return &Logger{Logger: l.Logger.With("container", kind)}
}

// WithCount tags records with an element count.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{Logger: l.Logger.With("count", count)}
}
