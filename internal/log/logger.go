// Package log wraps slog with per-component context shared across the
// CLI and the fetch pipeline.
package log

import (
	"log/slog"
	"os"
)

const defaultComponent = "paysum"

// Logger is a slog.Logger that tags every record with the component it
// logs for.
type Logger struct {
	*slog.Logger
	base      *slog.Logger
	component string
}

// New builds a text logger on stdout at the given level and installs it as
// the process default.
func New(level slog.Level) *Logger {
	return NewWithHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// NewWithHandler builds a logger on an explicit handler.
func NewWithHandler(handler slog.Handler) *Logger {
	base := slog.New(handler)
	slog.SetDefault(base)
	return &Logger{
		Logger:    base.With("component", defaultComponent),
		base:      base,
		component: defaultComponent,
	}
}

// WithComponent returns a logger tagging every record with the component
// name. The tag replaces the previous one rather than stacking.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.base.With("component", component),
		base:      l.base,
		component: component,
	}
}

// With returns a logger with extra attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		base:      l.base,
		component: l.component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}
