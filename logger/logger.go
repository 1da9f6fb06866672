// Package logger holds the process-wide slog logger
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

// Init installs the global logger writing to w (stdout when nil)
// format is "json" or "text"
func Init(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	defaultLogger.Store(l)
	slog.SetDefault(l)
	return l
}

// Discard installs a logger that drops everything, for tests and quiet hosts
func Discard() {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	defaultLogger.Store(l)
}

// ParseLevel maps a config string to a level, info on unknown input
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the global logger, initializing an info text logger on first use
func Get() *slog.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return Init("info", "text", nil)
}

// With returns a child logger with attributes
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}
