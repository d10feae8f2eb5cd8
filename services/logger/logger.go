package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Level is the minimum severity a Logger emits
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// ParseLevel maps "debug", "info", "error" to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is the printf-style logger services depend on
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// DefaultLogger implements Logger on top of slog
type DefaultLogger struct {
	level Level
	log   *slog.Logger
}

// NewDefaultLogger writes colourised text in dev and JSON everywhere else
func NewDefaultLogger(level Level, env string) *DefaultLogger {
	return newLogger(os.Stdout, level, env)
}

func newLogger(w io.Writer, level Level, env string) *DefaultLogger {
	var handler slog.Handler
	if env == "dev" || env == "local" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level.slogLevel(),
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	}
	return &DefaultLogger{level: level, log: slog.New(handler)}
}

// Slog exposes the underlying structured logger for request logging
func (l *DefaultLogger) Slog() *slog.Logger {
	return l.log
}

// Info logs at info level
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	if l.level <= InfoLevel {
		l.log.Info(fmt.Sprintf(format, v...))
	}
}

// Error logs at error level
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	if l.level <= ErrorLevel {
		l.log.Error(fmt.Sprintf(format, v...))
	}
}

// Debug logs at debug level
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	if l.level <= DebugLevel {
		l.log.Debug(fmt.Sprintf(format, v...))
	}
}

// Nop discards everything
type Nop struct{}

func (Nop) Info(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Debug(string, ...interface{}) {}
