// Package log provides the structured logger used by the disassembler
// and simulator. It is a thin layer over log/slog so that diagnostics
// like decode failures and out-of-bounds memory accesses carry key=value
// fields instead of free-form text.
package log

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"
)

// nowFunc stamps log records; a variable so tests can pin it.
var nowFunc = time.Now

// Level controls which messages a Logger emits.
type Level = slog.Level

// Log levels, lowest to highest severity.
const (
	DebugLevel Level = slog.LevelDebug
	InfoLevel  Level = slog.LevelInfo
	WarnLevel  Level = slog.LevelWarn
	ErrorLevel Level = slog.LevelError
)

// levelEnv names the environment variable that selects the initial level
// of a Logger created by New: one of "debug", "info", "warn", "error".
const levelEnv = "SIM8086_LOG_LEVEL"

// Logger emits leveled, structured log lines.
type Logger struct {
	handler slog.Handler
	level   *slog.LevelVar
}

// New creates a Logger writing to stderr. The initial level is read from
// the SIM8086_LOG_LEVEL environment variable and defaults to info, so a
// user can surface the simulator's debug diagnostics without a rebuild.
func New() *Logger {
	return NewWithLevel(levelFromEnv())
}

// NewWithLevel creates a stderr Logger with the given level.
func NewWithLevel(level Level) *Logger {
	lv := &slog.LevelVar{}
	lv.Set(level)
	return &Logger{
		handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}),
		level:   lv,
	}
}

func levelFromEnv() Level {
	switch strings.ToLower(os.Getenv(levelEnv)) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// newHandlerLogger wraps an existing handler, used by NewTestLogger.
func newHandlerLogger(h slog.Handler) *Logger {
	lv := &slog.LevelVar{}
	lv.Set(DebugLevel)
	return &Logger{handler: h, level: lv}
}

// SetLevel changes the minimum level of emitted messages.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level)
}

// Enabled reports whether messages at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return l.handler.Enabled(context.Background(), level)
}

// Debug logs a message at debug level.
func (l *Logger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields)
}

// Info logs a message at info level.
func (l *Logger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields)
}

// Error logs a message at error level.
func (l *Logger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields)
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	ctx := context.Background()
	if !l.handler.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(nowFunc(), level, msg, 0)
	r.AddAttrs(fields...)
	_ = l.handler.Handle(ctx, r)
}
