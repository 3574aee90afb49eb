// Package logging is the leveled logger shared by every wiener package.
//
// Components log through Module, which tags every line with the component
// name, e.g. "[VertexBuffer] Creating new VertexBuffer id=3". Object
// creation and deletion log at info, uploads at debug, and bind/unbind at
// trace so that render loops stay quiet unless asked.
//
// The level starts at info and can be set with the WIENER_LOG environment
// variable (trace, debug, info, warn, error) or SetLevel.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below slog.LevelDebug and is used for per-frame calls
const LevelTrace = slog.Level(-8)

const EnvVar = "WIENER_LOG"

var (
	level   = new(slog.LevelVar)
	handler = NewHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	Logger = slog.New(handler)

	ErrLog  = slog.NewLogLogger(handler, slog.LevelError)
	WarnLog = slog.NewLogLogger(handler, slog.LevelWarn)
	InfoLog = slog.NewLogLogger(handler, slog.LevelInfo)
)

func init() {
	level.Set(slog.LevelInfo)

	env := os.Getenv(EnvVar)
	if env == "" {
		return
	}

	l, err := ParseLevel(env)
	if err != nil {
		WarnLog.Printf("ignoring %s: %v", EnvVar, err)
		return
	}
	level.Set(l)
}

// Module returns a logger whose lines are prefixed with [name]
func Module(name string) *slog.Logger {
	return Logger.With(slog.String(ModuleKey, name))
}

func SetLevel(l slog.Level) {
	level.Set(l)
}

func Level() slog.Level {
	return level.Level()
}

func SetOutput(w io.Writer) {
	handler.SetOutput(w)
}

func SetColor(enabled bool) {
	handler.SetColor(enabled)
}

func ParseLevel(s string) (slog.Level, error) {

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level '%s'", s)
	}
}

func LevelString(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

// Trace logs at LevelTrace. slog has no Trace method of its own.
func Trace(l *slog.Logger, msg string, args ...any) {
	l.Log(context.Background(), LevelTrace, msg, args...)
}
