// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the clean-auth server.
//
// Request handlers and services never hold their own logger: they read the
// request-scoped one, tagged with trace_id, through FromContext or
// FromRequest.
package logger

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger writing to stdout. Every entry carries the
// role, a timestamp and the calling function under "func". All levels are
// enabled until SetLevel is called.
func NewLogger(role string) *Logger {
	return newLogger(role, os.Stdout)
}

func newLogger(role string, w io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{
		zerolog.New(w).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

// SetLevel sets the minimum level for every logger in the process.
// An empty level leaves the current one unchanged.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can gain fields without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithComponent tags entries with "component", e.g. "smtp-notifier" or
// "otp-cleanup".
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. Without one it falls back
// to zerolog's default logger, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// StdLogger adapts l for APIs that take a *log.Logger, such as
// http.Server.ErrorLog. Lines are written at error level.
func (l *Logger) StdLogger() *stdlog.Logger {
	return stdlog.New(errorWriter{l.Logger}, "", 0)
}

type errorWriter struct {
	logger zerolog.Logger
}

func (w errorWriter) Write(p []byte) (int, error) {
	w.logger.Error().Msg(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
