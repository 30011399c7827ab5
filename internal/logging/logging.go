// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured logger handed to each pipeline
// component.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pdiddy/journaldb/pkg/types"
)

// Logger is the logging capability components depend on. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Setup builds a logger from cfg writing to stderr and, when cfg.File is
// set, appending to that file as well. The returned close function releases
// the log file and is always safe to call.
func Setup(cfg types.LogConfig, stderr io.Writer) (*slog.Logger, func() error, error) {
	closer := func() error { return nil }
	w := stderr

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("opening log file %s: %w", cfg.File, err)
		}
		w = io.MultiWriter(stderr, f)
		closer = f.Close
	}

	return New(w, cfg.Level, cfg.Format), closer, nil
}

// New returns a logger writing to w.
//
// Level values: "debug", "info", "warn", "error" (default: "info").
// Format values: "text", "json" (default: "text").
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a string log level to slog.Level.
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
