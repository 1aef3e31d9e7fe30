// Package logging configures structured logging with log/slog.
//
// Two output formats are supported: "text" uses tint for colored,
// human-readable development output; "json" emits machine-parseable records
// for production.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog logger with the given level and format
// ("text" or "json"; anything else falls back to text).
func Setup(level, format string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
