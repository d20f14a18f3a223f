// Package observability configures structured logging for the gitpulse CLI.
package observability

import (
	"io"
	"log/slog"
	"strings"
)

// SetupLogging installs the process-wide slog default handler. Logs go to
// stderr (the writer the CLI passes in) so machine-readable report output on
// stdout stays clean.
func SetupLogging(w io.Writer, level string, json bool) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel maps a level name to a slog level, defaulting to info.
func parseLevel(level string) slog.Level {
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
