// Package logging configures the application logger and receives the
// raw error lists of failed pipeline completions for diagnostic capture,
// independent of what the UI shows.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/golang-cz/devslog"
)

// New builds a devslog-backed logger. The TUI owns the terminal, so the
// writer is normally a log file; colors are off for that reason.
func New(w io.Writer, level string) *slog.Logger {
	handler := devslog.NewHandler(w, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			AddSource: true,
			Level:     parseLevel(level),
		},
		NewLineAfterLog: false,
		NoColor:         true,
	})

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
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

// Errors records a failed completion's error list verbatim.
func Errors(log *slog.Logger, messages []string) {
	if log == nil {
		return
	}
	log.Error("operation failed", slog.Any("errors", messages))
}
