// Package logging configures structured logging for grocer.
// Text output is colored with tint; JSON output uses the slog JSON handler.
//
// Usage:
//
//	level, err := logging.ParseLevel("debug")
//	logging.Setup(level, logging.FormatText)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup installs the default logger at the given level, writing to stderr.
func Setup(level slog.Level, format string) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level, format)))
}

// NewHandler builds the handler for format. Unknown formats fall back to text.
func NewHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	if strings.EqualFold(format, FormatJSON) {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to a level.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
