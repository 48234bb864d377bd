package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/animals-site/internal/config"
)

// NewLogger creates a *slog.Logger from LogConfig and installs it as the
// slog default.
//
// Format "json" produces JSON lines; anything else produces text with source
// locations. Level is one of debug, info, warn, error (case-insensitive) and
// defaults to info. Output always goes to os.Stderr so that stdout stays free
// for the prompt and the CLI's result line.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !isJSON(cfg.Format),
	}

	var handler slog.Handler
	if isJSON(cfg.Format) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func isJSON(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), "json")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
