package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/config"
)

// NewLogger builds the process logger from config and installs it as the
// slog default. Format "json" is for machine consumption; "text" is the
// human default. Level is one of debug, info, warn, error
// (case-insensitive), defaulting to info. Output always goes to stderr so
// command output stays pipeable.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
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
