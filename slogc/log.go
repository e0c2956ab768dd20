package slogc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LevelFine is one step more detailed than [slog.LevelDebug], used for
// per-request logging.
const LevelFine = slog.LevelDebug - 4

// New creates a logger writing to stderr from the level and format strings
// as they appear in configuration.
func New(level string, format string) (*slog.Logger, error) {
	return NewWith(os.Stderr, level, format)
}

func NewWith(w io.Writer, level string, format string) (*slog.Logger, error) {
	var logLevel slog.Level
	switch level {
	case "fine":
		logLevel = LevelFine
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	case "info", "":
		logLevel = slog.LevelInfo
	default:
		return nil, fmt.Errorf("invalid level '%s' (fine|debug|info|warn|error)", level)
	}

	opts := &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: levelReplacer,
	}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid format '%s' (json|text)", format)
	}
}

func levelReplacer(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey && attr.Value.Any() == LevelFine {
		return slog.String(attr.Key, "FINE")
	}
	return attr
}

func Fine(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelFine, msg, args...)
}
