package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures logging behavior.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New builds the service logger. JSON is the default format; "text" is
// easier to read locally.
func New(options Options) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(options.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	out := options.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOptions := &slog.HandlerOptions{Level: level}
	if strings.ToLower(options.Format) == "text" {
		return slog.New(slog.NewTextHandler(out, handlerOptions))
	}
	return slog.New(slog.NewJSONHandler(out, handlerOptions))
}

// Discard is a logger for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
