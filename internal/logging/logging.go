package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs a JSON slog logger as the process default and returns it.
// Unknown levels fall back to info.
func Init(level string) *slog.Logger {
	return initTo(os.Stdout, level)
}

func initTo(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
