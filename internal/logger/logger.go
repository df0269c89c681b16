// Package logger builds the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"

	"github.com/busshop-tracker/internal/config"
)

// NewLogger creates a JSON slog.Logger at the configured level, tagged with
// the application name. Unknown level strings fall back to info.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		// Source locations only matter when debugging
		AddSource: level == slog.LevelDebug,
	})

	logger := slog.New(handler).With("app", cfg.Application.Name)
	logger.Info("logger initialized", "level", level.String())

	return logger
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}
