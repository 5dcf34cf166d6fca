package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/config"
)

// New creates a preconfigured slog.Logger.
func New(cfg *config.Config) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)})
	return slog.New(handler).With(slog.String("service", "orderdesk"))
}

// ParseLevel maps a level name to slog.Level. Unknown names yield info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
