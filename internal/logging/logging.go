// Package logging builds the process-wide slog logger.
//
// Logs always go to a writer other than stdout in the server, because stdout
// carries dashboard frames. The level lives in a slog.LevelVar so a config
// reload can change it without rebuilding the handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/onelinechat/onelinechat/internal/config"
)

// New returns a logger writing to w in the given format ("json" or "text")
// at the level held by level.
func New(w io.Writer, format string, level *slog.LevelVar) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// Setup installs a stderr logger built from cfg as the slog default and
// returns its level so callers can adjust it later.
func Setup(cfg config.LogConfig) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(ParseLevel(cfg.Level))
	slog.SetDefault(New(os.Stderr, cfg.Format, level))
	return level
}

// ParseLevel converts a level name to a slog.Level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
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
