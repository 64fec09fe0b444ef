// Package cli holds the startup steps shared by the onelinechat binaries:
// loading the config, installing the logger, reloading the log level when
// the config file changes, and the signal-bound root context.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/onelinechat/onelinechat/internal/config"
	"github.com/onelinechat/onelinechat/internal/logging"
)

// Setup loads the config at path (defaults when empty) and installs the
// process logger. The returned LevelVar controls that logger.
func Setup(path string) (*config.Config, *slog.LevelVar, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	level := logging.Setup(cfg.Log)
	slog.Debug("config loaded",
		"path", path,
		"server_transport", cfg.Server.Transport,
		"server_port", cfg.Server.Port,
		"client_addr", cfg.Client.Addr(),
	)
	return cfg, level, nil
}

// WatchLogLevel reloads path whenever it changes and applies the new
// log.level. It returns immediately when path is empty.
func WatchLogLevel(ctx context.Context, path string, level *slog.LevelVar) {
	if path == "" {
		return
	}
	go func() {
		err := config.Watch(ctx, path, func(cfg *config.Config) {
			next := logging.ParseLevel(cfg.Log.Level)
			if next != level.Level() {
				slog.Info("log level changed", "from", level.Level().String(), "to", next.String())
				level.Set(next)
			}
		})
		if err != nil {
			slog.Warn("config watch disabled", "path", path, "err", err)
		}
	}()
}

// SetClientName applies a -name flag value to cfg. Surrounding blanks are
// trimmed and an empty value leaves client.name alone.
func SetClientName(cfg *config.Config, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	cfg.Client.Name = name
	return cfg.Validate()
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
