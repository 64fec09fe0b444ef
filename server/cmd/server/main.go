// Command server runs the onelinechat server without the launcher prompt.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/onelinechat/onelinechat/internal/cli"
	"github.com/onelinechat/onelinechat/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file; built-in defaults when empty")
	flag.Parse()

	cfg, level, err := cli.Setup(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("onelinechat-server starting",
		"config", *configPath,
		"transport", cfg.Server.Transport,
		"port", cfg.Server.Port,
		"http", cfg.Server.HTTP.Enabled,
	)

	ctx, cancel := cli.SignalContext()
	defer cancel()
	cli.WatchLogLevel(ctx, *configPath, level)

	if err := server.Run(ctx, cfg.Server, os.Stdout); err != nil {
		slog.Error("onelinechat-server stopped", "err", err)
		cancel()
		os.Exit(1)
	}
}
