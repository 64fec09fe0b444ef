// Command client runs the onelinechat chat client without the launcher
// role prompt.
package main

import (
	"bufio"
	"flag"
	"log/slog"
	"os"

	"github.com/onelinechat/onelinechat/client"
	"github.com/onelinechat/onelinechat/internal/cli"
	"github.com/onelinechat/onelinechat/internal/prompt"
)

func main() {
	configPath := flag.String("config", "", "path to config file; built-in defaults when empty")
	name := flag.String("name", "", "display name; overrides client.name")
	flag.Parse()

	cfg, level, err := cli.Setup(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cli.SetClientName(cfg, *name); err != nil {
		slog.Error("invalid -name", "err", err)
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext()
	defer cancel()
	cli.WatchLogLevel(ctx, *configPath, level)

	in := bufio.NewReader(os.Stdin)
	prompt.New(in, os.Stdout).Banner()

	if err := client.Run(ctx, cfg.Client, in, os.Stdout); err != nil {
		slog.Error("onelinechat-client stopped", "err", err)
		cancel()
		os.Exit(1)
	}
}
