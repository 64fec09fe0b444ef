// Command onelinechat is the interactive launcher: it prints the banner,
// asks whether to start the server or the client, and runs it.
package main

import (
	"bufio"
	"flag"
	"log/slog"
	"os"

	"github.com/onelinechat/onelinechat/client"
	"github.com/onelinechat/onelinechat/internal/cli"
	"github.com/onelinechat/onelinechat/internal/prompt"
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

	ctx, cancel := cli.SignalContext()
	defer cancel()
	cli.WatchLogLevel(ctx, *configPath, level)

	// One reader for the whole session so the client sees what follows the prompts.
	in := bufio.NewReader(os.Stdin)
	p := prompt.New(in, os.Stdout)
	p.Banner()

	role, err := p.AskRole()
	if err != nil {
		slog.Error("failed to read role", "err", err)
		os.Exit(1)
	}

	switch role {
	case prompt.RoleServer:
		err = server.Run(ctx, cfg.Server, os.Stdout)
	case prompt.RoleClient:
		err = client.Run(ctx, cfg.Client, in, os.Stdout)
	default:
		return
	}
	if err != nil {
		slog.Error("onelinechat stopped", "role", role.String(), "err", err)
		cancel()
		os.Exit(1)
	}
}
