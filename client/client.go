// Package client runs the interactive onelinechat client: it asks for a
// display name when none is configured, connects with the configured
// transport and hands the terminal to the console loop.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/onelinechat/onelinechat/client/internal/console"
	"github.com/onelinechat/onelinechat/client/internal/sender"
	"github.com/onelinechat/onelinechat/internal/config"
	"github.com/onelinechat/onelinechat/internal/prompt"
)

// Run chats as cfg.Name (or a prompted name) until in ends or ctx is
// cancelled. in must be the reader any earlier prompts used so no typed
// input is lost. A connection failure is returned before anything is sent.
func Run(ctx context.Context, cfg config.ClientConfig, in *bufio.Reader, out io.Writer) error {
	name := cfg.Name
	if name == "" {
		var err error
		name, err = prompt.New(in, out).AskName()
		if errors.Is(err, prompt.ErrNoInput) {
			slog.Info("client: no name given, exiting")
			return nil
		}
		if err != nil {
			return fmt.Errorf("client: %w", err)
		}
	}

	logger := slog.With("run", uuid.NewString(), "author", name)

	s, err := sender.Dial(ctx, cfg)
	if err != nil {
		logger.Error("client: connect failed", "addr", cfg.Addr(), "transport", cfg.Transport, "err", err)
		return err
	}
	defer s.Close()
	logger.Info("client: connected", "addr", cfg.Addr(), "transport", cfg.Transport)

	return console.New(in, out, s, name, logger).Run(ctx)
}
