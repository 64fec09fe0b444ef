// Package console runs the interactive chat loop of the client.
//
// Every non-empty input line is sent as the user's current message. When the
// input ends or the context is cancelled, the console sends a final
// removeAuthor for the user and returns. Send failures are logged and the
// message is dropped; the loop keeps going.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Sender is the part of sender.Sender the console needs.
type Sender interface {
	PutMessage(ctx context.Context, author, text string) error
	RemoveAuthor(ctx context.Context, author string) error
}

// Console reads chat lines from in and forwards them through a Sender.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	sender Sender
	name   string
	logger *slog.Logger
}

// New creates a Console sending as name. A nil logger means slog.Default().
func New(in io.Reader, out io.Writer, s Sender, name string, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		sender: s,
		name:   name,
		logger: logger,
	}
}

type line struct {
	text string
	err  error
}

// Run sends input lines until end of input, a read error or ctx
// cancellation, then removes the author. It returns the read error, if any.
//
// Reading happens in a separate goroutine because a terminal read cannot be
// interrupted; on cancellation that goroutine is left blocked until the
// process exits.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Connected.")
	fmt.Fprintln(c.out, "Type a message, or press Ctrl+D or Ctrl+C to leave")

	lines := make(chan line)
	go c.readLines(ctx, lines)

	var readErr error
loop:
	for {
		fmt.Fprint(c.out, "> ")
		select {
		case <-ctx.Done():
			break loop
		case l, ok := <-lines:
			if !ok {
				break loop
			}
			if l.err != nil {
				c.logger.Error("console: read input failed", "err", l.err)
				readErr = l.err
				break loop
			}
			if l.text == "" {
				continue
			}
			if err := c.sender.PutMessage(ctx, c.name, l.text); err != nil {
				c.logger.Error("console: message dropped", "author", c.name, "err", err)
			}
		}
	}
	fmt.Fprintln(c.out)

	// The leave notice must go out even when ctx is already cancelled.
	if err := c.sender.RemoveAuthor(context.WithoutCancel(ctx), c.name); err != nil {
		c.logger.Error("console: remove author failed", "author", c.name, "err", err)
	}
	return readErr
}

func (c *Console) readLines(ctx context.Context, lines chan<- line) {
	defer close(lines)
	for {
		text, err := c.in.ReadString('\n')
		if text != "" || err == nil {
			select {
			case lines <- line{text: strings.TrimRight(text, "\r\n")}:
			case <-ctx.Done():
				return
			}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			select {
			case lines <- line{err: fmt.Errorf("console: read: %w", err)}:
			case <-ctx.Done():
			}
			return
		}
	}
}
