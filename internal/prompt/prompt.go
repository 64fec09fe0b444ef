// Package prompt implements the interactive launcher prompts: the banner,
// the role menu and the display-name question.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Role is what the launcher should start.
type Role int

const (
	RoleQuit Role = iota
	RoleServer
	RoleClient
)

func (r Role) String() string {
	switch r {
	case RoleServer:
		return "server"
	case RoleClient:
		return "client"
	default:
		return "quit"
	}
}

// ErrNoInput is returned when input ends before a required answer.
var ErrNoInput = errors.New("prompt: input closed")

const banner = ` +==================================+
||                                  ||
||      --|==1line==chat====>       ||
||                                  ||
 +==================================+



`

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter. in is shared with whatever reads the terminal next,
// so callers pass the same *bufio.Reader on.
func New(in *bufio.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Banner prints the launcher banner.
func (p *Prompter) Banner() {
	fmt.Fprint(p.out, banner)
}

// AskRole shows the role menu until the answer is 1, 2 or q.
// End of input counts as q.
func (p *Prompter) AskRole() (Role, error) {
	fmt.Fprintln(p.out, "What do you want to start?")
	fmt.Fprintln(p.out, "1. server")
	fmt.Fprintln(p.out, "2. client")
	fmt.Fprintln(p.out, "q. quit")

	for {
		choice, err := p.readLine()
		if errors.Is(err, io.EOF) {
			return RoleQuit, nil
		}
		if err != nil {
			return RoleQuit, err
		}

		switch choice {
		case "q":
			return RoleQuit, nil
		case "1":
			return RoleServer, nil
		case "2":
			return RoleClient, nil
		}
		fmt.Fprintf(p.out, "%q is not in the list. Enter a number or q\n", choice)
	}
}

// AskName asks for a display name until a non-blank one is given.
func (p *Prompter) AskName() (string, error) {
	fmt.Fprintln(p.out, "Enter your name:")
	for {
		name, err := p.readLine()
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		if err != nil {
			return "", err
		}
		if name = strings.TrimSpace(name); name != "" {
			return name, nil
		}
	}
}

// readLine prints the input marker and returns the next line without its
// line ending. A final line without a newline is returned before io.EOF.
func (p *Prompter) readLine() (string, error) {
	fmt.Fprint(p.out, "> ")
	line, err := p.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		fmt.Fprintln(p.out)
		return "", io.EOF
	default:
		return "", fmt.Errorf("prompt: read: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
