package sender

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/onelinechat/onelinechat/internal/config"
	"github.com/onelinechat/onelinechat/pkg/chatrpc"
	"github.com/onelinechat/onelinechat/pkg/wire"
)

// Sender delivers chat operations to the server.
type Sender interface {
	PutMessage(ctx context.Context, author, text string) error
	RemoveAuthor(ctx context.Context, author string) error
	Close() error
}

// dialer opens transports. Tests replace its functions to point at local
// listeners.
type dialer struct {
	tcp  func(ctx context.Context, addr string) (net.Conn, error)
	grpc func(ctx context.Context, addr string) (*grpc.ClientConn, error)
}

var defaultDialer = dialer{tcp: dialTCP, grpc: dialGRPC}

// Dial connects to the server described by cfg.
func Dial(ctx context.Context, cfg config.ClientConfig) (Sender, error) {
	return defaultDialer.dial(ctx, cfg)
}

func (d dialer) dial(ctx context.Context, cfg config.ClientConfig) (Sender, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.SendTimeout)
	defer cancel()

	switch cfg.Transport {
	case config.TransportGRPC:
		conn, err := d.grpc(ctx, cfg.Addr())
		if err != nil {
			return nil, fmt.Errorf("sender: dial grpc %s: %w", cfg.Addr(), err)
		}
		return &GRPCSender{conn: conn, client: chatrpc.NewBoardClient(conn), timeout: cfg.SendTimeout}, nil

	case config.TransportTCP, "":
		conn, err := d.tcp(ctx, cfg.Addr())
		if err != nil {
			return nil, fmt.Errorf("sender: dial tcp %s: %w", cfg.Addr(), err)
		}
		return &TCPSender{conn: conn, timeout: cfg.SendTimeout}, nil

	default:
		return nil, fmt.Errorf("sender: unknown transport %q", cfg.Transport)
	}
}

func dialTCP(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

// dialGRPC blocks until the connection is ready so an unreachable server is
// reported at startup rather than on the first message.
func dialGRPC(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	return grpc.DialContext(ctx, addr, //nolint:staticcheck // DialContext kept for WithBlock semantics
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(), //nolint:staticcheck
	)
}

// --- tcp --------------------------------------------------------------------

// TCPSender writes framed requests to a single connection.
type TCPSender struct {
	mu      sync.Mutex
	conn    net.Conn
	timeout time.Duration
}

// PutMessage writes a putMessage request.
func (s *TCPSender) PutMessage(ctx context.Context, author, text string) error {
	return s.write(ctx, wire.MethodPutMessage, author, text)
}

// RemoveAuthor writes a removeAuthor request. Whether the server acts on it
// depends on its configuration; no reply is sent either way.
func (s *TCPSender) RemoveAuthor(ctx context.Context, author string) error {
	return s.write(ctx, wire.MethodRemoveAuthor, author)
}

// Close closes the connection.
func (s *TCPSender) Close() error {
	return s.conn.Close()
}

func (s *TCPSender) write(ctx context.Context, method string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sender: %s: %w", method, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := time.Now().Add(s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("sender: %s: %w", method, err)
	}
	if err := wire.Write(s.conn, method, args...); err != nil {
		return fmt.Errorf("sender: %s: %w", method, err)
	}
	return nil
}

// --- grpc -------------------------------------------------------------------

// GRPCSender calls the Board service.
type GRPCSender struct {
	conn    *grpc.ClientConn
	client  chatrpc.BoardClient
	timeout time.Duration
}

// PutMessage calls Board.PutMessage.
func (s *GRPCSender) PutMessage(ctx context.Context, author, text string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.client.PutMessage(ctx, &chatrpc.PutMessageRequest{Author: author, Text: text}); err != nil {
		return fmt.Errorf("sender: PutMessage: %w", err)
	}
	return nil
}

// RemoveAuthor calls Board.RemoveAuthor.
func (s *GRPCSender) RemoveAuthor(ctx context.Context, author string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.client.RemoveAuthor(ctx, &chatrpc.RemoveAuthorRequest{Author: author}); err != nil {
		return fmt.Errorf("sender: RemoveAuthor: %w", err)
	}
	return nil
}

// Close closes the client connection.
func (s *GRPCSender) Close() error {
	return s.conn.Close()
}
