package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/onelinechat/onelinechat/server/internal/metrics"
)

// Server accepts TCP connections and runs a Handler loop for each of them.
type Server struct {
	handler *Handler
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu      sync.Mutex
	conns   map[net.Conn]string // conn -> session id
	closing bool
	wg      sync.WaitGroup
}

// NewServer creates a Server dispatching every session to h.
func NewServer(h *Handler, m *metrics.Metrics) *Server {
	return &Server{
		handler: h,
		metrics: m,
		logger:  h.logger,
		conns:   make(map[net.Conn]string),
	}
}

// Accept failures are retried after a delay that starts at minAcceptDelay and
// doubles up to maxAcceptDelay.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Serve accepts connections on lis until ctx is cancelled. On cancellation it
// closes the listener and every open session, waits for the session
// goroutines and returns nil. Other accept errors (EMFILE, ECONNABORTED) are
// logged and retried; open sessions are not touched. Serve only fails when
// lis is closed by someone else.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			lis.Close()
		case <-stop:
		}
	}()

	s.logger.Info("session: accepting connections", "addr", lis.Addr().String())
	var delay time.Duration
	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.shutdown()
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				s.shutdown()
				return fmt.Errorf("session: accept: %w", err)
			}

			if delay == 0 {
				delay = minAcceptDelay
			} else if delay *= 2; delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			s.logger.Error("session: accept failed, retrying", "err", err, "delay", delay)
			t := time.NewTimer(delay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
			}
			continue
		}
		delay = 0
		s.start(conn)
	}
}

// Count returns the number of open sessions.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) start(conn net.Conn) {
	id := uuid.NewString()
	if !s.register(conn, id) {
		conn.Close()
		return
	}
	logger := s.logger.With("session", id, "remote", conn.RemoteAddr().String())
	s.metrics.SessionOpened()

	go func() {
		defer func() {
			s.unregister(conn)
			conn.Close()
			s.metrics.SessionClosed()
			s.wg.Done()
		}()
		logger.Info("session: opened")
		s.handler.Serve(conn, logger)
		logger.Info("session: closed")
	}()
}

// register tracks conn and reserves a WaitGroup slot for its goroutine.
// It refuses new connections once shutdown has begun.
func (s *Server) register(conn net.Conn, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = id
	s.wg.Add(1)
	return true
}

func (s *Server) unregister(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// shutdown closes all open sessions and waits for their goroutines.
func (s *Server) shutdown() {
	s.mu.Lock()
	s.closing = true
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
