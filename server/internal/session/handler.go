package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/onelinechat/onelinechat/pkg/wire"
	"github.com/onelinechat/onelinechat/server/internal/board"
	"github.com/onelinechat/onelinechat/server/internal/metrics"
)

// Handler applies framed requests to the board.
type Handler struct {
	board        *board.Board
	metrics      *metrics.Metrics
	logger       *slog.Logger
	remoteRemove bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithRemoteRemove enables the removeAuthor method.
func WithRemoteRemove(enabled bool) Option {
	return func(h *Handler) { h.remoteRemove = enabled }
}

// WithMetrics records handled requests on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithLogger overrides slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates a Handler writing into b.
func NewHandler(b *board.Board, opts ...Option) *Handler {
	h := &Handler{board: b, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve runs the request loop over r until end of stream or a read error.
// logger carries the session attributes; nil means the handler logger.
func (h *Handler) Serve(r io.Reader, logger *slog.Logger) {
	if logger == nil {
		logger = h.logger
	}
	reader := wire.NewReader(r)
	for {
		req, ok, err := reader.Read()
		if errors.Is(err, net.ErrClosed) {
			// closed by Server.Shutdown
			logger.Debug("session: connection closed")
			return
		}
		if err != nil {
			logger.Error("session: read request failed", "err", err)
			return
		}
		if !ok {
			logger.Debug("session: end of stream")
			return
		}
		if err := h.Dispatch(req); err != nil {
			logger.Error("session: request dropped",
				"method", req.Method,
				"args", len(req.Args),
				"err", err,
			)
		}
	}
}

// Dispatch applies a single request to the board.
func (h *Handler) Dispatch(req wire.Request) error {
	switch {
	case req.Method == "":
		h.metrics.RequestHandled("", metrics.OutcomeIgnored)
		return nil

	case req.Method == wire.MethodPutMessage:
		if len(req.Args) != 2 {
			h.metrics.RequestHandled(req.Method, metrics.OutcomeRejected)
			return fmt.Errorf("%w: %s expects 2 but received %d", ErrArgCount, req.Method, len(req.Args))
		}
		h.board.Put(req.Args[0], req.Args[1])

	case req.Method == wire.MethodRemoveAuthor && h.remoteRemove:
		if len(req.Args) != 1 {
			h.metrics.RequestHandled(req.Method, metrics.OutcomeRejected)
			return fmt.Errorf("%w: %s expects 1 but received %d", ErrArgCount, req.Method, len(req.Args))
		}
		h.board.Remove(req.Args[0])

	default:
		h.metrics.RequestHandled("unknown", metrics.OutcomeRejected)
		return fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}

	h.metrics.RequestHandled(req.Method, metrics.OutcomeApplied)
	return nil
}
