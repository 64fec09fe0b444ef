package receiver

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onelinechat/onelinechat/pkg/chatrpc"
	"github.com/onelinechat/onelinechat/server/internal/board"
	"github.com/onelinechat/onelinechat/server/internal/metrics"
)

// Receiver implements chatrpc.BoardServer on top of a board.
type Receiver struct {
	chatrpc.UnimplementedBoardServer
	board *board.Board
}

// New creates a Receiver that writes accepted messages to b.
func New(b *board.Board) *Receiver {
	return &Receiver{board: b}
}

// NewServer returns a grpc.Server serving r, with UnaryInterceptor installed.
func NewServer(r *Receiver, m *metrics.Metrics, logger *slog.Logger) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryInterceptor(m, logger)))
	chatrpc.RegisterBoardServer(srv, r)
	return srv
}

// PutMessage sets the current message of req.Author. Any text, including
// an empty one, is stored.
func (r *Receiver) PutMessage(ctx context.Context, req *chatrpc.PutMessageRequest) (*chatrpc.Ack, error) {
	if req.Author == "" {
		return nil, status.Error(codes.InvalidArgument, "author is required")
	}

	r.board.Put(req.Author, req.Text)

	slog.Debug("receiver: message stored", "author", req.Author, "len", len(req.Text))
	return &chatrpc.Ack{}, nil
}

// RemoveAuthor drops req.Author from the board. Removing an absent author
// succeeds.
func (r *Receiver) RemoveAuthor(ctx context.Context, req *chatrpc.RemoveAuthorRequest) (*chatrpc.Ack, error) {
	if req.Author == "" {
		return nil, status.Error(codes.InvalidArgument, "author is required")
	}

	r.board.Remove(req.Author)

	slog.Debug("receiver: author removed", "author", req.Author)
	return &chatrpc.Ack{}, nil
}
