package receiver

import (
	"context"
	"log/slog"
	"path"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/onelinechat/onelinechat/server/internal/metrics"
)

// UnaryInterceptor returns a gRPC UnaryServerInterceptor that logs every call
// and counts it by method and status code.
//
// Successful calls are logged at debug level, failed ones at error level with
// the peer address. m may be nil; a nil logger means slog.Default().
func UnaryInterceptor(m *metrics.Metrics, logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		method := path.Base(info.FullMethod)
		code := status.Code(err)
		m.RPCHandled(method, code.String())

		attrs := []any{"method", method, "code", code.String(), "duration", time.Since(start)}
		if p, ok := peer.FromContext(ctx); ok {
			attrs = append(attrs, "peer", p.Addr.String())
		}
		if err != nil {
			logger.Error("receiver: call failed", append(attrs, "err", err)...)
		} else {
			logger.Debug("receiver: call handled", attrs...)
		}
		return resp, err
	}
}
