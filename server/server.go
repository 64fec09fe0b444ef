package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/onelinechat/onelinechat/internal/config"
	"github.com/onelinechat/onelinechat/server/internal/api"
	"github.com/onelinechat/onelinechat/server/internal/board"
	"github.com/onelinechat/onelinechat/server/internal/dashboard"
	"github.com/onelinechat/onelinechat/server/internal/metrics"
	"github.com/onelinechat/onelinechat/server/internal/receiver"
	"github.com/onelinechat/onelinechat/server/internal/session"
	"github.com/onelinechat/onelinechat/server/internal/ws"
)

const shutdownTimeout = 5 * time.Second

// Run listens on the addresses in cfg and serves until ctx is cancelled.
// A bind failure is returned before anything is started.
func Run(ctx context.Context, cfg config.ServerConfig, out io.Writer) error {
	chatLis, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", cfg.Addr(), err)
	}

	var httpLis net.Listener
	if cfg.HTTP.Enabled {
		httpLis, err = net.Listen("tcp", cfg.HTTPAddr())
		if err != nil {
			chatLis.Close()
			return fmt.Errorf("server: listen http %s: %w", cfg.HTTPAddr(), err)
		}
	}

	return Serve(ctx, cfg, chatLis, httpLis, out)
}

// Serve runs the server on already bound listeners. httpLis may be nil to
// disable HTTP. Serve closes both listeners before returning.
func Serve(ctx context.Context, cfg config.ServerConfig, chatLis, httpLis net.Listener, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b := board.New()
	m := metrics.New(b.Len)
	errc := make(chan error, 2)

	info := api.Info{Transport: cfg.Transport}
	stopChat, err := startChat(ctx, cfg, b, m, chatLis, errc, &info)
	if err != nil {
		chatLis.Close()
		if httpLis != nil {
			httpLis.Close()
		}
		return err
	}

	if cfg.Dashboard.Enabled {
		go dashboard.New(b, out, cfg.Dashboard.Interval, m).Run(ctx)
	}

	var httpSrv *http.Server
	if httpLis != nil {
		hub := ws.New(b, cfg.HTTP.StreamInterval)
		go hub.Run(ctx)

		httpSrv = &http.Server{
			Handler:           newRouter(b, m, hub, info),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("HTTP server listening", "addr", httpLis.Addr().String())
			if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("server: http: %w", err)
			}
		}()
	}

	slog.Info("onelinechat server started",
		"transport", cfg.Transport,
		"addr", chatLis.Addr().String(),
		"dashboard", cfg.Dashboard.Enabled,
		"http", httpLis != nil,
	)

	select {
	case <-ctx.Done():
		err = nil
	case err = <-errc:
		slog.Error("server component failed", "err", err)
	}

	slog.Info("onelinechat server shutting down")
	cancel()
	stopChat()
	if httpSrv != nil {
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		httpSrv.Shutdown(sctx) //nolint:errcheck
		scancel()
	}
	return err
}

// startChat starts the configured chat transport on lis. The returned func
// blocks until the transport has stopped.
func startChat(ctx context.Context, cfg config.ServerConfig, b *board.Board, m *metrics.Metrics, lis net.Listener, errc chan<- error, info *api.Info) (func(), error) {
	switch cfg.Transport {
	case config.TransportTCP:
		h := session.NewHandler(b,
			session.WithRemoteRemove(cfg.TCP.AllowRemoteRemove),
			session.WithMetrics(m),
		)
		srv := session.NewServer(h, m)
		info.Sessions = srv.Count

		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := srv.Serve(ctx, lis); err != nil {
				errc <- err
			}
		}()
		return func() { <-done }, nil

	case config.TransportGRPC:
		gs := receiver.NewServer(receiver.New(b), m, nil)

		done := make(chan struct{})
		go func() {
			defer close(done)
			slog.Info("gRPC receiver listening", "addr", lis.Addr().String())
			if err := gs.Serve(lis); err != nil {
				errc <- fmt.Errorf("server: grpc: %w", err)
			}
		}()
		return func() {
			gs.GracefulStop()
			<-done
		}, nil

	default:
		return nil, fmt.Errorf("server: unknown transport %q", cfg.Transport)
	}
}

func newRouter(b *board.Board, m *metrics.Metrics, hub *ws.Hub, info api.Info) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// The WebSocket route hijacks the connection and stays outside the
	// metrics middleware.
	r.Handle("/ws/stream", hub)

	r.Group(func(r chi.Router) {
		r.Use(m.Middleware)
		r.Handle("/metrics", m.Handler())
		api.NewHandler(b, info).Register(r)
	})
	return r
}
