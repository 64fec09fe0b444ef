package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/onelinechat/onelinechat/internal/config"
	"github.com/onelinechat/onelinechat/pkg/chatrpc"
	"github.com/onelinechat/onelinechat/pkg/wire"
	"github.com/onelinechat/onelinechat/server"
	"github.com/onelinechat/onelinechat/server/internal/api"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

type running struct {
	chatAddr string
	httpURL  string
	out      *syncBuffer
	cancel   context.CancelFunc
	done     chan error
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return lis
}

// start runs Serve on loopback listeners with a fast dashboard.
func start(t *testing.T, mutate func(*config.ServerConfig)) *running {
	t.Helper()
	cfg := config.Defaults().Server
	cfg.Dashboard.Interval = 10 * time.Millisecond
	cfg.HTTP.Enabled = true
	cfg.HTTP.StreamInterval = 20 * time.Millisecond
	if mutate != nil {
		mutate(&cfg)
	}

	chatLis, httpLis := listen(t), listen(t)
	ctx, cancel := context.WithCancel(context.Background())
	r := &running{
		chatAddr: chatLis.Addr().String(),
		httpURL:  "http://" + httpLis.Addr().String(),
		out:      &syncBuffer{},
		cancel:   cancel,
		done:     make(chan error, 1),
	}
	go func() { r.done <- server.Serve(ctx, cfg, chatLis, httpLis, r.out) }()
	t.Cleanup(func() {
		cancel()
		<-r.done
	})
	return r
}

func (r *running) board(t *testing.T) api.BoardResponse {
	t.Helper()
	var resp api.BoardResponse
	getJSON(t, r.httpURL+"/api/v1/board", &resp)
	return resp
}

func getJSON(t *testing.T, url string, v interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, url)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func hasAuthor(resp api.BoardResponse, author, text string) bool {
	for _, e := range resp.Entries {
		if e.Author == author && e.Text == text {
			return true
		}
	}
	return false
}

func TestServe_TCPMessagesReachBoardAndDashboard(t *testing.T) {
	r := start(t, nil)

	conn, err := net.Dial("tcp", r.chatAddr)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, wire.Write(conn, wire.MethodPutMessage, "Alice", "hello"))

	assert.Eventually(t, func() bool { return hasAuthor(r.board(t), "Alice", "hello") },
		2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return strings.Contains(r.out.String(), "[Alice     ]") },
		2*time.Second, 10*time.Millisecond)

	var health api.HealthResponse
	getJSON(t, r.httpURL+"/api/v1/health", &health)
	assert.Equal(t, "tcp", health.Transport)
	assert.Equal(t, 1, health.AuthorCount)
	require.NotNil(t, health.SessionCount)
	assert.Equal(t, 1, *health.SessionCount)
}

func TestServe_TCPIgnoresRemoveAuthorByDefault(t *testing.T) {
	r := start(t, nil)

	conn, err := net.Dial("tcp", r.chatAddr)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, wire.Write(conn, wire.MethodPutMessage, "Alice", "bye"))
	require.NoError(t, wire.Write(conn, wire.MethodRemoveAuthor, "Alice"))
	require.NoError(t, wire.Write(conn, wire.MethodPutMessage, "Bob", "after"))

	require.Eventually(t, func() bool { return hasAuthor(r.board(t), "Bob", "after") },
		2*time.Second, 10*time.Millisecond)
	assert.True(t, hasAuthor(r.board(t), "Alice", "bye"), "Alice must stay on the board")
}

func TestServe_TCPRemoveAuthorWhenAllowed(t *testing.T) {
	r := start(t, func(c *config.ServerConfig) { c.TCP.AllowRemoteRemove = true })

	conn, err := net.Dial("tcp", r.chatAddr)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, wire.Write(conn, wire.MethodPutMessage, "Alice", "bye"))
	require.NoError(t, wire.Write(conn, wire.MethodRemoveAuthor, "Alice"))
	require.NoError(t, wire.Write(conn, wire.MethodPutMessage, "Bob", "after"))

	require.Eventually(t, func() bool { return hasAuthor(r.board(t), "Bob", "after") },
		2*time.Second, 10*time.Millisecond)
	assert.False(t, hasAuthor(r.board(t), "Alice", "bye"))
}

func TestServe_GRPCTransport(t *testing.T) {
	r := start(t, func(c *config.ServerConfig) {
		c.Transport = config.TransportGRPC
		c.Dashboard.Enabled = false
	})

	conn, err := grpc.Dial(r.chatAddr, grpc.WithTransportCredentials(insecure.NewCredentials())) //nolint:staticcheck
	require.NoError(t, err)
	defer conn.Close()
	client := chatrpc.NewBoardClient(conn)

	ctx := context.Background()
	_, err = client.PutMessage(ctx, &chatrpc.PutMessageRequest{Author: "Alice", Text: "over grpc"})
	require.NoError(t, err)
	assert.True(t, hasAuthor(r.board(t), "Alice", "over grpc"))

	_, err = client.RemoveAuthor(ctx, &chatrpc.RemoveAuthorRequest{Author: "Alice"})
	require.NoError(t, err)
	assert.Empty(t, r.board(t).Entries)

	var health api.HealthResponse
	getJSON(t, r.httpURL+"/api/v1/health", &health)
	assert.Equal(t, "grpc", health.Transport)
	assert.Nil(t, health.SessionCount)
	assert.Empty(t, r.out.String(), "dashboard disabled")
}

func TestServe_MetricsEndpoint(t *testing.T) {
	r := start(t, nil)

	conn, err := net.Dial("tcp", r.chatAddr)
	require.NoError(t, err)
	require.NoError(t, wire.Write(conn, wire.MethodPutMessage, "Alice", "hi"))
	conn.Close()
	require.Eventually(t, func() bool { return hasAuthor(r.board(t), "Alice", "hi") },
		2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(r.httpURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "onelinechat_sessions_total 1")
	assert.Contains(t, text, `onelinechat_requests_total{method="putMessage",outcome="applied"} 1`)
	assert.Contains(t, text, `onelinechat_http_requests_total{method="GET",path="/api/v1/board",status="200"}`)
}

func TestServe_CancelStops(t *testing.T) {
	r := start(t, nil)

	conn, err := net.Dial("tcp", r.chatAddr)
	require.NoError(t, err)
	defer conn.Close()

	r.cancel()
	select {
	case err := <-r.done:
		assert.NoError(t, err)
		r.done <- err // for Cleanup
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = conn.Read(make([]byte, 1))
	assert.Error(t, err, "session closed on shutdown")
}

func TestRun_BindFailure(t *testing.T) {
	busy := listen(t)
	defer busy.Close()

	cfg := config.Defaults().Server
	cfg.ListenAddr = "127.0.0.1"
	cfg.Port = busy.Addr().(*net.TCPAddr).Port

	err := server.Run(context.Background(), cfg, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server: listen")
}
