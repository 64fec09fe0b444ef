package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/onelinechat/onelinechat/server/internal/api"
	"github.com/onelinechat/onelinechat/server/internal/board"
)

const (
	// writeTimeout is the deadline for a single write to a viewer.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong before treating the viewer as gone.
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-viewer outgoing message buffer depth.
	sendBufSize = 8

	// DefaultInterval is used when New is given a non-positive interval.
	DefaultInterval = time.Second

	// EventBoard is the envelope event of every broadcast.
	EventBoard = "board"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:    512,
	WriteBufferSize:   4096,
	EnableCompression: true,
	// Read-only view; origins are not restricted.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON envelope sent to viewers.
type Message struct {
	Event string            `json:"event"`
	Data  api.BoardResponse `json:"data"`
}

// Hub fans the board out to WebSocket viewers.
type Hub struct {
	board    *board.Board
	interval time.Duration

	mu      sync.RWMutex
	viewers map[*viewer]struct{}
}

type viewer struct {
	conn   *websocket.Conn
	remote string
	send   chan []byte
}

// New creates a Hub that reads from b and broadcasts every interval.
// A non-positive interval means DefaultInterval.
func New(b *board.Board, interval time.Duration) *Hub {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Hub{
		board:    b,
		interval: interval,
		viewers:  make(map[*viewer]struct{}),
	}
}

// Run broadcasts until ctx is cancelled, then disconnects every viewer.
func (h *Hub) Run(ctx context.Context) {
	t := time.NewTicker(h.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-t.C:
			h.broadcast()
		}
	}
}

// ServeHTTP upgrades the request and streams the board until the viewer
// disconnects or the hub stops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		slog.Debug("ws: upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	v := &viewer{
		conn:   conn,
		remote: r.RemoteAddr,
		send:   make(chan []byte, sendBufSize),
	}
	// Queue the current board before registering so Run cannot close send first.
	if data, err := h.buildMessage(); err == nil {
		v.send <- data
	}
	h.register(v)
	defer h.unregister(v)
	slog.Debug("ws: viewer connected", "remote", r.RemoteAddr)

	go v.writePump()
	v.readPump()
	slog.Debug("ws: viewer disconnected", "remote", r.RemoteAddr)
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// --- internal ---------------------------------------------------------------

func (h *Hub) register(v *viewer) {
	h.mu.Lock()
	h.viewers[v] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(v *viewer) {
	h.mu.Lock()
	if _, ok := h.viewers[v]; ok {
		delete(h.viewers, v)
		close(v.send)
	}
	h.mu.Unlock()
}

// broadcast queues the current board for every viewer. Sends happen under
// the read lock because unregister closes send under the write lock.
func (h *Hub) broadcast() {
	if h.Count() == 0 {
		return
	}

	data, err := h.buildMessage()
	if err != nil {
		slog.Error("ws: encode board", "err", err)
		return
	}

	var slow []*viewer
	h.mu.RLock()
	for v := range h.viewers {
		select {
		case v.send <- data:
		default:
			slow = append(slow, v)
		}
	}
	h.mu.RUnlock()

	for _, v := range slow {
		slog.Warn("ws: viewer too slow, dropping", "remote", v.remote)
		h.unregister(v)
	}
}

func (h *Hub) buildMessage() ([]byte, error) {
	return json.Marshal(Message{
		Event: EventBoard,
		Data:  api.BuildBoard(h.board),
	})
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		close(v.send)
		delete(h.viewers, v)
	}
}

// writePump forwards queued messages and pings to the connection.
func (v *viewer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				v.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards incoming frames and returns once the connection closes.
func (v *viewer) readPump() {
	defer v.conn.Close()
	v.conn.SetReadLimit(512)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			break
		}
	}
}
