package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/onelinechat/onelinechat/server/internal/board"
	"github.com/onelinechat/onelinechat/server/internal/dashboard"
)

// Info describes the running server for the health endpoint.
type Info struct {
	Transport string
	// Sessions reports open sessions; nil when the transport has none.
	Sessions func() int
}

// Handler serves the /api/v1/* endpoints from a board.
type Handler struct {
	board *board.Board
	info  Info
}

// New creates a router with the API routes registered on it.
func New(b *board.Board, info Info) http.Handler {
	r := chi.NewRouter()
	NewHandler(b, info).Register(r)
	return r
}

// NewHandler creates a Handler reading from b.
func NewHandler(b *board.Board, info Info) *Handler {
	return &Handler{board: b, info: info}
}

// Register mounts the API routes on r and installs JSON not-found and
// method-not-allowed handlers.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/v1/health", h.health)
	r.Get("/api/v1/board", h.listEntries)
	r.Get("/api/v1/board/{author}", h.getEntry)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		jsonErr(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// --- route handlers ---------------------------------------------------------

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		State:       "ok",
		Transport:   h.info.Transport,
		AuthorCount: h.board.Len(),
	}
	if h.info.Sessions != nil {
		n := h.info.Sessions()
		resp.SessionCount = &n
	}
	jsonResp(w, http.StatusOK, resp)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, BuildBoard(h.board))
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	author := chi.URLParam(r, "author")
	e, ok := h.board.Snapshot()[author]
	if !ok {
		jsonErr(w, http.StatusNotFound, "author not found")
		return
	}
	jsonResp(w, http.StatusOK, toEntryResponse(author, e))
}

// BuildBoard snapshots b into its JSON representation. The WebSocket hub
// uses it for every broadcast.
func BuildBoard(b *board.Board) BoardResponse {
	snap := b.Snapshot()
	entries := make([]EntryResponse, 0, len(snap))
	for author, e := range snap {
		entries = append(entries, toEntryResponse(author, e))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Author < entries[j].Author })

	return BoardResponse{
		Entries:     entries,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// --- helpers ----------------------------------------------------------------

func toEntryResponse(author string, e board.Entry) EntryResponse {
	return EntryResponse{
		Author: author,
		Text:   e.Text,
		Age:    e.Age,
		Shade:  dashboard.Shade(e.Age),
	}
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
