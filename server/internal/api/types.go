package api

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	State       string `json:"state"`
	Transport   string `json:"transport"`
	AuthorCount int    `json:"author_count"`
	// SessionCount is omitted for transports without long-lived sessions.
	SessionCount *int `json:"session_count,omitempty"`
}

// EntryResponse is one author's current message.
type EntryResponse struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Age    int    `json:"age"`
	Shade  string `json:"shade"`
}

// BoardResponse is the payload for GET /api/v1/board and the WebSocket stream.
type BoardResponse struct {
	Entries     []EntryResponse `json:"entries"`
	GeneratedAt string          `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
