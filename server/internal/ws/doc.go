// Package ws implements the WebSocket live view of the board.
//
// Hub keeps a set of connected viewers and broadcasts the board to all of
// them every interval (1s by default). Each message is the same document as
// GET /api/v1/board, wrapped in an envelope:
//
//	{
//	  "event": "board",
//	  "data":  { "entries": [...], "generated_at": "..." }
//	}
//
// A viewer receives the current board immediately on connect. Viewers never
// send anything besides control frames; a viewer whose buffer fills up is
// dropped. The hub only takes board snapshots, so watching never ages
// entries. The endpoint is mounted at /ws/stream by the server.
package ws
