// Package api serves the read-only HTTP API of the onelinechat server.
//
// Routes (all GET, JSON responses):
//
//	/api/v1/health            server state and author count
//	/api/v1/board             every entry, sorted by author
//	/api/v1/board/{author}    one entry, 404 if absent
//
// Handlers only call board.Snapshot and board.Len, so they never age entries
// or block the dashboard longer than a read lock. Unknown routes and methods
// get a JSON error body.
package api
