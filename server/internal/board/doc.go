// Package board holds the shared chat board: the most recent message of every
// connected author together with its age in renderer ticks.
//
// Put and Remove are called concurrently by sessions and the gRPC receiver.
// The dashboard calls Snapshot and then Advance once per tick. Snapshot
// returns a deep copy, so callers never hold references into live storage.
package board
