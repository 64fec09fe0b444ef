// Package dashboard renders the board as a fixed-width text frame.
//
// Renderer.Run ticks every interval (125ms by default). Each tick takes a
// Snapshot of the board, then Advances it, then writes the snapshot as one
// frame: a clear-screen sequence, a header line, one row per author sorted
// by name, and a footer line. An empty board renders a single NO CLIENTS row.
//
// Row layout:
//
//	+ [author    ]: <message zone, 61 columns> |
//
// The message zone is indented by 8 spaces at age 0 and 2 spaces at age 1.
// Ages 2 to 11 render in bright green, 12 to 23 in green, and older entries
// without color. Control characters are dropped from authors and texts.
//
// Snapshot and Advance are separate locked steps, so an entry Put between
// them is first rendered at age 1.
package dashboard
