// Package session serves the raw TCP transport of the chat board.
//
// Server accepts connections and runs one Handler loop per connection in its
// own goroutine. Handler decodes line-framed requests (see package wire) and
// applies them to the board:
//
//   - putMessage author text  -> Board.Put
//   - removeAuthor author     -> Board.Remove, only with WithRemoteRemove
//   - empty method            -> ignored
//   - anything else           -> logged and dropped, the session continues
//
// Nothing is written back to the client. A session ends on end of stream, on
// a read error, or when the server shuts down.
package session
