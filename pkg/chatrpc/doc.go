// Package chatrpc defines the onelinechat.v1.Board gRPC service.
//
// The service has two unary methods:
//
//	PutMessage(PutMessageRequest{author, text}) returns (Ack)
//	RemoveAuthor(RemoveAuthorRequest{author}) returns (Ack)
//
// Messages are plain Go structs carried by a JSON codec that is registered
// with gRPC under the "json" content-subtype when this package is imported.
// NewBoardClient selects that codec on every call, and any server that
// imports this package can decode it.
//
// Ack is empty. Callers should treat a nil error as delivery, not as a reply
// from the board.
package chatrpc
