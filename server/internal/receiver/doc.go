// Package receiver implements chatrpc.BoardServer, the gRPC endpoint used by
// chat clients of the gRPC transport.
//
// Receiver.PutMessage requires a non-empty author and text
// (codes.InvalidArgument otherwise) and calls board.Put. Receiver.RemoveAuthor
// requires a non-empty author and calls board.Remove; this transport always
// honors removal, so a client that disconnects cleanly leaves no stale entry.
//
// UnaryInterceptor logs every call and records its status code in metrics.
// NewServer builds a grpc.Server with the interceptor and the receiver
// registered.
package receiver
