// Package sender delivers chat operations from the client to the server.
//
// Dial opens the transport named in the client config and returns a Sender:
//
//   - tcp: one connection; each call writes one framed request
//     (see pkg/wire) under a write deadline of send_timeout.
//   - grpc: one client connection to the onelinechat.v1.Board service; each
//     call is a unary RPC bounded by send_timeout.
//
// Dial fails if the server cannot be reached within send_timeout. Nothing is
// retried: a failed call returns its error and the caller decides whether to
// drop the message.
package sender
