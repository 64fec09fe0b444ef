// Package server assembles the onelinechat server.
//
// Serve wires one board to:
//
//   - the chat transport named by server.transport: the TCP session server
//     or the gRPC Board service, on the chat listener;
//   - the terminal dashboard, when server.dashboard.enabled, drawing to the
//     given writer (stdout in the binaries);
//   - the HTTP listener, when one is passed: /api/v1/*, /metrics and the
//     /ws/stream WebSocket view.
//
// Run binds the listeners from the config and calls Serve. Both block until
// ctx is cancelled or a listener fails, then stop every component.
package server
