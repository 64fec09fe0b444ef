// Package metrics owns the Prometheus collectors of the chat server.
//
// Every Metrics value has its own registry so tests and multiple servers in
// one process do not collide. All recording methods are safe on a nil
// *Metrics, which lets components run without instrumentation.
package metrics
