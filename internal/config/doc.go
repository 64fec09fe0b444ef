// Package config loads the onelinechat YAML configuration shared by the
// launcher, the server and the client.
//
// Load(path) starts from built-in defaults (TCP transport on port 3001, a
// 125ms dashboard, client connecting to 127.0.0.1), overlays the file when a
// path is given, and validates the result. An empty path yields the defaults.
//
// Example:
//
//	log:
//	  level: info          # debug | info | warn | error
//	  format: json         # json | text
//	server:
//	  transport: tcp       # tcp | grpc
//	  listen_addr: ""      # empty = all interfaces
//	  port: 3001
//	  tcp:
//	    allow_remote_remove: false
//	  dashboard:
//	    enabled: true
//	    interval: 125ms
//	  http:
//	    enabled: false
//	    port: 8080
//	    stream_interval: 1s
//	client:
//	  transport: tcp
//	  address: 127.0.0.1
//	  port: 3001
//	  name: ""             # prompt when empty
//	  send_timeout: 5s
//
// Watch reloads the file on change and hands every valid new Config to a
// callback.
package config
