// Package wire implements the line-framed request format spoken over the raw
// TCP transport.
//
// A request is one or more non-empty lines terminated by an empty line or by
// the end of the stream. The first line names the method, the remaining lines
// are its positional arguments:
//
//	putMessage
//	alice
//	hello
//	<empty line>
//
// The protocol is one-way: nothing is ever written back to the sender.
package wire
