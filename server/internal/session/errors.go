package session

import "errors"

var (
	// ErrUnknownMethod is returned for a request whose method is not served.
	ErrUnknownMethod = errors.New("session: unknown method")

	// ErrArgCount is returned when a known method gets the wrong number of arguments.
	ErrArgCount = errors.New("session: wrong number of arguments")
)
