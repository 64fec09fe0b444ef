package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Method names understood by the server.
const (
	MethodPutMessage   = "putMessage"
	MethodRemoveAuthor = "removeAuthor"
)

// MaxLineLength bounds a single line, terminator included.
const MaxLineLength = 64 << 10

// ErrLineTooLong is returned by Read when a line exceeds MaxLineLength.
// The stream cannot be resynchronised after it.
var ErrLineTooLong = errors.New("wire: line too long")

// Request is one decoded frame.
type Request struct {
	Method string
	Args   []string
}

// Reader decodes requests from a byte stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r for request decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next request. The request ends at the first empty line or
// at the end of the stream. ok is false when the stream ended before any line
// of a new request was read. An empty line with nothing before it yields a
// request with an empty Method.
func (r *Reader) Read() (req Request, ok bool, err error) {
	lines, eof, err := r.readLines()
	if err != nil {
		return Request{}, false, err
	}
	if len(lines) == 0 {
		if eof {
			return Request{}, false, nil
		}
		return Request{}, true, nil
	}
	return Request{Method: lines[0], Args: lines[1:]}, true, nil
}

// readLines reports eof when the stream ended while reading the request.
func (r *Reader) readLines() ([]string, bool, error) {
	var lines []string
	for {
		line, err := r.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return lines, false, err
		}
		eof := err != nil
		if eof && line == "" {
			return lines, true, nil
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			return lines, false, nil
		}
		lines = append(lines, line)
		if eof {
			// unterminated final line
			return lines, true, nil
		}
	}
}

// readLine is bufio.Reader.ReadString('\n') with a length limit.
func (r *Reader) readLine() (string, error) {
	var buf []byte
	for {
		frag, err := r.r.ReadSlice('\n')
		if len(buf)+len(frag) > MaxLineLength {
			return "", ErrLineTooLong
		}
		buf = append(buf, frag...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return string(buf), err
	}
}

// Write encodes a request frame to w.
// Empty values or values containing a line break cannot be framed.
func Write(w io.Writer, method string, args ...string) error {
	var sb strings.Builder
	for i, v := range append([]string{method}, args...) {
		if v == "" {
			return fmt.Errorf("wire: field %d is empty", i)
		}
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("wire: field %d contains a line break", i)
		}
		sb.WriteString(v)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}
