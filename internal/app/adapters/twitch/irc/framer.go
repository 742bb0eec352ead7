package irc

import (
	"bytes"
	"strings"
)

// Framer splits a raw socket byte stream into complete IRC lines.
// Lines end with CRLF; whatever is left after the last CRLF stays
// buffered until the next Feed call. One framer per connection, used
// by a single reader.
type Framer struct {
	buf []byte
}

// Feed appends p to the buffer and returns every complete line
// accumulated so far, CRLF stripped. Invalid UTF-8 is replaced with
// U+FFFD rather than failing the stream. A fragment without a
// terminating CRLF is never emitted; if the connection closes first,
// it is simply dropped with the framer.
func (f *Framer) Feed(p []byte) []string {
	f.buf = append(f.buf, p...)

	var lines []string
	for {
		idx := bytes.Index(f.buf, []byte("\r\n"))
		if idx == -1 {
			return lines
		}
		lines = append(lines, strings.ToValidUTF8(string(f.buf[:idx]), "�"))
		f.buf = f.buf[idx+2:]
	}
}
