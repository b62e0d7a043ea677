package sse

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	initialBufferSize = 4096
	// maxLineSize caps a single frame; generation chunks are small but an
	// error payload can embed a full upstream response.
	maxLineSize = 512 * 1024
)

// NewScanner returns a line scanner over a raw byte stream. The stream runs
// through a UTF-8 decoder so multi-byte sequences split across reads decode
// cleanly instead of surfacing as mojibake at chunk boundaries.
func NewScanner(r io.Reader) *bufio.Scanner {
	decoded := transform.NewReader(r, unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, initialBufferSize), maxLineSize)
	return scanner
}
