// Package sse parses the backend's line-oriented streaming wire format.
// Frames are newline-delimited, prefixed "data: ", and the payload is either
// a plain text fragment, {"error": string}, or {"done": true, ...}.
package sse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// DataPrefix is the prefix for stream data lines.
const DataPrefix = "data: "

// Kind discriminates the parse result of one frame.
type Kind int

const (
	// KindSkip marks non-data lines and empty or whitespace-only payloads.
	KindSkip Kind = iota
	// KindText carries a plain text fragment to surface verbatim.
	KindText
	// KindControl marks a structured message that carries no displayable text.
	KindControl
	// KindError aborts the stream with the embedded message.
	KindError
	// KindTerminator ends the stream successfully.
	KindTerminator
)

// Frame is the classified result of parsing one stream line.
type Frame struct {
	Kind    Kind
	Text    string // payload for KindText
	Message string // message for KindError
}

// ParseLine classifies a single line of the stream. Payloads that decode as
// JSON objects dispatch on their error/done fields; anything that is not a
// JSON object is plain text.
func ParseLine(line []byte) Frame {
	line = bytes.TrimRight(line, "\r")
	if !bytes.HasPrefix(line, []byte(DataPrefix)) {
		return Frame{Kind: KindSkip}
	}
	payload := string(line[len(DataPrefix):])

	var obj map[string]any
	if err := json.Unmarshal([]byte(payload), &obj); err == nil {
		if v, ok := obj["error"]; ok && v != nil {
			msg, _ := v.(string)
			if msg == "" {
				if _, isStr := v.(string); !isStr {
					msg = fmt.Sprint(v)
				}
			}
			if msg != "" {
				return Frame{Kind: KindError, Message: msg}
			}
		}
		if done, ok := obj["done"].(bool); ok && done {
			return Frame{Kind: KindTerminator}
		}
		return Frame{Kind: KindControl}
	}

	if strings.TrimSpace(payload) == "" {
		return Frame{Kind: KindSkip}
	}
	return Frame{Kind: KindText, Text: payload}
}
