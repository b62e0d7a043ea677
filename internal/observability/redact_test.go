package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactor_APIKey(t *testing.T) {
	r := NewRedactor()
	in := `chat request body: {"provider":"deepseek","apiKey":"sk-abcdefghij0123456789xyz"}`
	out := r.Redact(in)
	assert.NotContains(t, out, "sk-abcdefghij0123456789xyz")
	assert.Contains(t, out, "[REDACTED")
}

func TestRedactor_BearerToken(t *testing.T) {
	r := NewRedactor()
	out := r.Redact("Authorization: Bearer abc.def.ghi")
	assert.Equal(t, "Authorization: Bearer [REDACTED]", out)
}

func TestRedactor_LeavesPlainText(t *testing.T) {
	r := NewRedactor()
	assert.Equal(t, "hello world", r.Redact("hello world"))
}

func TestLogger_RedactedInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Options{Level: slog.LevelDebug, Output: &buf}, NewRedactor())

	logger.RedactedInfo("request sent", "body", `{"apiKey":"sk-abcdefghij0123456789xyz"}`)
	assert.NotContains(t, buf.String(), "sk-abcdefghij0123456789xyz")
	assert.Contains(t, buf.String(), "request sent")
}
