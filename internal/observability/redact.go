package observability

import "regexp"

// Redactor masks provider credentials before they reach log output.
type Redactor struct {
	patterns []redactPattern
}

type redactPattern struct {
	regex       *regexp.Regexp
	replacement string
}

// NewRedactor creates a redactor covering the key formats the backend
// accepts in chat requests.
func NewRedactor() *Redactor {
	r := &Redactor{}
	r.AddPattern(`sk-[a-zA-Z0-9]{20,}`, "[REDACTED_KEY]")
	r.AddPattern(`Bearer\s+[a-zA-Z0-9\-_.]+`, "Bearer [REDACTED]")
	r.AddPattern(`"apiKey"\s*:\s*"[^"]*"`, `"apiKey":"[REDACTED]"`)
	return r
}

// AddPattern adds a custom redaction pattern. Invalid patterns are skipped.
func (r *Redactor) AddPattern(pattern, replacement string) {
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return
	}
	r.patterns = append(r.patterns, redactPattern{regex: regex, replacement: replacement})
}

// Redact applies all patterns to the input.
func (r *Redactor) Redact(input string) string {
	result := input
	for _, p := range r.patterns {
		result = p.regex.ReplaceAllString(result, p.replacement)
	}
	return result
}
