// Package reasoning strips model reasoning traces from generated text.
// Some models wrap their chain of thought in <think> tags or fenced think
// blocks; callers display only the remaining prose.
package reasoning

import (
	"regexp"
	"strings"
)

var (
	thinkTag        = regexp.MustCompile(`(?is)<think>.*?</think>`)
	thinkFence      = regexp.MustCompile("(?is)```think[ \t]*\n.*?\n```")
	thinkFenceEmpty = regexp.MustCompile("(?i)```think[ \t]*```")
	blankRuns       = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// StripThinkTags removes matched <think>...</think> pairs and fenced think
// blocks, then collapses the blank runs left behind. Unpaired opening tags
// are left intact rather than swallowing the rest of the text.
func StripThinkTags(text string) string {
	text = thinkTag.ReplaceAllString(text, "")
	text = thinkFence.ReplaceAllString(text, "")
	text = thinkFenceEmpty.ReplaceAllString(text, "")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
