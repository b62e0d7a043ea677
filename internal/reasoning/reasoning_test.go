package reasoning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripThinkTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paired tags removed",
			in:   "<think>planning the scene</think>The knight rode east.",
			want: "The knight rode east.",
		},
		{
			name: "multiline tag body",
			in:   "Before.\n<think>\nstep one\nstep two\n</think>\nAfter.",
			want: "Before.\n\nAfter.",
		},
		{
			name: "case insensitive",
			in:   "<THINK>hidden</THINK>visible",
			want: "visible",
		},
		{
			name: "fenced think block",
			in:   "Intro\n```think\ninternal notes\n```\nOutro",
			want: "Intro\n\nOutro",
		},
		{
			name: "empty fence marker",
			in:   "Start```think```End",
			want: "StartEnd",
		},
		{
			name: "unpaired opening tag left intact",
			in:   "<think>never closed, so the story survives",
			want: "<think>never closed, so the story survives",
		},
		{
			name: "no tags",
			in:   "Plain story text.",
			want: "Plain story text.",
		},
		{
			name: "multiple pairs",
			in:   "<think>a</think>one<think>b</think>two",
			want: "onetwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripThinkTags(tt.in))
		})
	}
}
