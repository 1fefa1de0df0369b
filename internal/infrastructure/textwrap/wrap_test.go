package textwrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want string
	}{
		{
			name: "short text unchanged",
			text: "fix the crash",
			opts: Options{Width: 20, Trim: true},
			want: "fix the crash",
		},
		{
			name: "wraps at word boundary",
			text: "aaaa bbbb cccc",
			opts: Options{Width: 9, Trim: true},
			want: "aaaa bbbb\ncccc",
		},
		{
			name: "never splits a long word",
			text: "ab abcdefghij cd",
			opts: Options{Width: 4, Trim: true},
			want: "ab\nabcdefghij\ncd",
		},
		{
			name: "preserves existing line breaks",
			text: "first line\nsecond line",
			opts: Options{Width: 100, Trim: true},
			want: "first line\nsecond line",
		},
		{
			name: "preserves blank lines",
			text: "para one\n\npara two",
			opts: Options{Width: 100, Trim: true},
			want: "para one\n\npara two",
		},
		{
			name: "trims trailing whitespace per line",
			text: "aaaa    bbbb",
			opts: Options{Width: 6, Trim: true},
			want: "aaaa\nbbbb",
		},
		{
			name: "keeps trailing whitespace without trim",
			text: "aaaa bbbb",
			opts: Options{Width: 4},
			want: "aaaa \nbbbb",
		},
		{
			name: "indent applied to each line",
			text: "aaaa bbbb",
			opts: Options{Width: 4, Indent: "  ", Trim: true},
			want: "  aaaa\n  bbbb",
		},
		{
			name: "custom newline",
			text: "aaaa bbbb",
			opts: Options{Width: 4, Newline: "\r\n", Trim: true},
			want: "aaaa\r\nbbbb",
		},
		{
			name: "empty text",
			text: "",
			opts: Options{Width: 10, Trim: true},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.opts))
		})
	}
}

func TestWrap_DefaultWidth(t *testing.T) {
	text := strings.Repeat("word ", 30)

	got := Wrap(text, Options{Trim: true})

	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), DefaultWidth)
	}
}

func TestWrap_LinesNeverExceedWidthUnlessSingleWord(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog and keeps running far away"

	got := Wrap(text, Options{Width: 16, Trim: true})

	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 16, "line %q", line)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(got))
}
