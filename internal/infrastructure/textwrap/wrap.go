// Package textwrap wraps long-form commit text at word boundaries.
package textwrap

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultWidth is used when Options.Width is not positive.
const DefaultWidth = 50

// maxWidth is the largest repeat count the regexp engine accepts.
const maxWidth = 1000

// Options controls how Wrap lays out text.
type Options struct {
	// Width is the maximum number of characters per line. Words longer than
	// Width are kept whole on their own line.
	Width int

	// Indent is prepended to every line.
	Indent string

	// Newline joins wrapped lines (defaults to "\n").
	Newline string

	// Trim removes trailing spaces and tabs from every line.
	Trim bool
}

// Wrap breaks text into lines of at most opts.Width characters, splitting only
// on whitespace. Existing line breaks are kept.
func Wrap(text string, opts Options) string {
	if text == "" {
		return ""
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if width > maxWidth {
		width = maxWidth
	}

	newline := opts.Newline
	if newline == "" {
		newline = "\n"
	}

	// A line is either up to width characters ending at whitespace or end of
	// input, or a single word that does not fit.
	re := regexp.MustCompile(fmt.Sprintf(`.{1,%d}(\s+|$)|[^\s]+?(\s+|$)`, width))

	lines := re.FindAllString(text, -1)
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\n")
	}

	result := opts.Indent + strings.Join(lines, newline+opts.Indent)
	if opts.Trim {
		result = trimLines(result)
	}
	return result
}

// trimLines strips trailing spaces and tabs from every line, keeping a
// carriage return that ends a line.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		cr := strings.HasSuffix(line, "\r")
		line = strings.TrimRight(strings.TrimSuffix(line, "\r"), " \t")
		if cr {
			line += "\r"
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
