// Package terminal renders interactive feedback for the terminal.
package terminal

import (
	"github.com/fatih/color"
)

// ColorHighlighter implements domain.Highlighter with ANSI colors: green for
// text within limits, red for text that fails them.
type ColorHighlighter struct {
	pass *color.Color
	fail *color.Color
}

// NewColorHighlighter creates a new ColorHighlighter. When enabled is false the
// text is returned without escape codes, regardless of the terminal.
func NewColorHighlighter(enabled bool) *ColorHighlighter {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed, color.Bold)
	if enabled {
		pass.EnableColor()
		fail.EnableColor()
	} else {
		pass.DisableColor()
		fail.DisableColor()
	}
	return &ColorHighlighter{pass: pass, fail: fail}
}

// Pass renders text in the passing style.
func (h *ColorHighlighter) Pass(s string) string {
	return h.pass.Sprint(s)
}

// Fail renders text in the failing style.
func (h *ColorHighlighter) Fail(s string) string {
	return h.fail.Sprint(s)
}
