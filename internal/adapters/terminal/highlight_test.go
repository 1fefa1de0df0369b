package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorHighlighter_Disabled(t *testing.T) {
	h := NewColorHighlighter(false)

	assert.Equal(t, "(13) resolve crash", h.Pass("(13) resolve crash"))
	assert.Equal(t, "(13) resolve crash", h.Fail("(13) resolve crash"))
}

func TestColorHighlighter_Enabled(t *testing.T) {
	h := NewColorHighlighter(true)

	pass := h.Pass("ok")
	fail := h.Fail("too long")

	assert.Contains(t, pass, "\x1b[32m")
	assert.Contains(t, pass, "ok")
	assert.Contains(t, fail, "\x1b[31")
	assert.Contains(t, fail, "too long")
	assert.NotEqual(t, h.Pass("same"), h.Fail("same"))
}
