package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsScripts(t *testing.T) {
	out := Sanitize(`<p>fine</p><script>alert("xss")</script>`)
	assert.Contains(t, out, "<p>fine</p>")
	assert.NotContains(t, out, "<script>")
}

func TestSanitizeKeepsUserContentMarkup(t *testing.T) {
	in := `<b>bold</b> and <a href="https://example.com" rel="nofollow">a link</a>`
	out := Sanitize(in)
	assert.Contains(t, out, "<b>bold</b>")
	assert.Contains(t, out, "https://example.com")
}
