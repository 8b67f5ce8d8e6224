package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURLHashesNormalizedEmail(t *testing.T) {
	url := GravatarURL("  Test@Example.COM ", 100)
	assert.Contains(t, url, "55502f40dc8b7c769880b10874abc9d0")
	assert.Contains(t, url, "s=100")
	assert.Contains(t, url, "d=retro")
}

func TestGravatarURLDefaultsSize(t *testing.T) {
	assert.Contains(t, GravatarURL("test@example.com", 0), "s=100")
}
