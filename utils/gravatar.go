package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL builds the avatar URL for an email address. Matches the classic
// gravatar contract: md5 of the lowercased trimmed address, retro default,
// rating g.
func GravatarURL(email string, size int) string {
	if size <= 0 {
		size = 100
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=retro&r=g", sum, size)
}
