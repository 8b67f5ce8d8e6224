package utils

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "blog_flash"

// SetFlash stores a one-shot message shown on the next rendered page.
// Base64 keeps arbitrary text cookie-safe.
func SetFlash(ctx *gin.Context, message string) {
	encoded := base64.URLEncoding.EncodeToString([]byte(message))
	ctx.SetCookie(flashCookieName, encoded, 300, "/", "", false, true)
}

// GetFlash returns the pending flash message, clearing it.
func GetFlash(ctx *gin.Context) string {
	encoded, err := ctx.Cookie(flashCookieName)
	if err != nil || encoded == "" {
		return ""
	}
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(decoded)
}
