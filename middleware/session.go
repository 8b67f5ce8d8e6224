package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farhat-is-coding/blog/utils"
)

const (
	// SessionCookieName carries the signed session token in the browser.
	SessionCookieName = "blog_session"

	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUserNameKey stores the display name inside Gin context.
	ContextUserNameKey = "user_name"
	// ContextUserRoleKey stores the role claim inside Gin context.
	ContextUserRoleKey = "user_role"
)

// SessionLoader resolves the session cookie into an identity on every request.
// Anonymous requests pass through with no identity set; a missing, expired, or
// revoked token is treated as anonymous rather than an error.
func SessionLoader() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookieName)
		if err != nil || token == "" {
			ctx.Next()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			ctx.Next()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUserNameKey, claims.Name)
		ctx.Set(ContextUserRoleKey, claims.Role)
		ctx.Next()
	}
}

// AuthRequired ensures the request carries an authenticated identity,
// redirecting anonymous visitors to the login page.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := CurrentUserID(ctx); !ok {
			utils.SetFlash(ctx, "Please log in first.")
			ctx.Redirect(http.StatusSeeOther, "/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// CurrentUserID returns the authenticated user's id, if any.
func CurrentUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// CurrentUserName returns the authenticated user's display name, or "".
func CurrentUserName(ctx *gin.Context) string {
	value, exists := ctx.Get(ContextUserNameKey)
	if !exists {
		return ""
	}
	name, _ := value.(string)
	return name
}
