package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farhat-is-coding/blog/models"
)

// AdminRequired restricts a route to the admin role. Anonymous callers and
// authenticated non-admins both receive a forbidden page, never the handler.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !IsAdmin(ctx) {
			ctx.HTML(http.StatusForbidden, "error.html", gin.H{
				"Status":  http.StatusForbidden,
				"Message": "You are not allowed to do that.",
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// IsAdmin reports whether the request identity carries the admin role claim.
func IsAdmin(ctx *gin.Context) bool {
	value, exists := ctx.Get(ContextUserRoleKey)
	if !exists {
		return false
	}
	role, _ := value.(string)
	return role == models.RoleAdmin
}
