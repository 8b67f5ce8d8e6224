package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farhat-is-coding/blog/middleware"
	"github.com/farhat-is-coding/blog/utils"
)

// pageData merges the per-page template values with the identity and flash
// state every page shares.
func pageData(ctx *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	_, loggedIn := middleware.CurrentUserID(ctx)
	data["LoggedIn"] = loggedIn
	data["UserName"] = middleware.CurrentUserName(ctx)
	data["IsAdmin"] = middleware.IsAdmin(ctx)
	data["Flash"] = utils.GetFlash(ctx)
	data["Year"] = time.Now().Year()
	return data
}

func renderNotFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "error.html", gin.H{
		"Status":  http.StatusNotFound,
		"Message": "That page does not exist.",
	})
}

func renderServerError(ctx *gin.Context, err error) {
	utils.Sugar.Errorw("request failed", "path", ctx.Request.URL.Path, "err", err)
	ctx.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong. Please try again later.",
	})
}
