package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageController serves the static about and contact pages.
type PageController struct{}

// NewPageController creates a PageController.
func NewPageController() *PageController {
	return &PageController{}
}

func (p *PageController) About(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "about.html", pageData(ctx, nil))
}

func (p *PageController) Contact(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "contact.html", pageData(ctx, nil))
}
