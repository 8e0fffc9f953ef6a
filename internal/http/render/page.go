package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/templates"
)

// Page renders the HTML shell for a front-end entry point.
func Page(c *gin.Context, page, title string) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(c.Writer, "shell", middleware.ShellData(c, page, title)); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
	}
}

// JSON writes v with status 200. Handlers use it for every /api/ view model.
func JSON(c *gin.Context, v any) {
	c.JSON(http.StatusOK, v)
}

// Message answers mutations that have nothing but a notice to return.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}
