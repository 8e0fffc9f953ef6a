package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
)

// Shell returns a handler serving the HTML shell for one front-end entry
// point. The page's data is fetched by the browser from /api/.
func Shell(page, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		render.Page(c, page, title)
	}
}

// AdminDashboard is the back-office landing page.
func AdminDashboard(c *gin.Context) {
	render.Page(c, "admin/dashboard", "Quản trị")
}
