package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/flash"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/logging"
	"github.com/khanh208/shop-noithat-vp-sub000/templates"
)

// RequireStaff lets ADMIN, SALES, WAREHOUSE and MARKETING through.
// Without a token it behaves like RequireAuth; with any other role it
// answers 403 in place (access-denied page, no redirect).
func RequireStaff(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.IsAuthenticated() {
			denyLogin(c, flashCodec)
			return
		}
		if sess.IsStaff() {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      MsgStaffOnly,
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Abort()
		c.Status(http.StatusForbidden)
		c.Header("Content-Type", "text/html; charset=utf-8")
		data := shellData(c, "")
		data.Message = MsgStaffOnly
		if err := templates.Render(c.Writer, "access_denied", data); err != nil {
			logging.FromCtx(c.Request.Context()).Error("access_denied_render_failed", slog.Any("err", err))
		}
	}
}
