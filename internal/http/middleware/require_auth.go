package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/flash"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

const (
	MsgLoginRequired = "Vui lòng đăng nhập để tiếp tục."
	MsgStaffOnly     = "Bạn không có quyền truy cập trang quản trị."
)

// RequireAuth: without a token
// - JSON: 401
// - HTML: flash + redirect to /login?return_to=...
func RequireAuth(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).IsAuthenticated() {
			c.Next()
			return
		}
		denyLogin(c, flashCodec)
	}
}

func denyLogin(c *gin.Context, flashCodec *flash.Codec) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      MsgLoginRequired,
			"request_id": GetRequestID(c),
		})
		return
	}
	SetFlashCookie(c, flashCodec, view.Flash{Kind: view.FlashWarning, Message: MsgLoginRequired})
	c.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}
