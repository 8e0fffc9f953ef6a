package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/flash"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

const CtxKeyFlash = "flash"

// FlashMiddleware reads the one-shot flash cookie into the context and
// clears it, valid or not.
func FlashMiddleware(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, err := c.Cookie(codec.CookieName); err == nil && v != "" {
			if f, err := codec.Decode(v); err == nil {
				c.Set(CtxKeyFlash, f)
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(codec.CookieName, "", -1, "/", "", codec.Secure, true)
		}
		c.Next()
	}
}

func GetFlash(c *gin.Context) *view.Flash {
	if v, ok := c.Get(CtxKeyFlash); ok {
		if f, ok := v.(*view.Flash); ok {
			return f
		}
	}
	return nil
}

func SetFlashCookie(c *gin.Context, codec *flash.Codec, f view.Flash) {
	if codec == nil {
		return
	}
	val, err := codec.Encode(f)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(codec.CookieName, val, codec.CookieMaxAge(), "/", "", codec.Secure, true)
}
