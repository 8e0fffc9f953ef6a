package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

// GET /verify-email?token= is the link mailed at registration. It always
// lands on /login with the outcome as a flash.
func (h *LoginForm) VerifyEmail(c *gin.Context) {
	msg, err := h.Auth.Verify.Verify(c.Request.Context(), c.Query("token"))
	if err != nil {
		render.RedirectWithFlash(c, h.Flash, "/login", view.FlashError, apperr.PublicMessage(err))
		return
	}
	render.RedirectWithFlash(c, h.Flash, "/login", view.FlashSuccess, msg)
}
