package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/flash"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

// LoginForm serves the form-post login used without JavaScript. It shares
// the session store with the JSON endpoints.
type LoginForm struct {
	Auth  *AuthHandler
	Flash *flash.Codec
}

// GET /login
func (h *LoginForm) Get(c *gin.Context) {
	if middleware.CurrentSession(c).IsAuthenticated() {
		c.Redirect(http.StatusFound, orHome(normalizeReturnTo(c.Query("return_to"))))
		return
	}
	render.Page(c, "login", "Đăng nhập")
}

// POST /login
func (h *LoginForm) Post(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		h.back(c, returnTo, apperr.PublicMessage(validation.Error(err, &in)))
		return
	}
	s, err := h.Auth.Store.Login(c.Request.Context(), middleware.CurrentSession(c), in.Identifier, in.Password)
	if err != nil {
		h.back(c, returnTo, apperr.PublicMessage(err))
		return
	}
	h.Auth.start(c, s)
	render.RedirectWithFlash(c, h.Flash, orHome(returnTo), view.FlashSuccess, MsgLoggedIn)
}

// POST /logout
func (h *LoginForm) Logout(c *gin.Context) {
	h.Auth.end(c)
	render.RedirectWithFlash(c, h.Flash, "/", view.FlashInfo, MsgLoggedOut)
}

func (h *LoginForm) back(c *gin.Context, returnTo, msg string) {
	loc := "/login"
	if returnTo != "" {
		loc += "?return_to=" + url.QueryEscape(returnTo)
	}
	render.RedirectWithFlash(c, h.Flash, loc, view.FlashError, msg)
}

func orHome(s string) string {
	if s == "" {
		return "/"
	}
	return s
}
