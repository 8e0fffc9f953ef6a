package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/users"
)

type resetInput struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var in resetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	err := h.Passwords.Reset(c.Request.Context(), users.ResetInput{
		Token:           in.Token,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.Message(c, http.StatusOK, users.MsgResetDone)
}
