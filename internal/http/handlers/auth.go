package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/sesscookie"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/users"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

const (
	MsgLoggedIn   = "Đăng nhập thành công."
	MsgRegistered = "Đăng ký tài khoản thành công."
	MsgLoggedOut  = "Bạn đã đăng xuất."
)

// normalizeReturnTo validates and sanitizes the return_to parameter.
// Open redirect protection: only relative paths are accepted.
func normalizeReturnTo(s string) string {
	if s == "" || s[0] != '/' {
		return ""
	}
	// protocol-relative "//evil.com" and "/\evil.com"
	if len(s) >= 2 && (s[1] == '/' || s[1] == '\\') {
		return ""
	}
	if strings.Contains(s, "://") {
		return ""
	}
	return s
}

// SessionView converts a session (nil for guests) to its public shape.
func SessionView(s *session.Session, showPopup bool) view.SessionInfo {
	out := view.SessionInfo{
		Authenticated: s.IsAuthenticated(),
		IsStaff:       s.IsStaff(),
		ShowPopup:     showPopup,
	}
	if s.IsAuthenticated() && s.User != nil {
		out.User = userView(*s.User)
	}
	return out
}

func userView(u backend.User) *view.SessionUser {
	return &view.SessionUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      session.NormalizeRole(u.Role),
		FullName:  u.FullName,
		Phone:     u.Phone,
		Address:   u.Address,
		AvatarURL: u.AvatarURL,
	}
}

type AuthHandler struct {
	Store     *session.Store
	Cookie    *sesscookie.Codec
	Passwords *users.PasswordService
	Verify    *users.VerifyService
}

func NewAuthHandler(store *session.Store, cookie *sesscookie.Codec, pw *users.PasswordService, v *users.VerifyService) *AuthHandler {
	return &AuthHandler{Store: store, Cookie: cookie, Passwords: pw, Verify: v}
}

// GET /api/session
func (h *AuthHandler) Session(c *gin.Context) {
	render.JSON(c, SessionView(middleware.CurrentSession(c), middleware.ShowPopup(c)))
}

type loginInput struct {
	Identifier string `json:"identifier" form:"identifier" binding:"required"`
	Password   string `json:"password" form:"password" binding:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	s, err := h.Store.Login(c.Request.Context(), middleware.CurrentSession(c), in.Identifier, in.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	h.start(c, s)
	c.JSON(http.StatusOK, gin.H{"message": MsgLoggedIn, "session": SessionView(s, false)})
}

type registerInput struct {
	Username        string `json:"username" binding:"required,min=3,max=50"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	FullName        string `json:"full_name" binding:"max=100"`
	Phone           string `json:"phone" binding:"omitempty,numeric,min=9,max=11"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	s, err := h.Store.Register(c.Request.Context(), middleware.CurrentSession(c), backend.RegisterInput{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		FullName: strings.TrimSpace(in.FullName),
		Phone:    strings.TrimSpace(in.Phone),
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	h.start(c, s)
	c.JSON(http.StatusCreated, gin.H{"message": MsgRegistered, "session": SessionView(s, false)})
}

func (h *AuthHandler) start(c *gin.Context, s *session.Session) {
	h.Cookie.Set(c, s.ID)
	middleware.SetSession(c, s)
}

// POST /api/auth/logout never fails: the session is gone either way.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.end(c)
	render.Message(c, http.StatusOK, MsgLoggedOut)
}

func (h *AuthHandler) end(c *gin.Context) {
	if s := middleware.CurrentSession(c); s != nil {
		h.Store.Logout(c.Request.Context(), s.ID)
	}
	h.Cookie.Clear(c)
	middleware.SetSession(c, nil)
}

type forgotInput struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var in forgotInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	msg, err := h.Passwords.Forgot(c.Request.Context(), in.Email)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.Message(c, http.StatusOK, msg)
}

// GET /api/auth/verify?token=
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	msg, err := h.Verify.Verify(c.Request.Context(), c.Query("token"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.Message(c, http.StatusOK, msg)
}
