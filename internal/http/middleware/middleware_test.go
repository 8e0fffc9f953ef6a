package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/flash"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/sesscookie"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func withSession(s *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s != nil {
			SetSession(c, s)
		}
		c.Next()
	}
}

func guardedEngine(s *session.Session, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(quietLogger()), withSession(s))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/api/x", guard, ok)
	r.GET("/admin/x", guard, ok)
	r.GET("/account/x", guard, ok)
	return r
}

func do(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

var codec = flash.NewCodec([]byte("k"), "sf_flash", false)

func TestRequireAuth(t *testing.T) {
	guest := guardedEngine(nil, RequireAuth(codec))

	w := do(guest, "/api/x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(guest, "/account/x?tab=orders")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?return_to=%2Faccount%2Fx%3Ftab%3Dorders", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "sf_flash=")

	user := guardedEngine(&session.Session{ID: "s", Token: "t"}, RequireAuth(codec))
	assert.Equal(t, http.StatusOK, do(user, "/account/x").Code)
}

func TestRequireStaff(t *testing.T) {
	w := do(guardedEngine(nil, RequireStaff(codec)), "/admin/x")
	assert.Equal(t, http.StatusFound, w.Code, "no token redirects to login")

	customer := &session.Session{ID: "s", Token: "t", User: &backend.User{Username: "k", Role: "CUSTOMER"}}
	w = do(guardedEngine(customer, RequireStaff(codec)), "/admin/x")
	assert.Equal(t, http.StatusForbidden, w.Code, "wrong role is denied in place")
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), MsgStaffOnly)

	w = do(guardedEngine(customer, RequireStaff(codec)), "/api/x")
	assert.Equal(t, http.StatusForbidden, w.Code)

	for _, role := range []string{"ADMIN", "SALES", "WAREHOUSE", "MARKETING"} {
		staff := &session.Session{ID: "s", Token: "t", User: &backend.User{Username: "nv", Role: role}}
		assert.Equal(t, http.StatusOK, do(guardedEngine(staff, RequireStaff(codec)), "/admin/x").Code, role)
	}
}

func TestErrorHandlerJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(quietLogger()))
	r.GET("/api/fail", func(c *gin.Context) {
		Fail(c, apperr.InvalidErr("Mã giảm giá không hợp lệ.", map[string]string{"code": "x"}))
	})
	r.GET("/page", func(c *gin.Context) {
		Fail(c, errors.New("db down"))
	})

	w := do(r, "/api/fail")
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Mã giảm giá không hợp lệ.", body["error"])
	assert.NotEmpty(t, body["request_id"])
	assert.Contains(t, body, "fields")

	w = do(r, "/page")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), apperr.GenericMsg)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(quietLogger()), Recovery(quietLogger()))
	r.GET("/api/boom", func(*gin.Context) { panic("boom") })

	w := do(r, "/api/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), apperr.GenericMsg)
}

type fakeAuth struct{}

func (fakeAuth) Login(context.Context, string, string) (backend.AuthResponse, error) {
	return backend.AuthResponse{Token: "tok", User: &backend.User{Username: "u"}}, nil
}

func (fakeAuth) Register(context.Context, backend.RegisterInput) (backend.AuthResponse, error) {
	return backend.AuthResponse{}, nil
}

func TestSessionMiddlewareLoadsAndClears(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(session.NewMemoryStorage(), fakeAuth{}, session.Options{TTL: time.Hour})
	cookie := sesscookie.New([]byte("k"), "sf_session", false, time.Hour)

	sess, err := store.Login(context.Background(), nil, "u", "p")
	require.NoError(t, err)

	r := gin.New()
	r.Use(SessionMiddleware(store, cookie))
	r.GET("/who", func(c *gin.Context) { c.String(http.StatusOK, CurrentSession(c).Username()) })

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: "sf_session", Value: cookie.Encode(sess.ID)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "u", w.Body.String())

	store.Logout(context.Background(), sess.ID)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "", w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "sf_session=;")
}

func TestPromoPopupShownOncePerSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(session.NewMemoryStorage(), fakeAuth{}, session.Options{TTL: time.Hour})
	cookie := sesscookie.New([]byte("k"), "sf_session", false, time.Hour)

	r := gin.New()
	r.Use(SessionMiddleware(store, cookie), PromoPopup(store, cookie))
	r.GET("/", func(c *gin.Context) {
		if ShowPopup(c) {
			c.String(http.StatusOK, "popup")
			return
		}
		c.String(http.StatusOK, "plain")
	})

	w := do(r, "/")
	assert.Equal(t, "popup", w.Body.String())
	setCookie := w.Result().Cookies()
	require.NotEmpty(t, setCookie)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(setCookie[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "plain", w.Body.String())
}
