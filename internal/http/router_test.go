package http

import (
	"context"
	"encoding/json"
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
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/handlers"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/handlers/admin"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/sesscookie"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
)

type fakeAuth struct{ role string }

func (f fakeAuth) Login(_ context.Context, identifier, _ string) (backend.AuthResponse, error) {
	return backend.AuthResponse{Token: "tok", User: &backend.User{Username: identifier, Role: f.role}}, nil
}

func (fakeAuth) Register(context.Context, backend.RegisterInput) (backend.AuthResponse, error) {
	return backend.AuthResponse{}, nil
}

func testRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewStore(session.NewMemoryStorage(), fakeAuth{role: role}, session.Options{TTL: time.Hour, Logger: l})
	cookie := sesscookie.New([]byte("k"), "sf_session", false, time.Hour)

	return NewRouter(Deps{
		Logger:   l,
		Sessions: store,
		Cookie:   cookie,
		Flash:    flash.NewCodec([]byte("k"), "sf_flash", false),

		Auth:         handlers.NewAuthHandler(store, cookie, nil, nil),
		Catalog:      handlers.NewCatalogHandler(nil),
		Cart:         handlers.NewCartHandler(nil),
		Checkout:     handlers.NewCheckoutHandler(nil),
		Orders:       handlers.NewOrdersHandler(nil, nil),
		Account:      handlers.NewAccountHandler(nil, nil),
		Geo:          handlers.NewGeoHandler(nil),
		AdminOrders:  admin.NewOrdersHandler(nil),
		AdminCatalog: admin.NewCatalogHandler(nil, nil),
		AdminUploads: admin.NewUploadsHandler(nil),
	})
}

func serve(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "sf_session" && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestHealthz(t *testing.T) {
	w := serve(testRouter("CUSTOMER"), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuestSessionAndGuards(t *testing.T) {
	r := testRouter("CUSTOMER")

	w := serve(r, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info struct {
		Authenticated bool `json:"authenticated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.False(t, info.Authenticated)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/cart", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/admin/orders", "").Code)

	w = serve(r, http.MethodGet, "/checkout", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?return_to=%2Fcheckout", w.Header().Get("Location"))
}

func TestLoginThenSession(t *testing.T) {
	r := testRouter("CUSTOMER")

	w := serve(r, http.MethodPost, "/api/auth/login", `{"identifier":"khanh","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ck := sessionCookie(t, w)

	w = serve(r, http.MethodGet, "/api/session", "", ck)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"khanh"`)

	w = serve(r, http.MethodGet, "/admin", "", ck)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodPost, "/api/auth/logout", "", ck)
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(r, http.MethodGet, "/api/session", "", ck)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestStaffReachesBackOffice(t *testing.T) {
	r := testRouter("ADMIN")

	w := serve(r, http.MethodPost, "/api/auth/login", `{"identifier":"nv","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/admin/orders", "", sessionCookie(t, w))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-page="admin/orders"`)
}

func TestPopupOnFirstPageOnly(t *testing.T) {
	r := testRouter("CUSTOMER")

	w := serve(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-show-popup="true"`)
	ck := sessionCookie(t, w)

	w = serve(r, http.MethodGet, "/products", "", ck)
	assert.Contains(t, w.Body.String(), `data-show-popup="false"`)
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	w := serve(testRouter("CUSTOMER"), http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Không tìm thấy trang.")
}
