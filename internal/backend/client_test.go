package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginSendsCredentialsWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "an", body["username"])
		assert.Equal(t, "secret", body["password"])

		writeJSON(w, http.StatusOK, map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"id": 7, "username": "an", "email": "an@x.vn", "role": "USER"},
		})
	})

	res, err := c.Login(context.Background(), "an", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	require.NotNil(t, res.User)
	require.NotNil(t, res.User.ID)
	assert.Equal(t, int64(7), *res.User.ID)
	assert.Equal(t, "USER", res.User.Role)
}

func TestServerMessageIsPreserved(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Sai tên đăng nhập hoặc mật khẩu"})
	})

	_, err := c.Login(context.Background(), "an", "bad")
	require.Error(t, err)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Unauthorized, ae.Kind)
	assert.Equal(t, "Sai tên đăng nhập hoặc mật khẩu", ae.PublicMsg)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
}

func TestServerMessage(t *testing.T) {
	assert.Equal(t, "m", ServerMessage([]byte(`{"message":"m","error":"e"}`)))
	assert.Equal(t, "e", ServerMessage([]byte(`{"error":"e"}`)))
	assert.Equal(t, "Voucher hết hạn", ServerMessage([]byte(`Voucher hết hạn`)))
	assert.Equal(t, "quoted", ServerMessage([]byte(`"quoted"`)))
	assert.Empty(t, ServerMessage([]byte(`<html>502</html>`)))
	assert.Empty(t, ServerMessage([]byte(`  `)))
	assert.Empty(t, ServerMessage([]byte(`{"status":500}`)))
}

func TestUnreachableBackendIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	_, err := c.GetCart(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Unavailable))
	assert.Equal(t, msgUnreachable, apperr.PublicMessage(err))
}

func TestCreateOrderUsesQueryParameters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "Nguyễn Văn A", q.Get("fullName"))
		assert.Equal(t, "0901234567", q.Get("phone"))
		assert.Equal(t, "COD", q.Get("paymentMethod"))
		assert.Equal(t, "SALE50", q.Get("voucherCode"))
		assert.False(t, q.Has("note"))

		writeJSON(w, http.StatusOK, map[string]any{
			"id": 42, "orderCode": "DH0042", "totalAmount": 980000,
			"orderStatus": "PENDING", "paymentStatus": "PENDING", "paymentMethod": "COD",
		})
	})

	o, err := c.CreateOrder(context.Background(), "tok", CreateOrderInput{
		FullName:      "Nguyễn Văn A",
		Phone:         "0901234567",
		Address:       "1 Lê Lợi, Quận 1, TP HCM",
		PaymentMethod: "COD",
		VoucherCode:   "SALE50",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), o.ID)
	assert.Equal(t, "DH0042", o.OrderCode)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(980000)))
}

func TestAdminUpdateOrderStatusPassesStatusAsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/orders/9/status", r.URL.Path)
		assert.Equal(t, "CONFIRMED", r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "orderStatus": "CONFIRMED"})
	})

	o, err := c.AdminUpdateOrderStatus(context.Background(), "tok", 9, "CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", o.OrderStatus)
}

func TestCheckVoucher(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vouchers/check", r.URL.Path)
		assert.Equal(t, "SALE50", r.URL.Query().Get("code"))
		assert.Equal(t, "1000000", r.URL.Query().Get("total"))
		writeJSON(w, http.StatusOK, map[string]any{"discountAmount": 50000})
	})

	res, err := c.CheckVoucher(context.Background(), "tok", "SALE50", decimal.NewFromInt(1000000))
	require.NoError(t, err)
	assert.Equal(t, "SALE50", res.Code)
	assert.True(t, res.DiscountAmount.Equal(decimal.NewFromInt(50000)))
}

func TestNoContentResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/cart/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.RemoveCartItem(context.Background(), "tok", 3))
}

func TestValidationFieldsAreCarried(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Dữ liệu không hợp lệ",
			"errors":  map[string]string{"email": "Email đã tồn tại"},
		})
	})

	_, err := c.Register(context.Background(), RegisterInput{Username: "an", Email: "an@x.vn", Password: "123456"})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
	assert.Equal(t, "Email đã tồn tại", ae.Fields["email"])
}
