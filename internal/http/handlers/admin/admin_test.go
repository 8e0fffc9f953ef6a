package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/orders"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/products"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/voucher"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/storage"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// fakeBackend covers the voucher, catalog and order admin endpoints.
type fakeBackend struct {
	vouchers      []backend.Voucher
	savedVouchers []backend.Voucher
	deleted       []int64
	savedProducts []backend.ProductInput
	order         backend.Order
	statusUpdates []string
}

func (f *fakeBackend) AdminListVouchers(context.Context, string) ([]backend.Voucher, error) {
	return f.vouchers, nil
}

func (f *fakeBackend) AdminSaveVoucher(_ context.Context, _ string, v backend.Voucher) (backend.Voucher, error) {
	f.savedVouchers = append(f.savedVouchers, v)
	if v.ID == 0 {
		v.ID = 9
	}
	return v, nil
}

func (f *fakeBackend) AdminDeleteVoucher(_ context.Context, _ string, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) AdminSaveProduct(_ context.Context, _ string, id int64, in backend.ProductInput) (backend.Product, error) {
	f.savedProducts = append(f.savedProducts, in)
	return backend.Product{ID: 3, Name: in.Name, Price: in.Price}, nil
}

func (f *fakeBackend) AdminDeleteProduct(_ context.Context, _ string, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) AdminSaveCategory(_ context.Context, _ string, id int64, in backend.CategoryInput) (backend.Category, error) {
	return backend.Category{ID: id, Name: in.Name}, nil
}

func (f *fakeBackend) AdminDeleteCategory(context.Context, string, int64) error { return nil }

func (f *fakeBackend) AdminListBanners(context.Context, string) ([]backend.Banner, error) {
	return nil, nil
}

func (f *fakeBackend) AdminSaveBanner(_ context.Context, _ string, id int64, in backend.BannerInput) (backend.Banner, error) {
	return backend.Banner{ID: id}, nil
}

func (f *fakeBackend) AdminDeleteBanner(context.Context, string, int64) error { return nil }

func (f *fakeBackend) AdminListOrders(context.Context, string, string, int, int) (backend.Page[backend.Order], error) {
	return backend.Page[backend.Order]{}, nil
}

func (f *fakeBackend) AdminGetOrder(context.Context, string, int64) (backend.Order, error) {
	return f.order, nil
}

func (f *fakeBackend) AdminUpdateOrderStatus(_ context.Context, _ string, _ int64, status string) (backend.Order, error) {
	f.statusUpdates = append(f.statusUpdates, status)
	o := f.order
	o.OrderStatus = status
	return o, nil
}

func engine(f *fakeBackend, st storage.Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	staffSess := &session.Session{ID: "s", Token: "t", User: &backend.User{Username: "nv", Role: "ADMIN"}}
	r.Use(middleware.RequestID(), middleware.ErrorHandler(quiet()), func(c *gin.Context) {
		middleware.SetSession(c, staffSess)
		c.Next()
	})

	cat := NewCatalogHandler(products.NewAdminService(f, quiet()), voucher.NewAdminService(f, quiet()))
	ord := NewOrdersHandler(orders.NewAdminService(f, quiet()))
	up := NewUploadsHandler(st)

	api := r.Group("/api/admin")
	api.GET("/vouchers", cat.ListVouchers)
	api.POST("/vouchers", cat.SaveVoucher)
	api.PUT("/vouchers/:id", cat.SaveVoucher)
	api.DELETE("/vouchers/:id", cat.DeleteVoucher)
	api.POST("/products", cat.SaveProduct)
	api.DELETE("/products/:id", cat.DeleteProduct)
	api.POST("/orders/:id/actions", ord.Action)
	api.POST("/uploads", up.Upload)
	return r
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) (string, map[string]string) {
	t.Helper()
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error, body.Fields
}

func TestVoucherList(t *testing.T) {
	f := &fakeBackend{vouchers: []backend.Voucher{{ID: 1, Code: "GIAM50", DiscountType: "FIXED", DiscountValue: decimal.NewFromInt(50000)}}}

	w := call(engine(f, nil), http.MethodGet, "/api/admin/vouchers", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []backend.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "GIAM50", got[0].Code)

	w = call(engine(&fakeBackend{}, nil), http.MethodGet, "/api/admin/vouchers", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestVoucherSaveNormalizesAndUsesPathID(t *testing.T) {
	f := &fakeBackend{}
	r := engine(f, nil)

	w := call(r, http.MethodPost, "/api/admin/vouchers", `{"code":" giam10 ","discountType":"percent","discountValue":10,"minOrderValue":0,"quantity":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, f.savedVouchers, 1)
	assert.Equal(t, "GIAM10", f.savedVouchers[0].Code)
	assert.Equal(t, voucher.TypePercent, f.savedVouchers[0].DiscountType)

	w = call(r, http.MethodPut, "/api/admin/vouchers/4", `{"id":99,"code":"GIAM10","discountType":"FIXED","discountValue":20000,"minOrderValue":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, f.savedVouchers, 2)
	assert.Equal(t, int64(4), f.savedVouchers[1].ID)
}

func TestVoucherSaveRejectsBadInput(t *testing.T) {
	f := &fakeBackend{}

	w := call(engine(f, nil), http.MethodPost, "/api/admin/vouchers", `{"code":"x","discountType":"FIXED","discountValue":1000,"minOrderValue":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg, fields := errorBody(t, w)
	assert.Equal(t, voucher.MsgCodeFormat, msg)
	assert.Equal(t, voucher.MsgCodeFormat, fields["code"])
	assert.Empty(t, f.savedVouchers)
}

func TestVoucherDelete(t *testing.T) {
	f := &fakeBackend{}
	r := engine(f, nil)

	w := call(r, http.MethodDelete, "/api/admin/vouchers/7", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{7}, f.deleted)

	w = call(r, http.MethodDelete, "/api/admin/vouchers/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []int64{7}, f.deleted)
}

func TestProductSaveValidation(t *testing.T) {
	f := &fakeBackend{}
	r := engine(f, nil)

	w := call(r, http.MethodPost, "/api/admin/products", `{"name":"  ","price":0,"stock":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg, fields := errorBody(t, w)
	assert.Equal(t, products.MsgNameRequired, msg)
	assert.Equal(t, products.MsgPriceInvalid, fields["price"])
	assert.Equal(t, products.MsgStockNegative, fields["stock"])
	assert.Empty(t, f.savedProducts)

	w = call(r, http.MethodPost, "/api/admin/products", `{"name":"Ghế xoay","price":1500000,"stock":4}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, f.savedProducts, 1)
	assert.Equal(t, "Ghế xoay", f.savedProducts[0].Name)
}

func TestOrderActionIllegalIsConflict(t *testing.T) {
	f := &fakeBackend{order: backend.Order{ID: 5, OrderCode: "DH5", OrderStatus: "PENDING", PaymentStatus: "PENDING"}}
	r := engine(f, nil)

	w := call(r, http.MethodPost, "/api/admin/orders/5/actions", `{"action":"deliver"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	msg, _ := errorBody(t, w)
	assert.Equal(t, orders.MsgInvalidTransition, msg)
	assert.Empty(t, f.statusUpdates)

	w = call(r, http.MethodPost, "/api/admin/orders/5/actions", `{"action":"confirm"}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"CONFIRMED"}, f.statusUpdates)
}

func TestOrderActionUnknown(t *testing.T) {
	f := &fakeBackend{order: backend.Order{ID: 5, OrderStatus: "PENDING"}}

	w := call(engine(f, nil), http.MethodPost, "/api/admin/orders/5/actions", `{"action":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.statusUpdates)
}

func upload(r http.Handler, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	fw, _ := mw.CreatePart(h)
	_, _ = fw.Write(data)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads?folder=banners", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpload(t *testing.T) {
	r := engine(&fakeBackend{}, storage.NewLocal(t.TempDir(), "/uploads"))

	w := upload(r, "banner.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var got struct {
		URL string `json:"url"`
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, strings.HasPrefix(got.Key, "banners/"), got.Key)
	assert.Equal(t, "/uploads/"+got.Key, got.URL)

	w = upload(r, "script.exe", "application/octet-stream", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, fields := errorBody(t, w)
	assert.NotEmpty(t, fields["file"])
}
