package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/products"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/voucher"
)

const (
	msgSaved   = "Đã lưu."
	msgDeleted = "Đã xóa."
)

// CatalogHandler covers products, categories, banners and vouchers. Bodies
// are bound straight into the backend DTOs; validation happens in the
// services.
type CatalogHandler struct {
	Products *products.AdminService
	Vouchers *voucher.AdminService
}

func NewCatalogHandler(p *products.AdminService, v *voucher.AdminService) *CatalogHandler {
	return &CatalogHandler{Products: p, Vouchers: v}
}

// optionalID reads :id for updates and returns 0 for creates.
func optionalID(c *gin.Context) (int64, bool) {
	if c.Param("id") == "" {
		return 0, true
	}
	return paramID(c)
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.Fail(c, validation.Error(err, dst))
		return false
	}
	return true
}

func saved(c *gin.Context, created bool, v any) {
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"message": msgSaved, "item": v})
}

// POST /api/admin/products, PUT /api/admin/products/:id
func (h *CatalogHandler) SaveProduct(c *gin.Context) {
	id, ok := optionalID(c)
	if !ok {
		return
	}
	var in backend.ProductInput
	if !bind(c, &in) {
		return
	}
	s := staff(c)
	p, err := h.Products.SaveProduct(c.Request.Context(), s.Token, s.Username(), id, in)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	saved(c, id == 0, products.Card(p))
}

// DELETE /api/admin/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	h.remove(c, h.Products.DeleteProduct)
}

// POST /api/admin/categories, PUT /api/admin/categories/:id
func (h *CatalogHandler) SaveCategory(c *gin.Context) {
	id, ok := optionalID(c)
	if !ok {
		return
	}
	var in backend.CategoryInput
	if !bind(c, &in) {
		return
	}
	s := staff(c)
	cat, err := h.Products.SaveCategory(c.Request.Context(), s.Token, s.Username(), id, in)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	saved(c, id == 0, cat)
}

// DELETE /api/admin/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	h.remove(c, h.Products.DeleteCategory)
}

// GET /api/admin/banners lists inactive banners too.
func (h *CatalogHandler) Banners(c *gin.Context) {
	bs, err := h.Products.Banners(c.Request.Context(), staff(c).Token)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if bs == nil {
		bs = []backend.Banner{}
	}
	render.JSON(c, bs)
}

// POST /api/admin/banners, PUT /api/admin/banners/:id
func (h *CatalogHandler) SaveBanner(c *gin.Context) {
	id, ok := optionalID(c)
	if !ok {
		return
	}
	var in backend.BannerInput
	if !bind(c, &in) {
		return
	}
	s := staff(c)
	b, err := h.Products.SaveBanner(c.Request.Context(), s.Token, s.Username(), id, in)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	saved(c, id == 0, b)
}

// DELETE /api/admin/banners/:id
func (h *CatalogHandler) DeleteBanner(c *gin.Context) {
	h.remove(c, h.Products.DeleteBanner)
}

// GET /api/admin/vouchers
func (h *CatalogHandler) ListVouchers(c *gin.Context) {
	vs, err := h.Vouchers.List(c.Request.Context(), staff(c).Token)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if vs == nil {
		vs = []backend.Voucher{}
	}
	render.JSON(c, vs)
}

// POST /api/admin/vouchers, PUT /api/admin/vouchers/:id
func (h *CatalogHandler) SaveVoucher(c *gin.Context) {
	id, ok := optionalID(c)
	if !ok {
		return
	}
	var in backend.Voucher
	if !bind(c, &in) {
		return
	}
	in.ID = id
	s := staff(c)
	v, err := h.Vouchers.Save(c.Request.Context(), s.Token, s.Username(), in)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	saved(c, id == 0, v)
}

// DELETE /api/admin/vouchers/:id
func (h *CatalogHandler) DeleteVoucher(c *gin.Context) {
	h.remove(c, h.Vouchers.Delete)
}

type deleteFunc func(ctx context.Context, token, actor string, id int64) error

func (h *CatalogHandler) remove(c *gin.Context, del deleteFunc) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s := staff(c)
	if err := del(c.Request.Context(), s.Token, s.Username(), id); err != nil {
		middleware.Fail(c, err)
		return
	}
	render.Message(c, http.StatusOK, msgDeleted)
}
