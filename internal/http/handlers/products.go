package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/products"
)

// CatalogHandler serves the public catalog endpoints.
type CatalogHandler struct {
	Svc *products.Service
}

func NewCatalogHandler(svc *products.Service) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

// GET /api/products?page=&size=&q=&category=&sort=
func (h *CatalogHandler) List(c *gin.Context) {
	page, size := pageParams(c, products.DefaultPageSize)
	cat, _ := strconv.ParseInt(c.Query("category"), 10, 64)

	res, err := h.Svc.List(c.Request.Context(), products.ListQuery{
		Page:       page,
		Size:       size,
		Keyword:    c.Query("q"),
		CategoryID: cat,
		Sort:       c.Query("sort"),
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

// GET /api/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	res, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

// GET /api/banners
func (h *CatalogHandler) Banners(c *gin.Context) {
	res, err := h.Svc.Banners(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}
