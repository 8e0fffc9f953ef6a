package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/cart"
)

const (
	MsgCartAdded   = "Đã thêm sản phẩm vào giỏ hàng."
	MsgCartUpdated = "Đã cập nhật giỏ hàng."
	MsgCartRemoved = "Đã xóa sản phẩm khỏi giỏ hàng."
)

// CartHandler exposes the signed-in user's backend cart.
type CartHandler struct {
	Svc *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{Svc: svc}
}

// GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	p, err := h.Svc.Page(c.Request.Context(), sess(c).Token)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, p)
}

type cartAddInput struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"omitempty,gte=1,lte=99"`
}

// POST /api/cart/items
func (h *CartHandler) Add(c *gin.Context) {
	var in cartAddInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	p, err := h.Svc.Add(c.Request.Context(), sess(c).Token, in.ProductID, in.Quantity)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgCartAdded, "cart": p})
}

type cartQtyInput struct {
	Quantity int `json:"quantity" binding:"required,gte=1,lte=99"`
}

// PATCH /api/cart/items/:id
func (h *CartHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in cartQtyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), sess(c).Token, id, in.Quantity)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgCartUpdated, "cart": p})
}

// DELETE /api/cart/items/:id
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.Svc.Remove(c.Request.Context(), sess(c).Token, id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgCartRemoved, "cart": p})
}
