package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/orders"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/payments"
)

const MsgCancelRequested = "Đã gửi yêu cầu hủy đơn hàng. Vui lòng chờ cửa hàng xác nhận."

// OrdersHandler serves the customer's own orders.
type OrdersHandler struct {
	Svc      *orders.Service
	Payments *payments.Service
}

func NewOrdersHandler(svc *orders.Service, pay *payments.Service) *OrdersHandler {
	return &OrdersHandler{Svc: svc, Payments: pay}
}

// GET /api/orders?page=&size=
func (h *OrdersHandler) List(c *gin.Context) {
	page, size := pageParams(c, 10)
	res, err := h.Svc.List(c.Request.Context(), sess(c).Token, page, size)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

// GET /api/orders/:code
func (h *OrdersHandler) Get(c *gin.Context) {
	res, err := h.Svc.Get(c.Request.Context(), sess(c).Token, strings.TrimSpace(c.Param("code")))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

// POST /api/orders/:code/cancel
func (h *OrdersHandler) RequestCancel(c *gin.Context) {
	s := sess(c)
	res, err := h.Svc.RequestCancel(c.Request.Context(), s.Token, strings.TrimSpace(c.Param("code")), s.Username())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgCancelRequested, "order": res})
}

// POST /api/orders/:code/pay issues a fresh MoMo link for an order whose
// first redirect failed or was abandoned.
func (h *OrdersHandler) Pay(c *gin.Context) {
	s := sess(c)
	o, err := h.Svc.Get(c.Request.Context(), s.Token, strings.TrimSpace(c.Param("code")))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	u, err := h.Payments.PayOrder(c.Request.Context(), s.Token, o.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect_url": u})
}
