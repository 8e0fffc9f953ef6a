package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/orders"
)

const pageSize = 20

type OrdersHandler struct {
	Svc *orders.AdminService
}

func NewOrdersHandler(svc *orders.AdminService) *OrdersHandler {
	return &OrdersHandler{Svc: svc}
}

// GET /api/admin/orders?status=&page=
func (h *OrdersHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 0)
	if page < 0 {
		page = 0
	}
	res, err := h.Svc.List(c.Request.Context(), staff(c).Token, c.Query("status"), page, pageSize)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

// GET /api/admin/orders/:id
func (h *OrdersHandler) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	res, err := h.Svc.Get(c.Request.Context(), staff(c).Token, id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

type actionInput struct {
	Action string `json:"action" binding:"required"`
}

// POST /api/admin/orders/:id/actions
// The action is checked against the order's current status before the
// backend sees it; an illegal one is answered 409.
func (h *OrdersHandler) Action(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in actionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}

	s := staff(c)
	res, err := h.Svc.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID: id,
		Token:   s.Token,
		Actor:   s.Username(),
		Action:  in.Action,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã cập nhật trạng thái: " + res.Status.Label, "order": res})
}
