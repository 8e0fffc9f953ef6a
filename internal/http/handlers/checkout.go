package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/checkout"
)

type CheckoutHandler struct {
	Svc *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{Svc: svc}
}

// GET /api/checkout
func (h *CheckoutHandler) Summary(c *gin.Context) {
	res, err := h.Svc.Summary(c.Request.Context(), sess(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

type voucherInput struct {
	Code string `json:"code" binding:"required,max=50"`
}

// POST /api/checkout/voucher
func (h *CheckoutHandler) ApplyVoucher(c *gin.Context) {
	var in voucherInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	res, err := h.Svc.ApplyVoucher(c.Request.Context(), sess(c), in.Code)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

// DELETE /api/checkout/voucher
func (h *CheckoutHandler) RemoveVoucher(c *gin.Context) {
	res, err := h.Svc.RemoveVoucher(c.Request.Context(), sess(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, res)
}

type placeOrderInput struct {
	FullName      string `json:"full_name" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"required,numeric,min=9,max=11"`
	Email         string `json:"email" binding:"omitempty,email"`
	Province      string `json:"province" binding:"required"`
	District      string `json:"district" binding:"required"`
	Ward          string `json:"ward" binding:"required"`
	Street        string `json:"street" binding:"required,max=200"`
	Note          string `json:"note" binding:"max=500"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=COD MOMO WALLET cod momo wallet"`
}

// POST /api/checkout/orders
// The created order comes back with redirect_url set for MoMo; the browser
// follows it. A wallet shortfall is answered 400 and no order is created.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var in placeOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	res, err := h.Svc.PlaceOrder(c.Request.Context(), sess(c), checkout.PlaceOrderInput{
		FullName:      in.FullName,
		Phone:         in.Phone,
		Email:         in.Email,
		Street:        in.Street,
		Ward:          in.Ward,
		District:      in.District,
		Province:      in.Province,
		Note:          in.Note,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": checkout.MsgOrderPlaced, "result": res})
}
