package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/validation"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/payments"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/modules/users"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

// AccountHandler groups the profile and wallet endpoints.
type AccountHandler struct {
	Profiles *users.ProfileService
	Payments *payments.Service
}

func NewAccountHandler(p *users.ProfileService, pay *payments.Service) *AccountHandler {
	return &AccountHandler{Profiles: p, Payments: pay}
}

// GET /api/profile
func (h *AccountHandler) Profile(c *gin.Context) {
	u, err := h.Profiles.Get(c.Request.Context(), sess(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, userView(u))
}

// GET /api/wallet
func (h *AccountHandler) Wallet(c *gin.Context) {
	b, err := h.Payments.Balance(c.Request.Context(), sess(c).Token)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": view.VND(b)})
}

type depositInput struct {
	Amount decimal.Decimal `json:"amount"`
}

// POST /api/wallet/deposit answers with the MoMo page to top up on.
func (h *AccountHandler) Deposit(c *gin.Context) {
	var in depositInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, validation.Error(err, &in))
		return
	}
	u, err := h.Payments.Deposit(c.Request.Context(), sess(c).Token, in.Amount)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect_url": u})
}
