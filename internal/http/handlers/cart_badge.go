package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/middleware"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/logging"
)

// GET /api/cart/count feeds the header badge. Guests and backend failures
// both read as zero; the badge must never break a page.
func (h *CartHandler) Count(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if !s.IsAuthenticated() {
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}
	p, err := h.Svc.Page(c.Request.Context(), s.Token)
	if err != nil {
		ctx := c.Request.Context()
		logging.FromCtx(ctx).WarnContext(ctx, "cart_count_failed", slog.Any("err", err))
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": p.Count})
}
