package handlers

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/flash"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/http/render"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/logging"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

const (
	MsgMomoPaid   = "Thanh toán MoMo thành công."
	MsgMomoFailed = "Thanh toán MoMo không thành công: "
)

// MomoReturn is where MoMo sends the browser back after payment. The
// backend settles the payment through its own IPN; this only tells the
// user how it went.
type MomoReturn struct {
	Flash *flash.Codec
}

// GET /payment/momo/return?resultCode=&message=&orderId=&next=
func (h *MomoReturn) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	code := strings.TrimSpace(c.Query("resultCode"))
	logging.FromCtx(ctx).InfoContext(ctx, "momo_return",
		slog.String("result_code", code),
		slog.String("momo_order_id", c.Query("orderId")),
	)

	next := normalizeReturnTo(c.Query("next"))
	if next == "" {
		next = "/account/orders"
	}
	if code == "0" {
		render.RedirectWithFlash(c, h.Flash, next, view.FlashSuccess, MsgMomoPaid)
		return
	}
	reason := strings.TrimSpace(c.Query("message"))
	if reason == "" {
		reason = "giao dịch bị hủy hoặc bị từ chối."
	}
	render.RedirectWithFlash(c, h.Flash, next, view.FlashError, MsgMomoFailed+reason)
}
