package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/mailer"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

// MailNotifier emails the back-office mailbox.
type MailNotifier struct {
	mail     mailer.Service
	from     string
	fromName string
	to       []string
	adminURL string
}

func NewMailNotifier(m mailer.Service, from, fromName, to, baseURL string) *MailNotifier {
	var rcpts []string
	for _, r := range strings.Split(to, ",") {
		if r = strings.TrimSpace(r); r != "" {
			rcpts = append(rcpts, r)
		}
	}
	return &MailNotifier{
		mail:     m,
		from:     from,
		fromName: fromName,
		to:       rcpts,
		adminURL: strings.TrimRight(baseURL, "/") + "/admin/orders/",
	}
}

func (n *MailNotifier) CancelRequested(ctx context.Context, o backend.Order, requestedBy string) error {
	if len(n.to) == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Khách hàng %s yêu cầu hủy đơn %s.\n\n", requestedBy, o.OrderCode)
	fmt.Fprintf(&b, "Người nhận: %s (%s)\n", o.CustomerName, o.CustomerPhone)
	fmt.Fprintf(&b, "Tổng tiền: %s\n", view.FormatVND(o.TotalAmount))
	fmt.Fprintf(&b, "Thanh toán: %s - %s\n\n", o.PaymentMethod, PaymentLabel(o.PaymentStatus))
	fmt.Fprintf(&b, "Duyệt yêu cầu: %s%d\n", n.adminURL, o.ID)

	return n.mail.Send(ctx, mailer.Email{
		From:     n.from,
		FromName: n.fromName,
		To:       n.to,
		Subject:  "Yêu cầu hủy đơn " + o.OrderCode,
		TextBody: b.String(),
		Headers:  map[string]string{"X-Order-Code": o.OrderCode},
	})
}
