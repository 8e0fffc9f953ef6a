package orders

import (
	"github.com/shopspring/decimal"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
	"github.com/khanh208/shop-noithat-vp-sub000/pkg/view"
)

func statusBadge(s string) view.StatusBadge {
	return view.StatusBadge{Code: s, Label: Label(s), Badge: Badge(s)}
}

func paymentBadge(s string) view.StatusBadge {
	return view.StatusBadge{Code: s, Label: PaymentLabel(s), Badge: PaymentBadge(s)}
}

func toViewActions(in []ActionView) []view.OrderAction {
	out := make([]view.OrderAction, 0, len(in))
	for _, a := range in {
		out = append(out, view.OrderAction{
			Action: string(a.Action),
			Label:  a.Label,
			Kind:   string(a.Kind),
			Style:  a.Style,
			Target: string(a.Target),
		})
	}
	return out
}

func listItem(o backend.Order, actor Actor) view.OrderListItem {
	qty := 0
	for _, it := range o.Items {
		qty += it.Quantity
	}
	return view.OrderListItem{
		ID:            o.ID,
		Code:          o.OrderCode,
		CreatedAt:     o.CreatedAt,
		Status:        statusBadge(o.OrderStatus),
		PaymentStatus: paymentBadge(o.PaymentStatus),
		PaymentMethod: o.PaymentMethod,
		CustomerName:  o.CustomerName,
		Total:         view.VND(o.TotalAmount),
		ItemCount:     qty,
		Actions:       toViewActions(actions(Status(o.OrderStatus), actor)),
	}
}

func detail(o backend.Order, actor Actor) view.OrderDetail {
	items := make([]view.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, view.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ImageURL:    it.ImageURL,
			Qty:         it.Quantity,
			PriceEach:   view.VND(it.Price),
			LineTotal:   view.VND(it.Price.Mul(decimalQty(it.Quantity))),
		})
	}
	return view.OrderDetail{
		OrderListItem:   listItem(o, actor),
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		VoucherCode:     o.VoucherCode,
		Subtotal:        view.VND(o.Subtotal),
		Shipping:        view.VND(o.ShippingFee),
		Discount:        view.VND(o.DiscountAmount),
		Items:           items,
	}
}

func page(p backend.Page[backend.Order], actor Actor) view.OrdersPage {
	items := make([]view.OrderListItem, 0, len(p.Content))
	for _, o := range p.Content {
		items = append(items, listItem(o, actor))
	}
	return view.OrdersPage{
		Items:      items,
		Total:      p.TotalElements,
		Page:       p.Number,
		PageSize:   p.Size,
		TotalPages: p.TotalPages,
	}
}

func decimalQty(q int) decimal.Decimal { return decimal.NewFromInt(int64(q)) }

// CustomerDetail is the order detail as its owner sees it.
func CustomerDetail(o backend.Order) view.OrderDetail { return detail(o, ActorCustomer) }
