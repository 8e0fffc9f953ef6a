// Package pricing derives checkout amounts from cart lines. Everything here
// is pure: callers recompute on every cart, fee or discount change.
package pricing

import "github.com/shopspring/decimal"

type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
	SalePrice *decimal.Decimal
}

type Breakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// EffectivePrice is the sale price when one is set (non-zero), else the
// list price.
func EffectivePrice(l Line) decimal.Decimal {
	if l.SalePrice != nil && l.SalePrice.IsPositive() {
		return *l.SalePrice
	}
	return l.UnitPrice
}

// LineTotal returns effective price × quantity; lines below quantity 1 count
// as empty.
func LineTotal(l Line) decimal.Decimal {
	if l.Quantity < 1 {
		return decimal.Zero
	}
	return EffectivePrice(l).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineTotal(l))
	}
	return sum
}

// FinalTotal = max(0, subtotal + shippingFee - discount). The discount is
// not bounded here; the remote voucher check decides what is legal.
func FinalTotal(subtotal, shippingFee, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shippingFee).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

func Compute(lines []Line, shippingFee, discount decimal.Decimal) Breakdown {
	sub := Subtotal(lines)
	return Breakdown{
		Subtotal:    sub,
		ShippingFee: shippingFee,
		Discount:    discount,
		Total:       FinalTotal(sub, shippingFee, discount),
	}
}
