package payments

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Method string

const (
	COD    Method = "COD"
	MoMo   Method = "MOMO"
	Wallet Method = "WALLET"
)

var methodLabels = map[Method]string{
	COD:    "Thanh toán khi nhận hàng (COD)",
	MoMo:   "Ví MoMo",
	Wallet: "Ví của tôi",
}

// ParseMethod accepts the method names case-insensitively.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := methodLabels[m]
	return m, ok
}

// Option is one selectable payment method on the checkout page.
type Option struct {
	Method            Method `json:"method"`
	Label             string `json:"label"`
	Disabled          bool   `json:"disabled"`
	InsufficientFunds bool   `json:"insufficient_funds,omitempty"`
	Redirect          bool   `json:"redirect,omitempty"`
}

// Options lists the methods in display order. Wallet is disabled exactly
// when balance < total.
func Options(balance, total decimal.Decimal) []Option {
	short := balance.LessThan(total)
	return []Option{
		{Method: COD, Label: methodLabels[COD]},
		{Method: MoMo, Label: methodLabels[MoMo], Redirect: true},
		{Method: Wallet, Label: methodLabels[Wallet], Disabled: short, InsufficientFunds: short},
	}
}

// CheckSubmission runs before any order is created.
func CheckSubmission(m Method, balance, total decimal.Decimal) error {
	if _, ok := methodLabels[m]; !ok {
		return ErrUnknownMethod
	}
	if m == Wallet && balance.LessThan(total) {
		return ErrInsufficientBalance
	}
	return nil
}
