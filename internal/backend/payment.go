package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

func (c *Client) GetWallet(ctx context.Context, token string) (Wallet, error) {
	var out Wallet
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/wallet", Token: token}, &out)
	return out, err
}

// DepositMomo returns the MoMo page the user must be redirected to in
// order to top up the wallet.
func (c *Client) DepositMomo(ctx context.Context, token string, amount decimal.Decimal) (PayURL, error) {
	var out PayURL
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Path:   "/api/payment/deposit-momo",
		Token:  token,
		Query:  url.Values{"amount": {amount.String()}},
	}, &out)
	return out, err
}

// CreateMomo issues the MoMo payment page for an already created order.
func (c *Client) CreateMomo(ctx context.Context, token string, orderID int64) (PayURL, error) {
	var out PayURL
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/api/payment/create-momo/{id}",
		Path:   idPath("/api/payment/create-momo/%d", orderID),
		Token:  token,
	}, &out)
	return out, err
}
