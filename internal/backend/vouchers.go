package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// CheckVoucher asks the backend whether code is usable for total and how
// much it takes off.
func (c *Client) CheckVoucher(ctx context.Context, token, code string, total decimal.Decimal) (VoucherCheck, error) {
	var out VoucherCheck
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Path:   "/api/vouchers/check",
		Token:  token,
		Query: url.Values{
			"code":  {code},
			"total": {total.String()},
		},
	}, &out)
	if err == nil && out.Code == "" {
		out.Code = code
	}
	return out, err
}

func (c *Client) AdminListVouchers(ctx context.Context, token string) ([]Voucher, error) {
	var out []Voucher
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/admin/vouchers", Token: token}, &out)
	return out, err
}

func (c *Client) AdminSaveVoucher(ctx context.Context, token string, v Voucher) (Voucher, error) {
	r := request{Method: http.MethodPost, Path: "/api/admin/vouchers", Token: token, Body: v}
	if v.ID > 0 {
		r.Method = http.MethodPut
		r.Route = "/api/admin/vouchers/{id}"
		r.Path = idPath("/api/admin/vouchers/%d", v.ID)
	}
	var out Voucher
	err := c.do(ctx, r, &out)
	return out, err
}

func (c *Client) AdminDeleteVoucher(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{
		Method: http.MethodDelete,
		Route:  "/api/admin/vouchers/{id}",
		Path:   idPath("/api/admin/vouchers/%d", id),
		Token:  token,
	}, nil)
}
