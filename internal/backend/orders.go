package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// CreateOrder posts the checkout payload as query parameters, the way the
// backend's order endpoint expects it.
func (c *Client) CreateOrder(ctx context.Context, token string, in CreateOrderInput) (Order, error) {
	q := url.Values{}
	q.Set("fullName", in.FullName)
	q.Set("phone", in.Phone)
	q.Set("address", in.Address)
	q.Set("paymentMethod", in.PaymentMethod)
	if in.Email != "" {
		q.Set("email", in.Email)
	}
	if in.Note != "" {
		q.Set("note", in.Note)
	}
	if in.VoucherCode != "" {
		q.Set("voucherCode", in.VoucherCode)
	}

	var out Order
	err := c.do(ctx, request{Method: http.MethodPost, Path: "/api/orders", Token: token, Query: q}, &out)
	return out, err
}

func (c *Client) ListOrders(ctx context.Context, token string, page, size int) (Page[Order], error) {
	var out Page[Order]
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Path:   "/api/orders",
		Token:  token,
		Query:  pageQuery(page, size),
	}, &out)
	return out, err
}

func (c *Client) GetOrderByCode(ctx context.Context, token, code string) (Order, error) {
	var out Order
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/api/orders/code/{code}",
		Path:   "/api/orders/code/" + url.PathEscape(code),
		Token:  token,
	}, &out)
	return out, err
}

func (c *Client) RequestCancel(ctx context.Context, token string, orderID int64) (Order, error) {
	var out Order
	err := c.do(ctx, request{
		Method: http.MethodPut,
		Route:  "/api/orders/{id}/cancel",
		Path:   idPath("/api/orders/%d/cancel", orderID),
		Token:  token,
	}, &out)
	return out, err
}

func (c *Client) AdminListOrders(ctx context.Context, token, status string, page, size int) (Page[Order], error) {
	q := pageQuery(page, size)
	if s := strings.TrimSpace(status); s != "" {
		q.Set("status", s)
	}
	var out Page[Order]
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/admin/orders", Token: token, Query: q}, &out)
	return out, err
}

func (c *Client) AdminGetOrder(ctx context.Context, token string, id int64) (Order, error) {
	var out Order
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/api/admin/orders/{id}",
		Path:   idPath("/api/admin/orders/%d", id),
		Token:  token,
	}, &out)
	return out, err
}

// AdminUpdateOrderStatus passes the new status as a query parameter.
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, token string, id int64, status string) (Order, error) {
	var out Order
	err := c.do(ctx, request{
		Method: http.MethodPut,
		Route:  "/api/admin/orders/{id}/status",
		Path:   idPath("/api/admin/orders/%d/status", id),
		Token:  token,
		Query:  url.Values{"status": {status}},
	}, &out)
	return out, err
}
