package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) GetCart(ctx context.Context, token string) (Cart, error) {
	var out Cart
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/cart", Token: token}, &out)
	return out, err
}

func (c *Client) AddToCart(ctx context.Context, token string, productID int64, qty int) error {
	return c.do(ctx, request{
		Method: http.MethodPost,
		Path:   "/api/cart",
		Token:  token,
		Body: map[string]any{
			"productId": productID,
			"quantity":  qty,
		},
	}, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, token string, itemID int64, qty int) error {
	return c.do(ctx, request{
		Method: http.MethodPut,
		Route:  "/api/cart/{id}",
		Path:   idPath("/api/cart/%d", itemID),
		Token:  token,
		Query:  url.Values{"quantity": {strconv.Itoa(qty)}},
	}, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, token string, itemID int64) error {
	return c.do(ctx, request{
		Method: http.MethodDelete,
		Route:  "/api/cart/{id}",
		Path:   idPath("/api/cart/%d", itemID),
		Token:  token,
	}, nil)
}
