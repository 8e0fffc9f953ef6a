package backend

import (
	"context"
	"net/http"
)

func (c *Client) ListWishlist(ctx context.Context, token string) ([]WishlistItem, error) {
	var out []WishlistItem
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/wishlist", Token: token}, &out)
	return out, err
}

func (c *Client) ToggleWishlist(ctx context.Context, token string, productID int64) (WishlistState, error) {
	var out WishlistState
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Route:  "/api/wishlist/toggle/{id}",
		Path:   idPath("/api/wishlist/toggle/%d", productID),
		Token:  token,
	}, &out)
	return out, err
}

func (c *Client) CheckWishlist(ctx context.Context, token string, productID int64) (WishlistState, error) {
	var out WishlistState
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/api/wishlist/check/{id}",
		Path:   idPath("/api/wishlist/check/%d", productID),
		Token:  token,
	}, &out)
	return out, err
}

func (c *Client) CreateReview(ctx context.Context, token string, in ReviewInput) (Review, error) {
	var out Review
	err := c.do(ctx, request{Method: http.MethodPost, Path: "/api/reviews", Token: token, Body: in}, &out)
	return out, err
}

func (c *Client) ListReviews(ctx context.Context, productID int64) ([]Review, error) {
	var out []Review
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/api/reviews/product/{id}",
		Path:   idPath("/api/reviews/product/%d", productID),
	}, &out)
	return out, err
}

func (c *Client) GetProfile(ctx context.Context, token string) (User, error) {
	var out User
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/users/profile", Token: token}, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, in ProfileInput) (User, error) {
	var out User
	err := c.do(ctx, request{Method: http.MethodPut, Path: "/api/users/profile", Token: token, Body: in}, &out)
	return out, err
}
