package backend

import (
	"context"
	"net/http"
)

func (c *Client) AdminSaveProduct(ctx context.Context, token string, id int64, in ProductInput) (Product, error) {
	r := request{Method: http.MethodPost, Path: "/api/admin/products", Token: token, Body: in}
	if id > 0 {
		r.Method = http.MethodPut
		r.Route = "/api/admin/products/{id}"
		r.Path = idPath("/api/admin/products/%d", id)
	}
	var out Product
	err := c.do(ctx, r, &out)
	return out, err
}

func (c *Client) AdminDeleteProduct(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{
		Method: http.MethodDelete,
		Route:  "/api/admin/products/{id}",
		Path:   idPath("/api/admin/products/%d", id),
		Token:  token,
	}, nil)
}

func (c *Client) AdminSaveCategory(ctx context.Context, token string, id int64, in CategoryInput) (Category, error) {
	r := request{Method: http.MethodPost, Path: "/api/admin/categories", Token: token, Body: in}
	if id > 0 {
		r.Method = http.MethodPut
		r.Route = "/api/admin/categories/{id}"
		r.Path = idPath("/api/admin/categories/%d", id)
	}
	var out Category
	err := c.do(ctx, r, &out)
	return out, err
}

func (c *Client) AdminDeleteCategory(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{
		Method: http.MethodDelete,
		Route:  "/api/admin/categories/{id}",
		Path:   idPath("/api/admin/categories/%d", id),
		Token:  token,
	}, nil)
}

func (c *Client) AdminListBanners(ctx context.Context, token string) ([]Banner, error) {
	var out []Banner
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/admin/banners", Token: token}, &out)
	return out, err
}

func (c *Client) AdminSaveBanner(ctx context.Context, token string, id int64, in BannerInput) (Banner, error) {
	r := request{Method: http.MethodPost, Path: "/api/admin/banners", Token: token, Body: in}
	if id > 0 {
		r.Method = http.MethodPut
		r.Route = "/api/admin/banners/{id}"
		r.Path = idPath("/api/admin/banners/%d", id)
	}
	var out Banner
	err := c.do(ctx, r, &out)
	return out, err
}

func (c *Client) AdminDeleteBanner(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{
		Method: http.MethodDelete,
		Route:  "/api/admin/banners/{id}",
		Path:   idPath("/api/admin/banners/%d", id),
		Token:  token,
	}, nil)
}
