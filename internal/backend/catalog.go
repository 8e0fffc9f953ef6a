package backend

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (Page[Product], error) {
	query := pageQuery(q.Page, q.Size)
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		query.Set("keyword", kw)
	}
	if q.CategoryID > 0 {
		query.Set("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}

	var out Page[Product]
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/products", Query: query}, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id int64) (Product, error) {
	var out Product
	err := c.do(ctx, request{
		Method: http.MethodGet,
		Route:  "/api/products/{id}",
		Path:   idPath("/api/products/%d", id),
	}, &out)
	return out, err
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/categories"}, &out)
	return out, err
}

func (c *Client) ListBanners(ctx context.Context) ([]Banner, error) {
	var out []Banner
	err := c.do(ctx, request{Method: http.MethodGet, Path: "/api/banners"}, &out)
	return out, err
}
