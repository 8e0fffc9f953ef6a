// Package geo reads Vietnam's province / district / ward tree from the
// public provinces API used by the checkout address form.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const msgUnavailable = "Không tải được danh sách địa giới hành chính."

type Division struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

type provinceDetail struct {
	Division
	Districts []Division `json:"districts"`
}

type districtDetail struct {
	Division
	Wards []Division `json:"wards"`
}

type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) Provinces(ctx context.Context) ([]Division, error) {
	var out []Division
	if err := c.get(ctx, "/api/p/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Districts(ctx context.Context, provinceCode int) ([]Division, error) {
	var out provinceDetail
	if err := c.get(ctx, fmt.Sprintf("/api/p/%d?depth=2", provinceCode), &out); err != nil {
		return nil, err
	}
	return out.Districts, nil
}

func (c *Client) Wards(ctx context.Context, districtCode int) ([]Division, error) {
	var out districtDetail
	if err := c.get(ctx, fmt.Sprintf("/api/d/%d?depth=2", districtCode), &out); err != nil {
		return nil, err
	}
	return out.Wards, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperr.Wrap(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return apperr.UnavailableErr(msgUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperr.NotFoundErr("Không tìm thấy địa giới hành chính.")
	}
	if resp.StatusCode >= 300 {
		return apperr.UnavailableErr(msgUnavailable, fmt.Errorf("geo %s: status %d", path, resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.UnavailableErr(msgUnavailable, fmt.Errorf("geo %s: %w", path, err))
	}
	return nil
}
