package backend

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Login(ctx context.Context, identifier, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, request{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body: map[string]string{
			"username": identifier,
			"password": password,
		},
	}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, request{Method: http.MethodPost, Path: "/api/auth/register", Body: in}, &out)
	return out, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, request{
		Method: http.MethodPost,
		Path:   "/api/auth/forgot-password",
		Body:   map[string]string{"email": email},
	}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, request{
		Method: http.MethodPost,
		Path:   "/api/auth/reset-password",
		Body:   map[string]string{"token": token, "newPassword": newPassword},
	}, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.do(ctx, request{
		Method: http.MethodGet,
		Path:   "/api/auth/verify",
		Query:  url.Values{"token": {token}},
	}, nil)
}
