package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const (
	maxErrorBody = 64 * 1024

	msgUnreachable = "Không thể kết nối tới máy chủ. Vui lòng thử lại sau."
)

// Client talks to the shop backend REST API. Every call except the auth
// endpoints carries the caller's bearer token.
type Client struct {
	baseURL string
	hc      *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// request describes one backend call. Route is the path template used as
// the metrics label so ids do not explode label cardinality.
type request struct {
	Method string
	Route  string
	Path   string
	Token  string
	Query  url.Values
	Body   any
}

// StatusError carries the raw remote failure for logs.
type StatusError struct {
	Status int
	Method string
	Path   string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	u := c.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return apperr.Wrap(fmt.Errorf("encode %s: %w", r.Path, err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return apperr.Wrap(err)
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	route := r.Route
	if route == "" {
		route = r.Path
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observe(r.Method, route, "error", time.Since(start))
		c.logger.ErrorContext(ctx, "backend_call_failed",
			slog.String("method", r.Method),
			slog.String("path", r.Path),
			slog.Any("err", err),
		)
		return apperr.UnavailableErr(msgUnreachable, err)
	}
	defer resp.Body.Close()

	observe(r.Method, route, strconv.Itoa(resp.StatusCode), time.Since(start))
	c.logger.DebugContext(ctx, "backend_call",
		slog.String("method", r.Method),
		slog.String("path", r.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= 300 {
		return decodeError(r, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return apperr.Wrap(fmt.Errorf("decode %s %s: %w", r.Method, r.Path, err))
	}
	return nil
}

func decodeError(r request, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	se := &StatusError{Status: resp.StatusCode, Method: r.Method, Path: r.Path, Body: string(raw)}

	return &apperr.AppError{
		Kind:      apperr.FromStatus(resp.StatusCode),
		PublicMsg: ServerMessage(raw),
		Fields:    serverFields(raw),
		Err:       se,
	}
}

// ServerMessage extracts the human readable message from an error body:
// a JSON "message" or "error" field, or a short plain-text body. Empty when
// nothing usable was sent.
func ServerMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '{' {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return ""
		}
		if m := strings.TrimSpace(payload.Message); m != "" {
			return m
		}
		return strings.TrimSpace(payload.Error)
	}
	if trimmed[0] == '<' || len(trimmed) > 300 {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return string(trimmed)
}

func serverFields(raw []byte) map[string]string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(trimmed, &payload); err != nil || len(payload.Errors) == 0 {
		return nil
	}
	return payload.Errors
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return q
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
