// Package upstream wraps the backend API consumed by the BFF. Every call
// returns an explicit Result so handlers decide on both branches instead
// of relying on error propagation for control flow.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Haipriority/tasksie/internal/infra/httpclient"
)

const maxResponseBytes = 1 << 20

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.New(timeout),
		log:     log,
	}
}

// Result is the upstream status and raw body. Proxy handlers forward both
// to the browser verbatim.
type Result struct {
	Status int
	Body   []byte
}

func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Token extracts the issued credential from an auth response. The
// canonical field is access_token; token and jwt are accepted as a
// compatibility shim for older upstream deployments.
func (r Result) Token() string {
	var body struct {
		AccessToken string `json:"access_token"`
		Token       string `json:"token"`
		JWT         string `json:"jwt"`
	}
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return ""
	}
	switch {
	case body.AccessToken != "":
		return body.AccessToken
	case body.Token != "":
		return body.Token
	default:
		return body.JWT
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (Result, error) {
	payload := map[string]string{"email": email, "password": password}
	return c.postJSON(ctx, "/auth/login", payload)
}

func (c *Client) Register(ctx context.Context, name, email, password string) (Result, error) {
	payload := map[string]string{"email": email, "password": password}
	if name != "" {
		payload["name"] = name
	}
	return c.postJSON(ctx, "/auth/register", payload)
}

func (c *Client) Me(ctx context.Context, token string) (Result, error) {
	return c.do(ctx, http.MethodGet, "/auth/me", token, nil, nil)
}

// Forward relays a proxied request to the upstream API with the bearer
// token attached.
func (c *Client) Forward(ctx context.Context, method, path, token string, body io.Reader, query url.Values) (Result, error) {
	return c.do(ctx, method, path, token, body, query)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (Result, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("marshal %s payload: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, "", bytes.NewReader(data), nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, query url.Values) (Result, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return Result{}, fmt.Errorf("build upstream request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", requestID(ctx))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call upstream %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read upstream response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("upstream_call",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
	}

	return Result{Status: resp.StatusCode, Body: data}, nil
}

func requestID(ctx context.Context) string {
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
