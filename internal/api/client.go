// Package api is the authenticated client for the remote WeatherSafe REST
// API. It owns request construction, bearer-token attachment, the error
// taxonomy, and session invalidation on authentication failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/api/metrics"
)

// TokenSource exposes the slice of the session store the client needs: the
// current token, and invalidation when the server reports it dead.
type TokenSource interface {
	Token() string
	Clear(ctx context.Context)
}

// Client performs HTTP calls against baseURL with the current bearer token
// attached. Calls are independent: no retry, no queuing, no shared deadline.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

func NewClient(baseURL string, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     log,
	}
}

// do sends one request and decodes a 2xx JSON body into out (skipped when out
// is nil). Non-2xx responses come back as *Error. On an auth failure the
// session is cleared before the error is returned, so no later call can go
// out with the dead token.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Public endpoints (login, register) go out without a token; the server
	// decides what is reachable.
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "network_error").Inc()
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "network_error").Inc()
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := resolveError(resp.StatusCode, raw)
		metrics.RequestsTotal.WithLabelValues(method, apiErr.Kind.String()).Inc()
		if apiErr.Kind == KindAuth {
			c.log.Warn().Int("status", resp.StatusCode).Str("path", path).
				Msg("authentication failure, invalidating session")
			c.tokens.Clear(ctx)
		}
		return apiErr
	}

	metrics.RequestsTotal.WithLabelValues(method, "ok").Inc()

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
