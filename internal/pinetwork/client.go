// Package pinetwork is a thin HTTP client for the Pi payment network's
// server-side platform API. Only the two calls the payment lifecycle needs
// are implemented: approving a payment and completing it with a transaction
// identifier.
package pinetwork

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	dErrors "polydom/pkg/domain-errors"
)

const defaultTimeout = 10 * time.Second

// Client calls the platform API on behalf of the configured app.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New constructs a Client for the given API base URL and server API key.
func New(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Approve acknowledges a payment on the network, unblocking the user's
// transaction submission.
func (c *Client) Approve(ctx context.Context, externalPaymentID string) error {
	return c.post(ctx, fmt.Sprintf("/v2/payments/%s/approve", externalPaymentID), nil)
}

// Complete confirms a payment on the network with the transaction that
// settled it.
func (c *Client) Complete(ctx context.Context, externalPaymentID, txid string) error {
	return c.post(ctx, fmt.Sprintf("/v2/payments/%s/complete", externalPaymentID), map[string]string{"txid": txid})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "encoding platform API request")
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "building platform API request")
	}
	req.Header.Set("Authorization", "Key "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failures are indeterminate: the network may or may not
		// have applied the call.
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "platform API unreachable")
	}
	defer resp.Body.Close()

	c.logger.InfoContext(ctx, "platform API call",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500:
		return dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("platform API returned %d", resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return dErrors.New(dErrors.CodeNotFound, "payment not found on network")
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("platform API rejected request: %d %s", resp.StatusCode, bytes.TrimSpace(detail)))
	}
}
