// Package httpx provides the HTTP plumbing shared by the check adapters.
//
// It wraps net/http with the behaviors every polling check wants: pooled
// connections sized for repeated requests to a small set of hosts,
// per-request timeouts applied via context, and a response body cap so a
// misbehaving endpoint cannot exhaust memory. Checks stay focused on
// interpreting the response.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxBodySize = 1 << 20 // 1MB

// connection pooling limits for long-lived polling against a few hosts
const (
	defaultMaxIdleConns        = 20
	defaultMaxIdleConnsPerHost = 4
	defaultMaxConnsPerHost     = 4
	defaultIdleConnTimeout     = 60 * time.Second
)

// Response holds the result of a request made by [Client.Get].
type Response struct {
	// Body is the response body, capped at 1MB.
	Body []byte

	// StatusCode is the HTTP status code. Zero if the request failed
	// before receiving a response.
	StatusCode int
}

// Client is an HTTP client tuned for repeated polling requests.
//
// Timeouts are applied per-request via context rather than a global client
// timeout, so different waits can poll the same client with different
// budgets.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a polling [Client] with pooled connections.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// Get issues a GET request and returns the capped body and status code.
//
// The timeout bounds this single request; zero means the context's own
// deadline (if any) applies. Transport-level failures are returned as
// errors; a non-2xx status is not an error here — the caller decides what
// it means.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string, timeout time.Duration) (Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("failed to read response body: %w", err)
	}

	return Response{Body: body, StatusCode: resp.StatusCode}, nil
}

// Close releases idle connections in the client's pool. The client remains
// usable afterwards; new connections are established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
