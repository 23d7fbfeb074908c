package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"DonationsTracker/internal/ports"
	"DonationsTracker/internal/source"
)

const userAgent = "DonationsTracker/1.0"

// Client implements ports.Fetcher over net/http. Transport failures and
// non-2xx responses surface as *source.NetworkError so adapters stay agnostic
// of HTTP details.
type Client struct {
	http *http.Client
}

var _ ports.Fetcher = (*Client)(nil)

// New builds a client with the given overall request timeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// NewWithClient wraps an existing http.Client (tests, caching transports).
func NewWithClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		return New(0)
	}
	return &Client{http: httpClient}
}

// Fetch issues one GET and returns the whole payload.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &source.NetworkError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &source.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &source.NetworkError{URL: url, Err: fmt.Errorf("upstream returned %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &source.NetworkError{URL: url, Err: err}
	}

	return body, nil
}
