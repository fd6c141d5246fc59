// Package fetch provides the HTTP client shared by the page-scraping
// adapters. It classifies response status into the pipeline error
// taxonomy so callers never look at raw status codes: 404 becomes
// NotFoundError, 429 becomes RateLimitedError (honouring Retry-After),
// transport failures, timeouts and 5xx become TransientFetchError.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pranav-iyer/relscribe/core"
)

const (
	// DefaultTimeout bounds every request when the caller does not
	// configure one.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the scraper to upstream sites.
	DefaultUserAgent = "relscribe/1.0 (+https://github.com/pranav-iyer/relscribe)"
)

// Client fetches pages via HTTP with scraping defaults.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client. Zero values fall back to package defaults.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get retrieves url and returns the response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts and connection failures are transient by contract.
		return nil, &core.TransientFetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &core.NotFoundError{Identifier: url}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &core.RateLimitedError{RetryAfter: retryAfter(resp)}
	case resp.StatusCode >= 500:
		return nil, &core.TransientFetchError{URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.TransientFetchError{URL: url, Err: err}
	}
	return body, nil
}

// retryAfter parses the Retry-After header, seconds form only.
func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
