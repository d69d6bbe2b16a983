// Package fetch provides a rate-limited HTTP client that retries
// transient upstream failures with exponential backoff.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultMaxRetries is the number of additional attempts after the
	// first request.
	DefaultMaxRetries = 6

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// DefaultRateLimit caps outgoing requests per second.
	DefaultRateLimit = 5.0

	baseDelay = 750 * time.Millisecond
	maxJitter = 250 * time.Millisecond
)

// ErrNetworkError indicates every attempt failed at the transport level.
var ErrNetworkError = errors.New("network error")

// Client wraps an http.Client with rate limiting and retry on 429/503/504
// responses and transport errors.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the outgoing requests-per-second cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithMaxRetries sets the number of additional attempts after the first.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new retrying client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatus reports whether a status indicates a transient
// upstream condition worth retrying.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusServiceUnavailable ||
		code == http.StatusGatewayTimeout
}

// Get issues a GET for url with the given header. A response with a
// non-retryable status is returned as-is; callers interpret 2xx/4xx/5xx
// themselves. When retries are exhausted on a retryable status the last
// unsuccessful response is returned with a nil error; when every attempt
// failed at the transport level an ErrNetworkError is returned.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	var retryAfter string
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, backoffDelay(attempt-1, retryAfter)); err != nil {
				return nil, err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			retryAfter = ""
			continue
		}
		if !retryableStatus(resp.StatusCode) || attempt == c.maxRetries {
			return resp, nil
		}

		retryAfter = resp.Header.Get("Retry-After")
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = nil
	}

	return nil, fmt.Errorf("%w: %v", ErrNetworkError, lastErr)
}

// backoffDelay computes the wait before retry number attempt (0-based).
// A parseable non-negative Retry-After header wins over exponential
// backoff; 0-250ms of jitter is added either way.
func backoffDelay(attempt int, retryAfter string) time.Duration {
	delay := baseDelay << attempt
	if retryAfter != "" {
		if secs, err := strconv.ParseFloat(retryAfter, 64); err == nil && secs >= 0 {
			delay = time.Duration(secs * float64(time.Second))
		}
	}
	return delay + time.Duration(rand.Int63n(int64(maxJitter)))
}

// sleepCtx sleeps for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
