// Package doiorg resolves bibliographic representations of a DOI via
// doi.org content negotiation.
package doiorg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"citefetch/internal/csl"
	"citefetch/internal/doi"
	"citefetch/internal/fetch"
)

const (
	// BaseURL is the DOI content-negotiation resolver.
	BaseURL = "https://doi.org"

	// RateLimit caps outgoing requests per second. Kept low because
	// the resolver proxies to registration agencies that rate-limit
	// aggressively.
	RateLimit = 3.0

	// MIMECSLJSON selects a CSL-JSON metadata record.
	MIMECSLJSON = "application/vnd.citationstyles.csl+json"

	// MIMEBibTeX selects a BibTeX rendering.
	MIMEBibTeX = "application/x-bibtex"

	// MIMERIS selects an RIS rendering.
	MIMERIS = "application/x-research-info-systems"
)

// Client fetches DOI representations through content negotiation.
type Client struct {
	fetcher   *fetch.Client
	baseURL   string
	userAgent string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (for testing or a proxy path).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithFetcher sets a custom underlying fetcher.
func WithFetcher(f *fetch.Client) ClientOption {
	return func(c *Client) {
		c.fetcher = f
	}
}

// WithUserAgent sets the User-Agent sent to the resolver. Crossref asks
// polite clients to include a mailto address.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new DOI resolver client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{baseURL: BaseURL}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		fopts := []fetch.Option{fetch.WithRateLimit(RateLimit)}
		if c.userAgent != "" {
			fopts = append(fopts, fetch.WithUserAgent(c.userAgent))
		}
		c.fetcher = fetch.NewClient(fopts...)
	}
	return c
}

// FetchCSL fetches the CSL-JSON metadata record for a DOI.
func (c *Client) FetchCSL(ctx context.Context, rawDOI string) (*csl.Record, error) {
	body, err := c.negotiate(ctx, rawDOI, MIMECSLJSON)
	if err != nil {
		return nil, err
	}
	var rec csl.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &rec, nil
}

// FetchTitle fetches just the title of a DOI, for display.
func (c *Client) FetchTitle(ctx context.Context, rawDOI string) (string, error) {
	rec, err := c.FetchCSL(ctx, rawDOI)
	if err != nil {
		return "", err
	}
	return rec.Title, nil
}

// FetchFormat fetches the representation of a DOI under the given MIME
// type, returned verbatim.
func (c *Client) FetchFormat(ctx context.Context, rawDOI, mime string) (string, error) {
	body, err := c.negotiate(ctx, rawDOI, mime)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchBibliography renders a DOI as bibliography text under a named
// citation style.
func (c *Client) FetchBibliography(ctx context.Context, rawDOI, styleID string) (string, error) {
	accept := fmt.Sprintf("text/x-bibliography; style=%s; locale=en-US", styleID)
	body, err := c.negotiate(ctx, rawDOI, accept)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) negotiate(ctx context.Context, rawDOI, accept string) ([]byte, error) {
	d := doi.Normalize(rawDOI)

	header := http.Header{}
	header.Set("Accept", accept)

	resp, err := c.fetcher.Get(ctx, c.baseURL+"/"+d, header)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, DOI: d}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
