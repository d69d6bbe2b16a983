package opencitations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"citefetch/internal/doi"
	"citefetch/internal/fetch"
)

const (
	// BaseURL is the COCI references endpoint base.
	BaseURL = "https://opencitations.net/index/coci/api/v1/references"

	// RateLimit caps outgoing requests per second.
	RateLimit = 5.0
)

// Client fetches citation edges from the OpenCitations index.
type Client struct {
	fetcher *fetch.Client
	baseURL string
	token   string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithToken sets the OpenCitations access token.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithFetcher sets a custom underlying fetcher.
func WithFetcher(f *fetch.Client) ClientOption {
	return func(c *Client) {
		c.fetcher = f
	}
}

// NewClient creates a new OpenCitations client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		fetcher: fetch.NewClient(fetch.WithRateLimit(RateLimit)),
		baseURL: BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// References fetches the reference edges of the given DOI. A non-success
// status or an empty edge list yields ErrNoReferences.
func (c *Client) References(ctx context.Context, rawDOI string) ([]CitationEdge, error) {
	d := doi.Normalize(rawDOI)

	header := http.Header{}
	header.Set("Accept", "application/json")
	if c.token != "" {
		header.Set("Authorization", c.token)
	}

	resp, err := c.fetcher.Get(ctx, c.baseURL+"/doi:"+d, header)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrNoReferences, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var edges []CitationEdge
	if err := json.Unmarshal(body, &edges); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(edges) == 0 {
		return nil, ErrNoReferences
	}
	return edges, nil
}

// ExtractCitedDOIs returns, for each edge, the first doi:-prefixed token
// of its cited-identifier bundle with the prefix stripped. Edges without
// such a token contribute nothing. Repeated DOIs across edges are kept:
// the result is one entry per citation edge, not a set.
func ExtractCitedDOIs(edges []CitationEdge) []string {
	dois := make([]string, 0, len(edges))
	for _, e := range edges {
		for _, tok := range strings.Fields(e.Cited) {
			if strings.HasPrefix(tok, "doi:") {
				dois = append(dois, strings.TrimPrefix(tok, "doi:"))
				break
			}
		}
	}
	return dois
}
