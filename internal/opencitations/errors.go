package opencitations

import "errors"

// Common errors returned by the client.
var (
	// ErrNoReferences indicates the API returned no reference edges for
	// the DOI, either as an empty list or a non-success status.
	ErrNoReferences = errors.New("no references found")

	// ErrInvalidResponse indicates an unexpected API response shape.
	ErrInvalidResponse = errors.New("invalid response from citation-graph API")
)
