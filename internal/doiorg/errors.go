package doiorg

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse indicates an unexpected response shape from the
// DOI resolver.
var ErrInvalidResponse = errors.New("invalid response from DOI resolver")

// APIError represents a non-success response from the DOI resolver.
type APIError struct {
	StatusCode int
	DOI        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("DOI resolver error (status %d) for %s", e.StatusCode, e.DOI)
}

// IsNotFound returns true if the error indicates the DOI is unknown to
// the resolver.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
