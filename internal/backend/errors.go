package backend

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx answer from the scoring API.
type APIError struct {
	Endpoint string
	Status   int
	Detail   string
}

func (e *APIError) Error() string {
	return e.Detail
}

// String includes the endpoint and status for logs.
func (e *APIError) String() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Status, e.Detail)
}

// IsAPIError reports whether err carries a backend error response.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
