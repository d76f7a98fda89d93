package merge

import "fmt"

// APIError is a non-2xx response from the Merge API. The body is kept
// verbatim; there is no retry, a failed request aborts the whole fetch.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("merge api error %d: %s", e.StatusCode, e.Body)
}
