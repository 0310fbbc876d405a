package crawler

import (
	"fmt"
	"net/http"
)

// HTTPError is a fetch that completed with a non-success status. The target
// is dropped and logged; it never aborts the crawl.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// NetworkError is a transport-level fetch failure: DNS resolution,
// connection refused, or timeout.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure for %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
