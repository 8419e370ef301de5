package ports

import "net/http"

// HTTPClient is the transport used for gateway dispatches.
// Satisfied by *http.Client; swapped for a stub in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
