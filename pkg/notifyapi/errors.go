package notifyapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRequestFailed   = errors.New("notifyapi: request failed")
	ErrInvalidResponse = errors.New("notifyapi: invalid response")
	ErrMissingToken    = errors.New("notifyapi: bearer token unavailable")
	ErrInvalidBaseURL  = errors.New("notifyapi: invalid base url")
)

// APIError is a response the server rejected, either by status code or by
// success:false in the envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notifyapi: status %d: %s", e.StatusCode, e.Message)
}

// Unauthorized reports whether the server rejected the credential.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
