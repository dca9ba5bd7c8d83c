package kaggle

import (
	"errors"
	"fmt"
)

// Sentinel errors for client operations.
var (
	// ErrMissingCredentials indicates no API credentials could be resolved.
	ErrMissingCredentials = errors.New("kaggle: missing credentials")

	// ErrEmptyIdentifier indicates a required identifier argument was empty.
	ErrEmptyIdentifier = errors.New("kaggle: empty identifier")
)

// StatusError reports a non-2xx response from the Kaggle API.
type StatusError struct {
	// Op is the API operation, e.g. "competitions/list".
	Op string

	// Code is the HTTP status code.
	Code int

	// Status is the HTTP status line, e.g. "401 Unauthorized".
	Status string
}

// Error returns the API operation and status line. It never includes request
// bodies, credentials, or local file paths.
func (e *StatusError) Error() string {
	return fmt.Sprintf("kaggle: %s: %s", e.Op, e.Status)
}

// StatusCode returns the HTTP status code of the failed response.
func (e *StatusError) StatusCode() int {
	return e.Code
}
