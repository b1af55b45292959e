package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations
var (
	// ErrServerOffline indicates the catalog service is unreachable
	ErrServerOffline = errors.New("catalog service is unreachable")

	// ErrNotFound indicates the requested page or show does not exist
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the catalog kept rejecting requests with 429
	ErrRateLimited = errors.New("rate limited by catalog service")

	// ErrEmptyQuery indicates a search was attempted without any text
	ErrEmptyQuery = errors.New("search query is empty")
)

// StatusError is returned for unexpected HTTP statuses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// TransportError wraps a failed catalog call. It is the only error kind the
// store surfaces; the wrapped error is whatever the client returned.
type TransportError struct {
	Op  string // store action or sub-fetch that failed
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
