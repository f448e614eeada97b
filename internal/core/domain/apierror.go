package domain

import (
	"errors"
	"fmt"
)

// ErrorKind partitions request failures into the classes the client reacts to.
type ErrorKind string

const (
	// KindNetwork covers transport failures where no response was obtained.
	KindNetwork ErrorKind = "network"
	// KindServer covers 5xx responses.
	KindServer ErrorKind = "server"
	// KindRateLimited covers 429 responses.
	KindRateLimited ErrorKind = "rate_limited"
	// KindClient covers 4xx responses other than 401/404/422/429.
	KindClient ErrorKind = "client"
	// KindAuthExpired covers 401 responses; it triggers session invalidation.
	KindAuthExpired ErrorKind = "auth_expired"
	// KindValidation covers 422 responses (e.g. passes without a saved location).
	KindValidation ErrorKind = "validation"
	// KindNotFound covers 404 responses on collection endpoints.
	KindNotFound ErrorKind = "not_found"
)

// APIError is the classified form of any request failure surfaced by the
// transport. Classification depends only on the status code (or its absence),
// never on the response payload shape.
type APIError struct {
	Kind       ErrorKind
	StatusCode int // 0 when no response was obtained
	Message    string
	Err        error
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (%s)", e.Message, e.Kind)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("api: status %d (%s)", e.StatusCode, e.Kind)
	}
	return fmt.Sprintf("api: request failed (%s)", e.Kind)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the request may succeed.
// Client-caused failures cannot succeed by repetition and are excluded.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindServer, KindRateLimited:
		return true
	default:
		return false
	}
}

// ClassifyStatus maps a response status code onto an error kind.
// It must only be called for non-2xx codes.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == 401:
		return KindAuthExpired
	case status == 404:
		return KindNotFound
	case status == 422:
		return KindValidation
	case status == 429:
		return KindRateLimited
	case status >= 500 && status <= 599:
		return KindServer
	case status >= 400 && status <= 499:
		return KindClient
	default:
		return KindServer
	}
}

// ErrorKindOf extracts the classified kind from an error chain, returning
// false when the error did not originate from the transport.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}
