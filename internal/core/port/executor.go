package port

import (
	"context"
	"net/url"
)

// Request describes one logical call against the remote API. The executor
// owns transport framing; the core only fills in this descriptor.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Headers carries per-request headers such as the bearer token and the
	// correlation identifier. Nil is treated as empty.
	Headers map[string]string
}

// Response is the raw outcome of an executed request.
type Response struct {
	StatusCode int
	Body       []byte
}

// RequestExecutor performs a single request attempt. A non-nil error means no
// response was obtained at all (DNS/connection failure); protocol-level
// failures are reported through Response.StatusCode instead.
type RequestExecutor interface {
	Do(ctx context.Context, req Request) (*Response, error)
}
