package httpexec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/port"
)

// Executor is the net/http implementation of port.RequestExecutor. It owns
// transport framing only: URL assembly, JSON encoding and response draining.
// Retry, classification and authentication live above it.
type Executor struct {
	baseURL string
	client  *http.Client
}

// New constructs an executor for the supplied service base URL.
func New(baseURL string, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Executor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Do performs a single request attempt. A non-nil error means no response was
// obtained; protocol failures are reported through the status code.
func (e *Executor) Do(ctx context.Context, req port.Request) (*port.Response, error) {
	target := e.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &port.Response{StatusCode: httpResp.StatusCode, Body: payload}, nil
}
