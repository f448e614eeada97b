package rest

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/domain"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/core/port"
	"github.com/GaneshaNHotti/Satellite-Tracker/internal/infra/telemetry"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-ID"

	// maxJitter is the upper bound of the random delay added to each backoff
	// step so parallel callers don't retry in lockstep after a shared outage.
	maxJitter = time.Second
)

// RetryPolicy bounds the transport's retry behavior. MaxAttempts includes the
// first attempt; BaseDelay seeds the exponential backoff.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 500 * time.Millisecond
	}
	return p
}

// Client executes logical requests against the remote API with bearer
// authentication and transient-failure resilience. Retryable failures are
// re-attempted with jittered exponential backoff; everything else surfaces
// immediately as a classified *domain.APIError.
type Client struct {
	exec     port.RequestExecutor
	sessions port.SessionSource
	policy   RetryPolicy
	log      *zap.Logger
	metrics  *telemetry.Metrics

	now    func() time.Time
	jitter func() time.Duration
	wait   func(ctx context.Context, d time.Duration) error
}

// NewClient builds a resilient client over the supplied executor and session
// source.
func NewClient(exec port.RequestExecutor, sessions port.SessionSource, policy RetryPolicy, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		exec:     exec,
		sessions: sessions,
		policy:   policy.normalized(),
		log:      log,
		now:      time.Now,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(maxJitter)))
		},
		wait: waitContext,
	}
}

// WithMetrics attaches transport collectors.
func (c *Client) WithMetrics(m *telemetry.Metrics) *Client {
	c.metrics = m
	return c
}

// Execute runs one logical request. Attempts are strictly sequential: attempt
// N+1 never starts before attempt N's outcome is known and the backoff delay
// has elapsed. When attempts are exhausted the last observed classified error
// is returned, never a generic timeout.
func (c *Client) Execute(ctx context.Context, req port.Request) (*port.Response, error) {
	var (
		lastErr     *domain.APIError
		invalidated bool
	)

	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		c.metrics.ObserveAttempt(req.Method)

		resp, err := c.exec.Do(ctx, c.prepare(req))
		switch {
		case err != nil:
			lastErr = &domain.APIError{
				Kind:    domain.KindNetwork,
				Message: "no response from service",
				Err:     err,
			}
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		default:
			kind := domain.ClassifyStatus(resp.StatusCode)
			lastErr = &domain.APIError{
				Kind:       kind,
				StatusCode: resp.StatusCode,
				Message:    errorMessageFrom(resp.Body),
			}
			if kind == domain.KindAuthExpired && !invalidated {
				// Invalidate eagerly so concurrent calls stop attaching
				// a dead token, and only once per Execute.
				c.sessions.Invalidate()
				invalidated = true
			}
		}

		if !lastErr.Retryable() || attempt == c.policy.MaxAttempts-1 {
			break
		}

		delay := c.policy.BaseDelay<<uint(attempt) + c.jitter()
		c.metrics.ObserveRetry(string(lastErr.Kind))
		c.log.Debug("retrying request",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.String("kind", string(lastErr.Kind)),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
		)
		if err := c.wait(ctx, delay); err != nil {
			lastErr.Err = err
			break
		}
	}

	c.metrics.ObserveError(string(lastErr.Kind))
	c.log.Warn("request failed",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("kind", string(lastErr.Kind)),
		zap.Int("status", lastErr.StatusCode),
	)
	return nil, lastErr
}

// ExecuteWithReauth runs the request and, when it fails with an expired
// authentication, invokes reauth exactly once and repeats the request. This
// bounds 401-triggered re-authentication to a single attempt.
func (c *Client) ExecuteWithReauth(ctx context.Context, req port.Request, reauth func(context.Context) error) (*port.Response, error) {
	resp, err := c.Execute(ctx, req)
	if err == nil || reauth == nil {
		return resp, err
	}
	if kind, ok := domain.ErrorKindOf(err); !ok || kind != domain.KindAuthExpired {
		return resp, err
	}
	if rerr := reauth(ctx); rerr != nil {
		return nil, err
	}
	return c.Execute(ctx, req)
}

// prepare clones the request headers, attaching the bearer token while the
// session is valid and a correlation id when the caller did not set one.
func (c *Client) prepare(req port.Request) port.Request {
	headers := make(map[string]string, len(req.Headers)+2)
	for k, v := range req.Headers {
		headers[k] = v
	}
	if token, ok := c.sessions.Token(c.now()); ok {
		headers[authorizationHeader] = "Bearer " + token
	}
	if _, ok := headers[requestIDHeader]; !ok {
		headers[requestIDHeader] = uuid.NewString()
	}
	req.Headers = headers
	return req
}

// errorMessageFrom pulls a human-readable message out of an error payload
// after classification has already happened; a payload of any other shape
// just yields an empty message.
func errorMessageFrom(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Message
}

func waitContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
