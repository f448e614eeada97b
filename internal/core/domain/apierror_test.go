package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorKind
	}{
		{400, KindClient},
		{401, KindAuthExpired},
		{403, KindClient},
		{404, KindNotFound},
		{422, KindValidation},
		{429, KindRateLimited},
		{500, KindServer},
		{502, KindServer},
		{503, KindServer},
		{599, KindServer},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("status_%d", tc.status), func(t *testing.T) {
			if got := ClassifyStatus(tc.status); got != tc.want {
				t.Fatalf("ClassifyStatus(%d) = %s, want %s", tc.status, got, tc.want)
			}
		})
	}
}

func TestAPIErrorRetryable(t *testing.T) {
	retryable := []ErrorKind{KindNetwork, KindServer, KindRateLimited}
	for _, kind := range retryable {
		err := &APIError{Kind: kind}
		if !err.Retryable() {
			t.Fatalf("expected %s to be retryable", kind)
		}
	}

	terminal := []ErrorKind{KindClient, KindAuthExpired, KindValidation, KindNotFound}
	for _, kind := range terminal {
		err := &APIError{Kind: kind}
		if err.Retryable() {
			t.Fatalf("expected %s to be terminal", kind)
		}
	}
}

func TestErrorKindOf(t *testing.T) {
	wrapped := fmt.Errorf("favorites: %w", &APIError{Kind: KindServer, StatusCode: 503})
	kind, ok := ErrorKindOf(wrapped)
	if !ok || kind != KindServer {
		t.Fatalf("ErrorKindOf = (%s, %v), want (server, true)", kind, ok)
	}

	if _, ok := ErrorKindOf(errors.New("plain")); ok {
		t.Fatalf("expected no kind for plain error")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Kind: KindValidation, StatusCode: 422, Message: "no location set"}
	if err.Error() != "api: no location set (validation)" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}

	bare := &APIError{Kind: KindNetwork}
	if bare.Error() != "api: request failed (network)" {
		t.Fatalf("unexpected error string: %s", bare.Error())
	}
}
