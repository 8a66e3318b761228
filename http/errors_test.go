package http

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAPIError_UnwrapByStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{400, ErrBadRequest},
		{401, ErrUnauthorized},
		{403, ErrForbidden},
		{404, ErrNotFound},
		{429, ErrRateLimited},
		{500, ErrServerError},
		{503, ErrServerError},
	}

	for _, tt := range tests {
		apiErr := &APIError{Service: "testsvc", StatusCode: tt.status, Message: "m"}
		if !errors.Is(apiErr, tt.want) {
			t.Errorf("APIError(%d) does not unwrap to %v", tt.status, tt.want)
		}
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{
		Service:    "openai",
		StatusCode: 429,
		Message:    "slow down",
		Endpoint:   "/v1/chat/completions",
		RequestID:  "req-1",
	}
	msg := err.Error()
	for _, part := range []string{"openai", "429", "/v1/chat/completions", "req-1", "slow down"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, missing %q", msg, part)
		}
	}
}

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(&APIError{StatusCode: 401}) {
		t.Error("401 not reported as unauthorized")
	}
	if !IsUnauthorized(&APIError{StatusCode: 403}) {
		t.Error("403 not reported as unauthorized")
	}
	if IsUnauthorized(&APIError{StatusCode: 500}) {
		t.Error("500 reported as unauthorized")
	}
}

func TestIsRateLimited(t *testing.T) {
	if !IsRateLimited(&APIError{StatusCode: 429}) {
		t.Error("429 not reported as rate limited")
	}
	if !IsRateLimited(&RateLimitError{Service: "s", RetryAfter: time.Second}) {
		t.Error("RateLimitError not reported as rate limited")
	}
	if IsRateLimited(errors.New("other")) {
		t.Error("plain error reported as rate limited")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &APIError{StatusCode: 429}, true},
		{"server error", &APIError{StatusCode: 502}, true},
		{"unauthorized", &APIError{StatusCode: 401}, false},
		{"bad request", &APIError{StatusCode: 400}, false},
		{"plain error", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
