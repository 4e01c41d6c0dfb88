package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestStatusError(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "7")

	tests := []struct {
		status     int
		header     http.Header
		want       Kind
		retryAfter time.Duration
	}{
		{429, h, RateLimited, 7 * time.Second},
		{429, nil, RateLimited, 0},
		{401, nil, Rejected, 0},
		{404, nil, Rejected, 0},
		{500, nil, Unavailable, 0},
		{503, h, Unavailable, 0},
		{0, nil, Unavailable, 0},
	}
	for _, tt := range tests {
		e := statusError("openai", tt.status, tt.header, errors.New("boom"))
		if e.Kind != tt.want {
			t.Errorf("status %d: kind = %v, want %v", tt.status, e.Kind, tt.want)
		}
		if e.RetryAfter != tt.retryAfter {
			t.Errorf("status %d: retry after = %v, want %v", tt.status, e.RetryAfter, tt.retryAfter)
		}
	}
}

func TestRetryAfterIgnoresDates(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
	if got := retryAfter(h); got != 0 {
		t.Errorf("retryAfter = %v, want 0", got)
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("explain question 3: %w", &Error{Kind: Truncated, Backend: "gemini"})
	kind, ok := KindOf(err)
	if !ok || kind != Truncated {
		t.Errorf("KindOf = %v, %v; want truncated", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf matched a plain error")
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: RateLimited, Backend: "anthropic", Err: errors.New("429")}
	if got, want := e.Error(), "anthropic: rate limited: 429"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got, want := (&Error{Kind: Truncated, Backend: "mock"}).Error(), "mock: truncated reply"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), false},
		{"not configured", ErrNotConfigured, false},
		{"unclassified", errors.New("connection reset"), true},
		{"unavailable", &Error{Kind: Unavailable}, true},
		{"rate limited", &Error{Kind: RateLimited}, true},
		{"malformed", &Error{Kind: Malformed}, true},
		{"rejected", &Error{Kind: Rejected}, false},
		{"truncated", &Error{Kind: Truncated}, false},
	}
	for _, tt := range tests {
		if got := retryable(tt.err); got != tt.want {
			t.Errorf("%s: retryable = %v, want %v", tt.name, got, tt.want)
		}
	}
}
