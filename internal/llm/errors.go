package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrNotConfigured is returned when no backend has been selected.
var ErrNotConfigured = errors.New("LLM provider not configured")

// Kind classifies a failed request.
type Kind int

const (
	// Unavailable covers network failures and 5xx responses.
	Unavailable Kind = iota
	// RateLimited is a 429 response.
	RateLimited
	// Rejected is any other 4xx response, such as a bad API key.
	Rejected
	// Malformed means the reply was empty or did not match the schema.
	Malformed
	// Truncated means the reply hit the token limit.
	Truncated
)

func (k Kind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case RateLimited:
		return "rate limited"
	case Rejected:
		return "rejected"
	case Malformed:
		return "malformed reply"
	case Truncated:
		return "truncated reply"
	default:
		return "unknown"
	}
}

// Error is a classified backend failure.
type Error struct {
	Kind    Kind
	Backend string

	// RetryAfter is the server's requested pause for RateLimited errors,
	// when it sent one.
	RetryAfter time.Duration

	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Backend, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// statusError maps an HTTP status from a backend SDK error.
func statusError(backend string, status int, header http.Header, err error) *Error {
	e := &Error{Kind: Unavailable, Backend: backend, Err: err}
	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = RateLimited
		e.RetryAfter = retryAfter(header)
	case status >= 400 && status < 500:
		e.Kind = Rejected
	}
	return e
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrNotConfigured):
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	return kind == Unavailable || kind == RateLimited || kind == Malformed
}
