package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match ("" = any)
}

// SettingsRepo persists app-level key/value settings.
type SettingsRepo interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// All returns every stored setting.
	All(ctx context.Context) (map[string]string, error)

	// Clear deletes every setting.
	Clear(ctx context.Context) error
}

// Explanation is a cached explanation of a question's correct answer.
type Explanation struct {
	Key        string
	SubjectID  string
	QuestionID int
	Text       string
	Model      string
	CreatedAt  time.Time
}

// ExplanationRepo caches generated explanations.
type ExplanationRepo interface {
	// Get returns the explanation stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Explanation, error)

	// Put inserts or replaces an explanation.
	Put(ctx context.Context, e *Explanation) error

	// Count returns the number of cached explanations.
	Count(ctx context.Context) (int, error)

	// Clear deletes every explanation and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event by id, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)
}
