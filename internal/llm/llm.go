// Package llm sends single-turn, schema-constrained prompts to a hosted
// language model. Backends for Anthropic, OpenAI (and OpenRouter through
// the OpenAI wire format) and Gemini share one Provider interface and are
// wrapped with retry and request recording by NewProvider.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one reply for one prompt.
type Provider interface {
	// Generate sends req and returns the reply. When req.Schema is set the
	// reply content has been checked against it.
	Generate(ctx context.Context, req Request) (*Reply, error)

	// ModelID returns the model id requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema asks the backend for JSON matching it.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]; zero keeps the backend default.
	Temperature float64
}

// Reply is a model's answer to a Request.
type Reply struct {
	// Content is JSON when a Schema was requested, plain text otherwise.
	Content json.RawMessage

	// Model is the model that served the request, which may differ from
	// the configured alias.
	Model string

	InputTokens  int
	OutputTokens int
}

// Purpose labels why a request was made. It is stored with each recorded
// request so usage can be broken down later.
type Purpose string

// PurposeExplain labels requests that explain a quiz answer.
const PurposeExplain Purpose = "explain"

type purposeKey struct{}

// WithPurpose returns a context carrying p.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

func purposeOf(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return "unlabelled"
}
