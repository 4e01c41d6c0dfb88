package screen

import (
	"context"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/explain"
	"github.com/abhisek/quizdeck/internal/group"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/settings"
)

// Explainer produces an explanation for an answered question.
type Explainer interface {
	Explain(ctx context.Context, req explain.Request) (*explain.Explanation, error)
}

// Env carries the dependencies screens share.
type Env struct {
	Loader   *bank.Loader
	Settings *settings.Manager

	// Explainer is nil when no LLM provider is configured.
	Explainer Explainer

	PageSize int
	Logger   *zap.Logger

	// NewRand overrides the shuffle source; nil uses quiz.NewRand.
	NewRand func() *rand.Rand
}

// GroupSize returns the configured page size or the default.
func (e *Env) GroupSize() int {
	if e == nil || e.PageSize <= 0 {
		return group.DefaultPageSize
	}
	return e.PageSize
}

// Rand returns a fresh shuffle source.
func (e *Env) Rand() *rand.Rand {
	if e != nil && e.NewRand != nil {
		return e.NewRand()
	}
	return quiz.NewRand()
}

// Log returns the logger, never nil.
func (e *Env) Log() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
