package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/store"
)

// NewProvider builds the configured backend, recording every attempt to
// events and retrying transient failures per cfg.Retry.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	switch cfg.Provider {
	case ProviderAnthropic:
		base = newAnthropic(cfg.Anthropic)
	case ProviderOpenAI:
		base = newOpenAI(cfg.OpenAI)
	case ProviderOpenRouter:
		base = newOpenRouter(cfg.OpenRouter)
	case ProviderGemini:
		g, err := newGemini(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		base = g
	case ProviderMock:
		base = NewMockProvider()
	}

	return WithRetry(WithRecorder(base, cfg.Provider, events, logger), cfg.Retry), nil
}
