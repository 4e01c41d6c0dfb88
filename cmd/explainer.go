package cmd

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/explain"
	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/store"
)

// llmConfig maps the application config onto provider settings, keeping
// the provider defaults for anything left empty.
func llmConfig(c config.LLMConfig) llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.Provider
	if c.Timeout > 0 {
		out.Timeout = c.Timeout
	}
	out.Anthropic = out.Anthropic.Merge(llm.ProviderConfig(c.Anthropic))
	out.OpenAI = out.OpenAI.Merge(llm.ProviderConfig(c.OpenAI))
	out.Gemini = out.Gemini.Merge(llm.ProviderConfig(c.Gemini))
	out.OpenRouter = out.OpenRouter.Merge(llm.ProviderConfig(c.OpenRouter))
	return out
}

// newExplainer builds the explanation service. It returns
// llm.ErrNotConfigured when no provider is selected and no vendor key is
// present in the environment.
func newExplainer(ctx context.Context, cfg *config.Config, st *store.Store, log *zap.Logger) (*explain.Service, error) {
	lc, ok := llmConfig(cfg.LLM).Discover(os.Getenv)
	if !ok {
		return nil, llm.ErrNotConfigured
	}

	provider, err := llm.NewProvider(ctx, lc, st.EventRepo(), log)
	if err != nil {
		return nil, err
	}

	return explain.New(provider, st.ExplanationRepo(),
		explain.WithTimeout(lc.Timeout),
		explain.WithLogger(log),
	), nil
}
