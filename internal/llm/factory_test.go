package llm

import (
	"context"
	"errors"
	"testing"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	if _, err := NewProvider(ctx, DefaultConfig(), nil, nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}

	tests := []struct {
		provider string
		set      func(*Config)
		model    string
	}{
		{ProviderAnthropic, func(c *Config) { c.Anthropic.APIKey = "k" }, "claude-haiku-4-5-20251001"},
		{ProviderOpenAI, func(c *Config) { c.OpenAI.APIKey = "k" }, "gpt-4o-mini"},
		{ProviderOpenRouter, func(c *Config) { c.OpenRouter.APIKey = "k" }, "google/gemini-2.0-flash-001"},
		{ProviderGemini, func(c *Config) { c.Gemini.APIKey = "k" }, "gemini-2.0-flash"},
		{ProviderMock, func(*Config) {}, "mock"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Provider = tt.provider
			tt.set(&cfg)

			p, err := NewProvider(ctx, cfg, nil, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != tt.model {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.model)
			}
			if _, ok := p.(*retrying); !ok {
				t.Errorf("provider %T is not wrapped with retry", p)
			}
		})
	}
}

func TestNewOpenRouterKeepsVendorModelID(t *testing.T) {
	b := newOpenRouter(ProviderConfig{APIKey: "k", Model: "openai/gpt-4o-mini"})
	if b.name != ProviderOpenRouter {
		t.Errorf("name = %q", b.name)
	}
	if b.model != "openai/gpt-4o-mini" {
		t.Errorf("model = %q", b.model)
	}
}
