package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. Empty means explanations are off.
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds a single explanation request, retries included.
	Timeout time.Duration
}

// ProviderConfig holds one backend's credentials and model choice.
type ProviderConfig struct {
	APIKey  string
	Model   string // friendly name or a raw model id
	BaseURL string // optional endpoint override
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults and no provider.
func DefaultConfig() Config {
	return Config{
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Merge overlays the non-empty fields of o onto c.
func (c ProviderConfig) Merge(o ProviderConfig) ProviderConfig {
	if o.APIKey != "" {
		c.APIKey = o.APIKey
	}
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	return c
}

// Discover fills in a provider from the conventional vendor variables
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY,
// checked in that order) when c has none selected. getenv is usually
// os.Getenv.
func (c Config) Discover(getenv func(string) string) (Config, bool) {
	if c.Provider != "" {
		return c, true
	}

	vendors := []struct {
		env      string
		provider string
		target   *ProviderConfig
	}{
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter},
	}
	for _, p := range vendors {
		if k := getenv(p.env); k != "" {
			c.Provider = p.provider
			if p.target.APIKey == "" {
				p.target.APIKey = k
			}
			return c, true
		}
	}
	return c, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "":
		return ErrNotConfigured
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("QUIZDECK_LLM_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
