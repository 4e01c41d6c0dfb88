package llm

// aliases maps each backend's short model names to API model ids.
// OpenRouter ids are vendor-qualified already and pass through.
var aliases = map[string]map[string]string{
	ProviderAnthropic: {
		"claude-haiku":  "claude-haiku-4-5-20251001",
		"claude-sonnet": "claude-sonnet-4-5-20250929",
	},
	ProviderOpenAI: {
		"gpt-mini": "gpt-4.1-mini",
		"gpt-nano": "gpt-4.1-nano",
	},
	ProviderGemini: {
		"gemini-flash": "gemini-2.0-flash",
		"gemini-pro":   "gemini-2.5-pro",
	},
}

// modelID resolves name for backend. Unknown names are taken as raw ids.
func modelID(backend, name string) string {
	if id, ok := aliases[backend][name]; ok {
		return id
	}
	return name
}

// Price is a model's list price in USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// Cost returns the USD cost of a request with the given token counts.
func (p Price) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*p.Input + float64(outputTokens)*p.Output) / 1e6
}

// PriceOf returns the list price of a model id as recorded in request
// events.
func PriceOf(model string) (Price, bool) {
	p, ok := prices[model]
	return p, ok
}

// Prices as of 2026-09-30. Explanations are short, so only the small
// models the defaults and aliases resolve to are listed.
var prices = map[string]Price{
	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},

	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},

	"gemini-2.0-flash": {0.1, 0.4},
	"gemini-2.5-pro":   {1.25, 10},

	"google/gemini-2.0-flash-001": {0.1, 0.4},
	"openai/gpt-4o-mini":          {0.15, 0.6},
}
