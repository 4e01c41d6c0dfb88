package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

type geminiBackend struct {
	client *genai.Client
	model  string
}

func newGemini(ctx context.Context, cfg ProviderConfig) (*geminiBackend, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiBackend{client: client, model: modelID(ProviderGemini, cfg.Model)}, nil
}

func (b *geminiBackend) Generate(ctx context.Context, req Request) (*Reply, error) {
	conf := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		conf.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		conf.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		conf.ResponseMIMEType = "application/json"
		conf.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	result, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(req.Prompt), conf)
	if err != nil {
		// genai returns APIError by value.
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, statusError(ProviderGemini, apiErr.Code, nil, err)
		}
		return nil, &Error{Kind: Unavailable, Backend: ProviderGemini, Err: err}
	}

	truncated := len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens
	content, err := finish(ProviderGemini, req, result.Text(), truncated)
	if err != nil {
		return nil, err
	}

	reply := &Reply{Content: content, Model: b.model}
	if u := result.UsageMetadata; u != nil {
		reply.InputTokens = int(u.PromptTokenCount)
		reply.OutputTokens = int(u.CandidatesTokenCount)
	}
	return reply, nil
}

func (b *geminiBackend) ModelID() string {
	return b.model
}

// geminiSchema converts the subset of JSON Schema that Gemini's response
// schema understands: type, description, properties, required, enum and
// items. Other keywords are dropped and still enforced by Schema.Check.
func geminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{Type: geminiTypes[stringField(def, "type")]}
	if s.Type == "" {
		s.Type = genai.TypeString
	}
	s.Description = stringField(def, "description")
	s.Required = stringItems(def["required"])
	s.Enum = stringItems(def["enum"])

	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, p := range props {
			if sub, ok := p.(map[string]any); ok {
				s.Properties[name] = geminiSchema(sub)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	return s
}

var geminiTypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"array":   genai.TypeArray,
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringItems(v any) []string {
	items, _ := v.([]any)
	var out []string
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
