package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// openaiBackend speaks the OpenAI chat completions API. OpenRouter uses
// the same wire format under its own base URL.
type openaiBackend struct {
	name   string
	client *openai.Client
	model  string
}

func newOpenAI(cfg ProviderConfig) *openaiBackend {
	return newChatCompletions(ProviderOpenAI, cfg)
}

func newOpenRouter(cfg ProviderConfig) *openaiBackend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterBaseURL
	}
	return newChatCompletions(ProviderOpenRouter, cfg)
}

func newChatCompletions(name string, cfg ProviderConfig) *openaiBackend {
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return &openaiBackend{
		name:   name,
		client: openai.NewClientWithConfig(conf),
		model:  modelID(name, cfg.Model),
	}
}

func (b *openaiBackend) Generate(ctx context.Context, req Request) (*Reply, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	chat := openai.ChatCompletionRequest{
		Model:               b.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	resp, err := b.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, b.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Kind: Malformed, Backend: b.name, Err: errors.New("no choices in reply")}
	}

	choice := resp.Choices[0]
	content, err := finish(b.name, req, choice.Message.Content, choice.FinishReason == openai.FinishReasonLength)
	if err != nil {
		return nil, err
	}

	return &Reply{
		Content:      content,
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

func (b *openaiBackend) ModelID() string {
	return b.model
}

// classify maps go-openai errors. JSON error bodies arrive as *APIError,
// anything else the server sent as *RequestError.
func (b *openaiBackend) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(b.name, apiErr.HTTPStatusCode, nil, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(b.name, reqErr.HTTPStatusCode, nil, err)
	}
	return &Error{Kind: Unavailable, Backend: b.name, Err: err}
}
