package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicBackend struct {
	client anthropic.Client
	model  string
}

func newAnthropic(cfg ProviderConfig) *anthropicBackend {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	// Retries belong to WithRetry so each attempt gets recorded.
	opts = append(opts, option.WithMaxRetries(0))

	return &anthropicBackend{
		client: anthropic.NewClient(opts...),
		model:  modelID(ProviderAnthropic, cfg.Model),
	}
}

func (b *anthropicBackend) Generate(ctx context.Context, req Request) (*Reply, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			var header http.Header
			if apiErr.Response != nil {
				header = apiErr.Response.Header
			}
			return nil, statusError(ProviderAnthropic, apiErr.StatusCode, header, err)
		}
		return nil, &Error{Kind: Unavailable, Backend: ProviderAnthropic, Err: err}
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	content, err := finish(ProviderAnthropic, req, text.String(), msg.StopReason == anthropic.StopReasonMaxTokens)
	if err != nil {
		return nil, err
	}

	return &Reply{
		Content:      content,
		Model:        string(msg.Model),
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
	}, nil
}

func (b *anthropicBackend) ModelID() string {
	return b.model
}
