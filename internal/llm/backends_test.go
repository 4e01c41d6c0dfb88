package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

// serve returns a server answering every request with status and body,
// and a pointer to the last request body it saw.
func serve(t *testing.T, status int, body string, header http.Header) (*httptest.Server, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &got)
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func explainRequest() Request {
	return Request{
		System:    "be brief",
		Prompt:    "Question: which device filters traffic?",
		Schema:    explanationShaped(),
		MaxTokens: 400,
	}
}

func anthropicReply(text, stop string) string {
	b, _ := json.Marshal(map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []any{map[string]any{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 31, "output_tokens": 12},
	})
	return string(b)
}

func TestAnthropicGenerate(t *testing.T) {
	srv, sent := serve(t, 200, anthropicReply(`{"explanation": "A firewall filters traffic."}`, "end_turn"), nil)
	b := newAnthropic(ProviderConfig{APIKey: "k", Model: "claude-haiku", BaseURL: srv.URL})

	reply, err := b.Generate(context.Background(), explainRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Model != "claude-haiku-4-5-20251001" || reply.InputTokens != 31 || reply.OutputTokens != 12 {
		t.Errorf("reply = %+v", reply)
	}
	if (*sent)["model"] != "claude-haiku-4-5-20251001" {
		t.Errorf("sent model = %v", (*sent)["model"])
	}
	if _, ok := (*sent)["output_config"]; !ok {
		t.Error("schema not sent as output_config")
	}
}

func TestOpenAIGenerate(t *testing.T) {
	body := `{"id": "c1", "object": "chat.completion", "model": "gpt-4o-mini-2024-07-18",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"explanation\": \"ok\"}"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 20, "completion_tokens": 5, "total_tokens": 25}}`
	srv, sent := serve(t, 200, body, nil)
	b := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})

	reply, err := b.Generate(context.Background(), explainRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Model != "gpt-4o-mini-2024-07-18" || reply.InputTokens != 20 || reply.OutputTokens != 5 {
		t.Errorf("reply = %+v", reply)
	}
	msgs, _ := (*sent)["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want system and user", len(msgs))
	}
	format, _ := (*sent)["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Errorf("response_format = %v", format)
	}
}

func TestOpenAIFailures(t *testing.T) {
	retry := http.Header{"Retry-After": {"4"}}
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"rate limited", 429, `{"error": {"message": "slow down", "type": "rate_limit"}}`, RateLimited},
		{"bad key", 401, `{"error": {"message": "invalid api key", "type": "auth"}}`, Rejected},
		{"server", 500, `oops`, Unavailable},
		{"truncated", 200, `{"choices": [{"message": {"content": "{\"expl"}, "finish_reason": "length"}]}`, Truncated},
		{"off schema", 200, `{"choices": [{"message": {"content": "{\"answer\": 1}"}, "finish_reason": "stop"}]}`, Malformed},
		{"no choices", 200, `{"choices": []}`, Malformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.status, tt.body, retry)
			b := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})

			_, err := b.Generate(context.Background(), explainRequest())
			if !isKind(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAnthropicFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		header     http.Header
		want       Kind
		retryAfter bool
	}{
		{"rate limited", 429, `{"type": "error", "error": {"type": "rate_limit_error", "message": "slow"}}`, http.Header{"Retry-After": {"3"}}, RateLimited, true},
		{"bad key", 401, `{"type": "error", "error": {"type": "authentication_error", "message": "bad"}}`, nil, Rejected, false},
		{"overloaded", 529, `{"type": "error", "error": {"type": "overloaded_error", "message": "busy"}}`, nil, Unavailable, false},
		{"truncated", 200, anthropicReply(`{"explanation": "A fire`, "max_tokens"), nil, Truncated, false},
		{"off schema", 200, anthropicReply(`{"explanation": ""}`, "end_turn"), nil, Malformed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.status, tt.body, tt.header)
			b := newAnthropic(ProviderConfig{APIKey: "k", Model: "claude-haiku", BaseURL: srv.URL})

			_, err := b.Generate(context.Background(), explainRequest())
			var e *Error
			if !errors.As(err, &e) || e.Kind != tt.want {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.retryAfter && e.RetryAfter == 0 {
				t.Error("Retry-After header not honoured")
			}
		})
	}
}

func TestGeminiGenerate(t *testing.T) {
	body := `{"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"explanation\": \"ok\"}"}]}, "finishReason": "STOP"}],
		"usageMetadata": {"promptTokenCount": 17, "candidatesTokenCount": 4}}`
	srv, sent := serve(t, 200, body, nil)
	b, err := newGemini(context.Background(), ProviderConfig{APIKey: "k", Model: "gemini-flash", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("newGemini: %v", err)
	}

	reply, err := b.Generate(context.Background(), explainRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Model != "gemini-2.0-flash" || reply.InputTokens != 17 || reply.OutputTokens != 4 {
		t.Errorf("reply = %+v", reply)
	}
	conf, _ := (*sent)["generationConfig"].(map[string]any)
	if conf["responseMimeType"] != "application/json" {
		t.Errorf("generationConfig = %v", conf)
	}
}

func TestGeminiFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"quota", 429, `{"error": {"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"}}`, RateLimited},
		{"bad key", 400, `{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`, Rejected},
		{"server", 503, `{"error": {"code": 503, "message": "unavailable", "status": "UNAVAILABLE"}}`, Unavailable},
		{"truncated", 200, `{"candidates": [{"content": {"parts": [{"text": "{\"ex"}]}, "finishReason": "MAX_TOKENS"}]}`, Truncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.status, tt.body, nil)
			b, err := newGemini(context.Background(), ProviderConfig{APIKey: "k", Model: "gemini-flash", BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("newGemini: %v", err)
			}
			_, err = b.Generate(context.Background(), explainRequest())
			if !isKind(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{"type": "string", "description": "why", "minLength": 1},
			"tags":        map[string]any{"type": "array", "items": map[string]any{"type": "string", "enum": []any{"a", "b"}}},
		},
		"required": []any{"explanation"},
	})

	if s.Type != genai.TypeObject {
		t.Errorf("type = %v", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "explanation" {
		t.Errorf("required = %v", s.Required)
	}
	exp := s.Properties["explanation"]
	if exp == nil || exp.Type != genai.TypeString || exp.Description != "why" {
		t.Errorf("explanation = %+v", exp)
	}
	tags := s.Properties["tags"]
	if tags == nil || tags.Items == nil || strings.Join(tags.Items.Enum, ",") != "a,b" {
		t.Errorf("tags = %+v", tags)
	}
}
