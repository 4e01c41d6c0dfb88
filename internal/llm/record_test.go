package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/store"
)

type fakeEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.events = append(f.events, data)
	return f.err
}

func (f *fakeEvents) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}

func (f *fakeEvents) GetLLMEvent(context.Context, int64) (*store.LLMRequestEvent, error) {
	return nil, store.ErrNotFound
}

func TestRecorderSuccess(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: raw(`{"explanation": "ok"}`), InputTokens: 40, OutputTokens: 9})
	events := &fakeEvents{}
	p := WithRecorder(m, ProviderMock, events, zap.NewNop())

	ctx := WithPurpose(context.Background(), PurposeExplain)
	req := Request{System: "be brief", Prompt: "Question: why?", Schema: explanationShaped()}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("events = %d, want 1", len(events.events))
	}
	ev := events.events[0]
	if ev.Provider != ProviderMock || ev.Model != "mock" || ev.Purpose != "explain" {
		t.Errorf("event = %+v", ev)
	}
	if !ev.Success || ev.ErrorMessage != "" {
		t.Errorf("success = %v, error = %q", ev.Success, ev.ErrorMessage)
	}
	if ev.InputTokens != 40 || ev.OutputTokens != 9 {
		t.Errorf("tokens = %d/%d, want 40/9", ev.InputTokens, ev.OutputTokens)
	}
	if ev.ResponseBody != `{"explanation": "ok"}` {
		t.Errorf("response body = %q", ev.ResponseBody)
	}
	for _, want := range []string{"[system]\nbe brief", "[prompt]\nQuestion: why?", "[schema: answer-explanation]", `"minLength":1`} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
}

func TestRecorderFailure(t *testing.T) {
	m := NewMockProvider(MockResponse{Err: &Error{Kind: Rejected, Backend: ProviderMock, Err: errors.New("401")}})
	events := &fakeEvents{}
	p := WithRecorder(m, ProviderMock, events, nil)

	_, err := p.Generate(context.Background(), Request{Prompt: "q"})
	if !isKind(err, Rejected) {
		t.Fatalf("err = %v, want rejected", err)
	}
	ev := events.events[0]
	if ev.Success || !strings.Contains(ev.ErrorMessage, "401") {
		t.Errorf("event = %+v", ev)
	}
	if ev.Purpose != "unlabelled" {
		t.Errorf("purpose = %q, want unlabelled", ev.Purpose)
	}
	if strings.Contains(ev.RequestBody, "[system]") {
		t.Errorf("empty system prompt rendered:\n%s", ev.RequestBody)
	}
}

func TestRecorderStoreErrorIgnored(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: raw(`"ok"`)})
	events := &fakeEvents{err: errors.New("disk full")}
	p := WithRecorder(m, ProviderMock, events, zap.NewNop())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("store failure leaked into the request: %v", err)
	}
}

func TestRecorderRecordsEveryAttempt(t *testing.T) {
	m := NewMockProvider(unavailable(), MockResponse{Content: raw(`"ok"`)})
	events := &fakeEvents{}
	p := WithRetry(WithRecorder(m, ProviderMock, events, nil), RetryConfig{MaxAttempts: 2})

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events.events) != 2 || events.events[0].Success || !events.events[1].Success {
		t.Errorf("events = %+v", events.events)
	}
}
