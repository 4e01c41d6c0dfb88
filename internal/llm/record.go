package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/store"
)

type recorder struct {
	inner   Provider
	backend string
	events  store.EventRepo
	logger  *zap.Logger
}

// WithRecorder wraps p so every attempt is written to events (when not
// nil) and summarized in the log. Recording failures never fail the
// request.
func WithRecorder(p Provider, backend string, events store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recorder{inner: p, backend: backend, events: events, logger: logger.Named("llm")}
}

func (r *recorder) Generate(ctx context.Context, req Request) (*Reply, error) {
	start := time.Now()
	reply, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    r.backend,
		Model:       r.inner.ModelID(),
		Purpose:     string(purposeOf(ctx)),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if reply != nil {
		if reply.Model != "" {
			ev.Model = reply.Model
		}
		ev.InputTokens = reply.InputTokens
		ev.OutputTokens = reply.OutputTokens
		ev.ResponseBody = string(reply.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	log := r.logger.With(
		zap.String("backend", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Int64("latency_ms", ev.LatencyMs),
	)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
	} else {
		log.Debug("request served", zap.Int("input_tokens", ev.InputTokens), zap.Int("output_tokens", ev.OutputTokens))
	}

	if r.events != nil {
		if werr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
			r.logger.Warn("record request", zap.Error(werr))
		}
	}
	return reply, err
}

func (r *recorder) ModelID() string {
	return r.inner.ModelID()
}

// transcript renders req for `quizdeck llm view`.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[prompt]\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\n[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
