// Package explain produces short "why is this the right answer" notes for
// quiz questions. Notes come from an LLM provider and are cached in the
// store, one entry per question and wrong choice.
package explain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxTokens = 400
)

var explanationSchema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "A short explanation of why the correct option answers the question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Two to four plain sentences",
				"minLength":   1,
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a patient tutor reviewing a multiple-choice quiz.
Explain in two to four plain sentences why the correct option answers the
question. When the learner picked a different option, say briefly why that
option does not fit. Do not restate the question.`

// Request identifies the question to explain.
type Request struct {
	SubjectID   string
	SubjectName string
	Question    quiz.PreparedQuestion

	// Chosen is the learner's option index, or -1 when unanswered.
	Chosen int
}

// Explanation is a generated or cached explanation.
type Explanation struct {
	QuestionID int
	Text       string
	Model      string
	Cached     bool
}

// Service generates and caches explanations.
type Service struct {
	provider llm.Provider
	cache    store.ExplanationRepo
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service. cache may be nil to disable caching.
func New(provider llm.Provider, cache store.ExplanationRepo, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		cache:    cache,
		timeout:  defaultTimeout,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.Named("explain")
	return s
}

// Explain returns an explanation for req, consulting the cache first.
// Cache failures are logged and otherwise ignored.
func (s *Service) Explain(ctx context.Context, req Request) (*Explanation, error) {
	if s == nil || s.provider == nil {
		return nil, llm.ErrNotConfigured
	}

	key := CacheKey(req)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			return &Explanation{
				QuestionID: req.Question.ID,
				Text:       cached.Text,
				Model:      cached.Model,
				Cached:     true,
			}, nil
		case !errors.Is(err, store.ErrNotFound):
			s.logger.Warn("read explanation cache", zap.String("key", key), zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, llm.PurposeExplain), s.timeout)
	defer cancel()

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(req),
		Schema:      explanationSchema,
		MaxTokens:   defaultMaxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("explain question %d: %w", req.Question.ID, err)
	}

	var out struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode explanation: %w", err)
	}
	text := strings.TrimSpace(out.Explanation)
	if text == "" {
		return nil, fmt.Errorf("explain question %d: empty explanation", req.Question.ID)
	}

	model := resp.Model
	if model == "" {
		model = s.provider.ModelID()
	}

	if s.cache != nil {
		err := s.cache.Put(ctx, &store.Explanation{
			Key:        key,
			SubjectID:  req.SubjectID,
			QuestionID: req.Question.ID,
			Text:       text,
			Model:      model,
			CreatedAt:  s.now(),
		})
		if err != nil {
			s.logger.Warn("write explanation cache", zap.String("key", key), zap.Error(err))
		}
	}

	return &Explanation{QuestionID: req.Question.ID, Text: text, Model: model}, nil
}

// CacheKey identifies an explanation by subject, question id, content and
// the wrong option the learner picked, if any. Option order is irrelevant,
// so reshuffles share a key. Correct and missing answers share one key.
func CacheKey(req Request) string {
	q := req.Question
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%s\x00%s\x00%s", req.SubjectID, q.ID, q.Text, q.CorrectText(), wrongChoice(req))
	return hex.EncodeToString(h.Sum(nil))
}

// wrongChoice returns the text of the learner's option when it is a valid
// wrong answer, and "" otherwise.
func wrongChoice(req Request) string {
	q := req.Question
	if req.Chosen < 0 || req.Chosen >= len(q.Options) || q.IsCorrect(req.Chosen) {
		return ""
	}
	return q.OptionText(req.Chosen)
}

func buildPrompt(req Request) string {
	var b strings.Builder

	subject := req.SubjectName
	if subject == "" {
		subject = req.SubjectID
	}
	fmt.Fprintf(&b, "Subject: %s\n\n", subject)
	fmt.Fprintf(&b, "Question: %s\n\nOptions:\n", req.Question.Text)
	for i, opt := range req.Question.Options {
		fmt.Fprintf(&b, "%c. %s\n", 'A'+rune(i), opt)
	}
	fmt.Fprintf(&b, "\nCorrect option: %s\n", req.Question.CorrectText())

	if wrong := wrongChoice(req); wrong != "" {
		fmt.Fprintf(&b, "Learner chose: %s\n", wrong)
	}
	return b.String()
}
