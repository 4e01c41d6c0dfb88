package cmd

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/group"
	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
)

const goodBank = `{"questions": [
  {"text": "Capital of France?", "options": ["#Paris", "Rome", "Madrid"]},
  {"text": "2 + 2?", "options": ["3", "#4", "5"]},
  {"text": "Largest planet?", "options": ["Mars", "Venus", "#Jupiter"]}
]}`

const unmarkedBank = `{"questions": [
  {"text": "Pick one", "options": ["a", "b"]}
]}`

func newSession(t *testing.T) *session.Session {
	t.Helper()
	b, err := bank.Parse("geo", []byte(goodBank))
	require.NoError(t, err)
	g, ok := group.ForID(b.Len(), 25, 1)
	require.True(t, ok)
	return session.New("geo", g, quiz.NewDeck(quiz.NewSeededRand(3), group.Slice(b.Questions, g), g.Start))
}

func TestPracticeAllCorrect(t *testing.T) {
	s := newSession(t)

	var in strings.Builder
	for _, q := range s.Questions() {
		in.WriteString(string(rune('1'+q.CorrectIndex)) + "\n")
	}

	var out bytes.Buffer
	require.NoError(t, practice(strings.NewReader(in.String()), &out, s))

	assert.Equal(t, session.Totals{Correct: 3, Total: 3}, s.Totals())
	assert.Contains(t, out.String(), "Summary: 3/3 correct, 0 wrong, 0 unanswered")
	assert.Contains(t, out.String(), "Accuracy: 100%")
}

func TestPracticeSkipInvalidAndQuit(t *testing.T) {
	s := newSession(t)
	first := s.Questions()[0]
	wrong := (first.CorrectIndex + 1) % len(first.Options)

	input := "9\n" + string(rune('a'+wrong)) + "\n\nq\n"
	var out bytes.Buffer
	require.NoError(t, practice(strings.NewReader(input), &out, s))

	assert.Contains(t, out.String(), "Enter 1-3.")
	assert.Contains(t, out.String(), "Answer: "+first.CorrectText())
	assert.Contains(t, out.String(), "(skipped)")
	assert.Equal(t, session.Totals{Wrong: 1, Total: 3}, s.Totals())
	assert.Contains(t, out.String(), "0/3 correct, 1 wrong, 2 unanswered")
}

func TestPracticeInputClosed(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer
	require.NoError(t, practice(strings.NewReader(""), &out, s))
	assert.Contains(t, out.String(), "(input closed)")
	assert.NotContains(t, out.String(), "Accuracy")
}

func TestPrintSubjects(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printSubjects(&out, bank.NewLoader(bank.Embedded(), nil), 10))

	text := out.String()
	assert.Contains(t, text, "programming")
	assert.Contains(t, text, "Academic Writing")
}

func TestPrintGroups(t *testing.T) {
	loader := bank.NewLoader(fstest.MapFS{"geo.json": {Data: []byte(goodBank)}}, nil)

	var out bytes.Buffer
	require.NoError(t, printGroups(&out, loader, "geo", 2))
	assert.Contains(t, out.String(), "Geo: 3 questions in 2 groups of up to 2")
	assert.Contains(t, out.String(), "1-2")
	assert.Contains(t, out.String(), "3-3")

	err := printGroups(&out, loader, "nope", 2)
	assert.ErrorIs(t, err, bank.ErrSubjectNotFound)
}

func TestValidateBanks(t *testing.T) {
	loader := bank.NewLoader(fstest.MapFS{
		"geo.json":      {Data: []byte(goodBank)},
		"unmarked.json": {Data: []byte(unmarkedBank)},
		"broken.json":   {Data: []byte(`{"questions": "nope"}`)},
	}, nil)

	var out bytes.Buffer
	require.NoError(t, validateBanks(&out, loader, []string{"geo"}, true))
	assert.Contains(t, out.String(), "geo: 3 questions, ok")

	out.Reset()
	require.NoError(t, validateBanks(&out, loader, []string{"unmarked"}, false))
	assert.Contains(t, out.String(), "no-marker")

	err := validateBanks(&out, loader, []string{"unmarked"}, true)
	assert.ErrorIs(t, err, errInvalidBanks)

	err = validateBanks(&out, loader, []string{"broken"}, false)
	assert.ErrorIs(t, err, errInvalidBanks)
}

func TestValidateEmbeddedBanks(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, validateBanks(&out, bank.NewLoader(bank.Embedded(), nil), nil, false))
	assert.NotContains(t, out.String(), "no catalog entry")
}

func TestUsageByModel(t *testing.T) {
	ev := func(model string, ok bool, in, out int) store.LLMRequestEvent {
		return store.LLMRequestEvent{LLMRequestEventData: store.LLMRequestEventData{
			Model: model, Success: ok, InputTokens: in, OutputTokens: out,
		}}
	}
	usage := usageByModel([]store.LLMRequestEvent{
		ev("gpt-4o-mini", true, 100, 50),
		ev("claude-haiku-4-5", true, 10, 5),
		ev("gpt-4o-mini", false, 20, 0),
	})

	require.Len(t, usage, 2)
	assert.Equal(t, modelUsage{Model: "gpt-4o-mini", Calls: 2, Failures: 1, InputTokens: 120, OutputTokens: 50}, usage[0])
	assert.Equal(t, "claude-haiku-4-5", usage[1].Model)

	var out bytes.Buffer
	printUsage(&out, usage)
	assert.Contains(t, out.String(), "TOTAL")
	assert.NotContains(t, out.String(), "partial")

	out.Reset()
	printUsage(&out, nil)
	assert.Contains(t, out.String(), "No LLM usage recorded yet.")
}

func TestLLMConfig(t *testing.T) {
	lc := llmConfig(config.LLMConfig{
		Provider: llm.ProviderOpenAI,
		Timeout:  5 * time.Second,
		OpenAI:   config.ProviderConfig{APIKey: "sk-test"},
	})

	assert.Equal(t, llm.ProviderOpenAI, lc.Provider)
	assert.Equal(t, 5*time.Second, lc.Timeout)
	assert.Equal(t, "sk-test", lc.OpenAI.APIKey)
	assert.Equal(t, llm.DefaultConfig().OpenAI.Model, lc.OpenAI.Model, "empty model keeps the default")
	assert.NoError(t, lc.Validate())

	lc = llmConfig(config.LLMConfig{})
	assert.Equal(t, llm.DefaultConfig().Timeout, lc.Timeout)
	assert.ErrorIs(t, lc.Validate(), llm.ErrNotConfigured)
}
