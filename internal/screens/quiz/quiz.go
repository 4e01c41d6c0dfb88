// Package quiz is the screen where a group of questions is answered.
package quiz

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/explain"
	"github.com/abhisek/quizdeck/internal/group"
	"github.com/abhisek/quizdeck/internal/llm"
	engine "github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	sess "github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Result overlay buttons.
const (
	actionClose = "Close"
	actionRetry = "Retry"
	actionPrev  = "Prev group"
	actionNext  = "Next group"
)

// note is the explanation state of one question.
type note struct {
	pending bool
	text    string
	err     string
}

// QuizScreen implements screen.Screen for one group of one subject.
type QuizScreen struct {
	env       *screen.Env
	subjectID string
	groupID   int
	name      string

	spinner spinner.Model
	phase   sess.Phase
	session *sess.Session

	// bankSize is the subject's question count, used for group navigation.
	bankSize int

	current int // position in session.Questions()
	cursor  int // option cursor on the current question

	showResults bool
	actions     []string
	action      int

	notes map[int]*note
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New creates the quiz screen for group groupID of subjectID. The bank is
// loaded by Init.
func New(env *screen.Env, subjectID string, groupID int) *QuizScreen {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)

	return &QuizScreen{
		env:       env,
		subjectID: subjectID,
		groupID:   groupID,
		name:      catalog.DisplayName(subjectID),
		spinner:   sp,
		phase:     sess.PhaseLoading,
		notes:     make(map[int]*note),
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return tea.Batch(q.spinner.Tick, q.loadBank())
}

func (q *QuizScreen) loadBank() tea.Cmd {
	env := q.env
	subjectID := q.subjectID
	return func() tea.Msg {
		if env == nil || env.Loader == nil {
			return bankLoadedMsg{Err: bank.ErrSubjectNotFound}
		}
		b, err := env.Loader.Load(subjectID)
		return bankLoadedMsg{Bank: b, Err: err}
	}
}

func (q *QuizScreen) Title() string {
	if q.session != nil {
		return q.name + " · Group " + q.session.Group.Label
	}
	return q.name
}

// Status shows answered progress in the header.
func (q *QuizScreen) Status() string {
	if q.session == nil || q.session.Len() == 0 {
		return ""
	}
	return answeredLabel(q.session.Answered(), q.session.Len())
}

// HandlesBack reports whether Esc closes the results overlay rather than
// leaving the screen.
func (q *QuizScreen) HandlesBack() bool {
	return q.showResults
}

// Phase returns the screen's current phase.
func (q *QuizScreen) Phase() sess.Phase {
	if q.session != nil {
		return q.session.Phase()
	}
	return q.phase
}

// ShowingResults reports whether the results overlay is open.
func (q *QuizScreen) ShowingResults() bool {
	return q.showResults
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case q.showResults:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Close"},
		}
	case q.session == nil || q.session.Len() == 0:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}

	hints := []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "f", Description: "Finish"},
		{Key: "r", Description: "Reset"},
	}
	if q.env != nil && q.env.Explainer != nil {
		hints = append(hints, layout.KeyHint{Key: "e", Description: "Explain"})
	}
	return append(hints,
		layout.KeyHint{Key: "p/n", Description: "Group"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bankLoadedMsg:
		q.handleLoaded(msg)
		return q, nil

	case spinner.TickMsg:
		if q.phase != sess.PhaseLoading {
			return q, nil
		}
		var cmd tea.Cmd
		q.spinner, cmd = q.spinner.Update(msg)
		return q, cmd

	case explanationMsg:
		q.handleExplanation(msg)
		return q, nil

	case tea.KeyPressMsg:
		if q.showResults {
			return q.handleResultsKey(msg)
		}
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleLoaded(msg bankLoadedMsg) {
	if msg.Err != nil {
		if !errors.Is(msg.Err, bank.ErrSubjectNotFound) {
			q.env.Log().Warn("load bank", zap.String("subject", q.subjectID), zap.Error(msg.Err))
		}
		q.phase = sess.PhaseNotFound
		return
	}

	q.bankSize = msg.Bank.Len()
	g, ok := group.ForID(q.bankSize, q.env.GroupSize(), q.groupID)
	if !ok {
		q.phase = sess.PhaseEmpty
		return
	}

	deck := engine.NewDeck(q.env.Rand(), group.Slice(msg.Bank.Questions, g), g.Start)
	q.session = sess.New(q.subjectID, g, deck)
	q.phase = q.session.Phase()
	q.env.Log().Debug("group started",
		zap.String("subject", q.subjectID),
		zap.Int("group", g.ID),
		zap.Int("questions", q.session.Len()),
		zap.String("key", q.session.Key()))
}

func (q *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if q.session == nil || q.session.Len() == 0 {
		return q, nil
	}

	current := q.currentQuestion()
	_, answered := q.session.Answer(current.ID)

	if idx, ok := components.OptionIndex(msg.String()); ok {
		q.choose(idx)
		return q, nil
	}

	switch {
	case key.Matches(msg, components.Keys.Up):
		if !answered && q.cursor > 0 {
			q.cursor--
		}
	case key.Matches(msg, components.Keys.Down):
		if !answered && q.cursor < len(current.Options)-1 {
			q.cursor++
		}
	case key.Matches(msg, components.Keys.Enter):
		if answered {
			q.jumpToUnanswered()
		} else {
			q.choose(q.cursor)
		}
	case key.Matches(msg, components.Keys.Left):
		q.goTo(q.current - 1)
	case key.Matches(msg, components.Keys.Right):
		q.goTo(q.current + 1)
	case key.Matches(msg, components.Keys.Finish):
		q.openResults()
	case key.Matches(msg, components.Keys.Reset):
		q.reset()
	case key.Matches(msg, components.Keys.Explain):
		return q, q.explain()
	case key.Matches(msg, components.Keys.Prev):
		return q, q.switchGroup(group.Prev)
	case key.Matches(msg, components.Keys.Next):
		return q, q.switchGroup(group.Next)
	}
	return q, nil
}

// choose answers the current question with option idx. Completing the
// last open question opens the results.
func (q *QuizScreen) choose(idx int) {
	current := q.currentQuestion()
	if !q.session.Select(current.ID, idx) {
		return
	}
	q.cursor = idx
	if q.session.IsComplete() {
		q.openResults()
	}
}

func (q *QuizScreen) currentQuestion() engine.PreparedQuestion {
	qs := q.session.Questions()
	return qs[q.current]
}

func (q *QuizScreen) goTo(pos int) {
	if pos < 0 || pos >= q.session.Len() || pos == q.current {
		return
	}
	q.current = pos
	q.cursor = 0
	if idx, ok := q.session.Answer(q.currentQuestion().ID); ok {
		q.cursor = idx
	}
}

// jumpToUnanswered moves to the next unanswered question after the
// current one, wrapping around.
func (q *QuizScreen) jumpToUnanswered() {
	qs := q.session.Questions()
	for step := 1; step < len(qs); step++ {
		pos := (q.current + step) % len(qs)
		if _, ok := q.session.Answer(qs[pos].ID); !ok {
			q.goTo(pos)
			return
		}
	}
}

func (q *QuizScreen) reset() {
	q.session.Reset()
	q.current = 0
	q.cursor = 0
	q.showResults = false
	clear(q.notes)
	q.env.Log().Debug("group reset",
		zap.String("subject", q.subjectID),
		zap.Int("group", q.session.Group.ID),
		zap.String("key", q.session.Key()))
}

func (q *QuizScreen) switchGroup(step func(count, size, id int) (int, bool)) tea.Cmd {
	id, ok := step(q.bankSize, q.env.GroupSize(), q.session.Group.ID)
	if !ok {
		return nil
	}
	return router.Replace(New(q.env, q.subjectID, id))
}

func (q *QuizScreen) openResults() {
	q.actions = []string{actionClose, actionRetry}
	if _, ok := group.Prev(q.bankSize, q.env.GroupSize(), q.session.Group.ID); ok {
		q.actions = append(q.actions, actionPrev)
	}
	if _, ok := group.Next(q.bankSize, q.env.GroupSize(), q.session.Group.ID); ok {
		q.actions = append(q.actions, actionNext)
	}
	q.action = 0
	q.showResults = true
}

func (q *QuizScreen) handleResultsKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, components.Keys.Back):
		q.showResults = false
	case key.Matches(msg, components.Keys.Left):
		q.action = max(q.action-1, 0)
	case key.Matches(msg, components.Keys.Right):
		q.action = min(q.action+1, len(q.actions)-1)
	case key.Matches(msg, components.Keys.Enter):
		return q, q.runAction(q.actions[q.action])
	case key.Matches(msg, components.Keys.Reset):
		return q, q.runAction(actionRetry)
	}
	return q, nil
}

func (q *QuizScreen) runAction(action string) tea.Cmd {
	switch action {
	case actionClose:
		q.showResults = false
	case actionRetry:
		q.reset()
	case actionPrev:
		return q.switchGroup(group.Prev)
	case actionNext:
		return q.switchGroup(group.Next)
	}
	return nil
}

// explain requests an explanation for the current question once it has
// been answered.
func (q *QuizScreen) explain() tea.Cmd {
	if q.env == nil || q.env.Explainer == nil {
		return nil
	}
	current := q.currentQuestion()
	chosen, ok := q.session.Answer(current.ID)
	if !ok {
		return nil
	}
	if n := q.notes[current.ID]; n != nil && (n.pending || n.text != "") {
		return nil
	}
	q.notes[current.ID] = &note{pending: true}

	explainer := q.env.Explainer
	req := explain.Request{
		SubjectID:   q.subjectID,
		SubjectName: q.name,
		Question:    current,
		Chosen:      chosen,
	}
	sessionKey := q.session.Key()
	return func() tea.Msg {
		res, err := explainer.Explain(context.Background(), req)
		msg := explanationMsg{QuestionID: req.Question.ID, Key: sessionKey, Err: err}
		if err == nil {
			msg.Text = res.Text
		}
		return msg
	}
}

func (q *QuizScreen) handleExplanation(msg explanationMsg) {
	if q.session == nil || msg.Key != q.session.Key() {
		return
	}
	n := &note{text: msg.Text}
	if msg.Err != nil {
		q.env.Log().Warn("explain question", zap.Int("question", msg.QuestionID), zap.Error(msg.Err))
		n = &note{err: explainError(msg.Err)}
	}
	q.notes[msg.QuestionID] = n
}

func explainError(err error) string {
	if errors.Is(err, llm.ErrNotConfigured) {
		return "Explanations are not configured."
	}
	if kind, ok := llm.KindOf(err); ok {
		switch kind {
		case llm.RateLimited:
			return "The explanation service is busy. Try again in a moment."
		case llm.Rejected:
			return "The explanation service refused the request. Check the API key."
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The explanation took too long. Try again."
	}
	return "Could not get an explanation."
}
