package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/settings"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func testEnv(t *testing.T) *screen.Env {
	t.Helper()
	mgr, err := settings.Load(context.Background(), nil, nil)
	require.NoError(t, err)
	return &screen.Env{
		Loader:   bank.NewLoader(bank.Embedded(), nil),
		Settings: mgr,
	}
}

// step runs msg through the model and resolves any router messages the
// returned command produces.
func step(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		next, _ = m.Update(out)
		m = next.(AppModel)
	}
	return m
}

func TestStartsAtDisclaimer(t *testing.T) {
	m := newAppModel(testEnv(t))
	assert.Equal(t, "Disclaimer", m.router.Active().Title())
}

func TestSkipsDisclaimerOnceAgreed(t *testing.T) {
	env := testEnv(t)
	require.NoError(t, env.Settings.AgreeDisclaimer(context.Background()))

	m := newAppModel(env)
	assert.Equal(t, "Subjects", m.router.Active().Title())
}

func TestAppliesSavedTheme(t *testing.T) {
	t.Cleanup(func() { theme.Apply(theme.Dark) })

	env := testEnv(t)
	require.NoError(t, env.Settings.SetTheme(context.Background(), settings.ThemeLight))

	newAppModel(env)
	assert.Equal(t, theme.Light.Name, theme.Active().Name)
}

func TestAgreeThenNavigate(t *testing.T) {
	env := testEnv(t)
	m := newAppModel(env)

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "Subjects", m.router.Active().Title())
	assert.Equal(t, 1, m.router.Depth())
	assert.True(t, env.Settings.Get().DisclaimerAgreed)

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 2, m.router.Depth())

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())

	// Esc on the root screen is a no-op.
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testEnv(t))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewFrame(t *testing.T) {
	m := newAppModel(testEnv(t))

	// Nothing is drawn before the first size message.
	assert.Empty(t, m.frame())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(AppModel)
	content := m.frame()
	assert.Contains(t, content, "QuizDeck")
	assert.Contains(t, content, "Disclaimer")

	next, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	m = next.(AppModel)
	assert.Contains(t, m.frame(), "Terminal too small")
	assert.True(t, m.View().AltScreen)
}
