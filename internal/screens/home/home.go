// Package home is the subject picker shown after the disclaimer.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/group"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/subject"
	"github.com/abhisek/quizdeck/internal/settings"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// HomeScreen lists the subjects.
type HomeScreen struct {
	env      *screen.Env
	subjects []catalog.Subject
	menu     components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	subjects := catalog.All()
	pageSize := env.GroupSize()

	items := make([]components.MenuItem, 0, len(subjects)+1)
	for _, s := range subjects {
		count := questionCount(env, s)
		items = append(items, components.MenuItem{
			Label:  s.Icon.Glyph() + "  " + s.Name,
			Detail: Detail(count, group.Count(count, pageSize)),
			Action: func() tea.Cmd {
				return router.Push(subject.New(env, s.ID))
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "✕  Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})

	return &HomeScreen{
		env:      env,
		subjects: subjects,
		menu:     components.NewMenu(items),
	}
}

// Detail is the card subtitle, e.g. "30 questions across 2 groups".
func Detail(questions, groups int) string {
	return fmt.Sprintf("%d %s across %d %s",
		questions, plural(questions, "question"),
		groups, plural(groups, "group"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// questionCount prefers the size of the loaded bank over the catalog's
// advertised count, which can drift when banks are edited.
func questionCount(env *screen.Env, s catalog.Subject) int {
	if env == nil || env.Loader == nil {
		return s.QuestionCount
	}
	b, err := env.Loader.Load(s.ID)
	if err != nil {
		env.Log().Debug("subject bank unavailable", zap.String("subject", s.ID), zap.Error(err))
		return s.QuestionCount
	}
	return b.Len()
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Subjects"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "t", Description: "Theme"},
		{Key: "q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(kmsg, components.Keys.Theme):
			h.toggleTheme()
			return h, nil
		case key.Matches(kmsg, components.Keys.Quit):
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) toggleTheme() {
	current := settings.ParseTheme(theme.Active().Name)
	next := current.Toggle()
	theme.Apply(theme.ByName(string(next)))

	if h.env == nil || h.env.Settings == nil {
		return
	}
	if err := h.env.Settings.SetTheme(context.Background(), next); err != nil {
		h.env.Log().Warn("persist theme", zap.Error(err))
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	heading := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render("Choose a subject"))

	var desc string
	if i := h.menu.Selected; i < len(h.subjects) {
		desc = h.subjects[i].Description
	} else {
		desc = "Leave QuizDeck"
	}
	description := theme.Subtitle.
		Width(cw).
		Align(lipgloss.Center).
		Render(desc)

	menu := components.Panel(strings.TrimRight(h.menu.View(), "\n"), cw)

	return layout.Centered(strings.Join([]string{heading, description, menu}, "\n\n"), width, height)
}
