// Package subject shows the groups of one subject's bank.
package subject

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/group"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/quiz"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// columns is the number of group tiles per row.
const columns = 4

const tileWidth = 14

// SubjectScreen is a grid of the subject's groups.
type SubjectScreen struct {
	env       *screen.Env
	subjectID string
	name      string
	notFound  bool
	questions int
	groups    []group.Group
	cursor    int
}

var _ screen.Screen = (*SubjectScreen)(nil)
var _ screen.KeyHintProvider = (*SubjectScreen)(nil)

// New creates the screen for subjectID. An unknown subject renders a
// not-found message instead of the grid.
func New(env *screen.Env, subjectID string) *SubjectScreen {
	s := &SubjectScreen{
		env:       env,
		subjectID: subjectID,
		name:      catalog.DisplayName(subjectID),
	}

	if _, ok := catalog.Get(subjectID); !ok || env == nil || env.Loader == nil {
		s.notFound = true
		return s
	}

	b, err := env.Loader.Load(subjectID)
	if err != nil {
		if !errors.Is(err, bank.ErrSubjectNotFound) {
			env.Log().Warn("load bank", zap.String("subject", subjectID), zap.Error(err))
		}
		s.notFound = true
		return s
	}

	s.questions = b.Len()
	s.groups = group.Partition(b.Len(), env.GroupSize())
	return s
}

func (s *SubjectScreen) Init() tea.Cmd {
	return nil
}

func (s *SubjectScreen) Title() string {
	return s.name
}

func (s *SubjectScreen) KeyHints() []layout.KeyHint {
	if s.notFound || len(s.groups) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the group under the cursor.
func (s *SubjectScreen) Selected() (group.Group, bool) {
	if s.cursor < 0 || s.cursor >= len(s.groups) {
		return group.Group{}, false
	}
	return s.groups[s.cursor], true
}

func (s *SubjectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(s.groups) == 0 {
		return s, nil
	}

	last := len(s.groups) - 1
	switch {
	case key.Matches(kmsg, components.Keys.Left):
		s.cursor = max(s.cursor-1, 0)
	case key.Matches(kmsg, components.Keys.Right):
		s.cursor = min(s.cursor+1, last)
	case key.Matches(kmsg, components.Keys.Up):
		if s.cursor-columns >= 0 {
			s.cursor -= columns
		}
	case key.Matches(kmsg, components.Keys.Down):
		if s.cursor+columns <= last {
			s.cursor += columns
		}
	case key.Matches(kmsg, components.Keys.Enter):
		g, _ := s.Selected()
		return s, router.Push(quiz.New(s.env, s.subjectID, g.ID))
	}
	return s, nil
}

func (s *SubjectScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.notFound {
		msg := theme.Title.Render("Subject not found") + "\n\n" +
			theme.Hint.Render(fmt.Sprintf("There is no subject called %q. Press Esc to go back.", s.subjectID))
		return layout.Centered(components.Panel(msg, cw), width, height)
	}

	heading := theme.Title.Render(s.name)
	sub := theme.Subtitle.Render(fmt.Sprintf("%d questions · %d groups of up to %d",
		s.questions, len(s.groups), s.env.GroupSize()))

	if len(s.groups) == 0 {
		body := heading + "\n" + sub + "\n\n" + theme.Hint.Render("This subject has no questions yet.")
		return layout.Centered(components.Panel(body, cw), width, height)
	}

	body := heading + "\n" + sub + "\n\n" + s.renderGrid()
	return layout.Centered(components.Panel(body, cw), width, height)
}

func (s *SubjectScreen) renderGrid() string {
	selected := lipgloss.NewStyle().
		Width(tileWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Foreground(theme.Primary).
		Bold(true)
	normal := selected.
		BorderForeground(theme.Border).
		Foreground(theme.Text).
		Bold(false)

	var rows []string
	for start := 0; start < len(s.groups); start += columns {
		end := min(start+columns, len(s.groups))
		tiles := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			g := s.groups[i]
			label := fmt.Sprintf("Group %d\n%s", g.ID, theme.Dimmed.Render(g.Label))
			if i == s.cursor {
				tiles = append(tiles, selected.Render(label))
			} else {
				tiles = append(tiles, normal.Render(label))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return strings.Join(rows, "\n")
}
