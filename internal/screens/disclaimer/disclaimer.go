// Package disclaimer is the first-run notice. Agreeing is remembered in
// the settings store; quitting exits without recording anything.
package disclaimer

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const (
	heading = "Important disclaimer"

	intro = "Welcome to QuizDeck. Please read this notice before you start."

	warning = "The questions and answers are provided as a study aid. They may " +
		"contain mistakes or outdated information, and the maintainers are not " +
		"responsible for inaccuracies in them."

	report = "If you find a mistake or have a suggestion, please open an issue " +
		"in the project's repository. Run `quizdeck validate` to check the bundled banks."
)

const (
	buttonQuit = iota
	buttonAgree
)

var buttonLabels = []string{"Quit", "I agree"}

// DisclaimerScreen asks the user to accept the disclaimer.
type DisclaimerScreen struct {
	env      *screen.Env
	next     func() screen.Screen
	selected int
	done     bool
}

var _ screen.Screen = (*DisclaimerScreen)(nil)
var _ screen.KeyHintProvider = (*DisclaimerScreen)(nil)

// New creates a DisclaimerScreen that replaces itself with next() once the
// user agrees.
func New(env *screen.Env, next func() screen.Screen) *DisclaimerScreen {
	return &DisclaimerScreen{
		env:      env,
		next:     next,
		selected: buttonAgree,
	}
}

func (d *DisclaimerScreen) Init() tea.Cmd {
	return nil
}

func (d *DisclaimerScreen) Title() string {
	return "Disclaimer"
}

func (d *DisclaimerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "y", Description: "Agree"},
		{Key: "q", Description: "Quit"},
	}
}

func (d *DisclaimerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || d.done {
		return d, nil
	}

	switch {
	case key.Matches(kmsg, components.Keys.Left), kmsg.String() == "shift+tab":
		d.selected = buttonQuit
	case key.Matches(kmsg, components.Keys.Right), kmsg.String() == "tab":
		d.selected = buttonAgree
	case kmsg.String() == "y":
		return d, d.agree()
	case key.Matches(kmsg, components.Keys.Quit):
		return d, tea.Quit
	case key.Matches(kmsg, components.Keys.Enter):
		if d.selected == buttonAgree {
			return d, d.agree()
		}
		return d, tea.Quit
	}
	return d, nil
}

func (d *DisclaimerScreen) agree() tea.Cmd {
	d.done = true
	if d.env != nil && d.env.Settings != nil {
		if err := d.env.Settings.AgreeDisclaimer(context.Background()); err != nil {
			// The user still gets in; they will see the notice again next run.
			d.env.Log().Warn("persist disclaimer agreement", zap.Error(err))
		}
	}
	return router.Replace(d.next())
}

func (d *DisclaimerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	textWidth := cw - 6

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("⚠  " + heading))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(textWidth).Render(intro))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(textWidth).
		Foreground(theme.Text).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Accent).
		PaddingLeft(1).
		Render(warning))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(textWidth).
		Foreground(theme.Text).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Primary).
		PaddingLeft(1).
		Render(report))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(textWidth, lipgloss.Center, components.ButtonRow(buttonLabels, d.selected)))

	sections := []string{RenderBanner(width), "", components.Panel(b.String(), cw)}
	return layout.Centered(lipgloss.JoinVertical(lipgloss.Center, sections...), width, height)
}
