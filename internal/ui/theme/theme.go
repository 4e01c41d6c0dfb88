// Package theme holds the active colour palette and the styles built
// from it. Apply swaps the palette and rebuilds every style.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is a named set of colours.
type Palette struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

var (
	Dark = Palette{
		Name:      "dark",
		Primary:   lipgloss.Color("#60A5FA"), // Sky
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F59E0B"), // Amber
		Success:   lipgloss.Color("#22C55E"),
		Error:     lipgloss.Color("#F43F5E"),
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		Bg:        lipgloss.Color("#0F172A"),
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
	}

	Light = Palette{
		Name:      "light",
		Primary:   lipgloss.Color("#1D4ED8"),
		Secondary: lipgloss.Color("#0F766E"),
		Accent:    lipgloss.Color("#B45309"),
		Success:   lipgloss.Color("#15803D"),
		Error:     lipgloss.Color("#BE123C"),
		Text:      lipgloss.Color("#0F172A"),
		TextDim:   lipgloss.Color("#475569"),
		Bg:        lipgloss.Color("#F8FAFC"),
		BgCard:    lipgloss.Color("#E2E8F0"),
		Border:    lipgloss.Color("#94A3B8"),
	}
)

// Current palette colours.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
	Dimmed     lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var current Palette

func init() {
	Apply(Dark)
}

// ByName returns the palette called name, falling back to Dark.
func ByName(name string) Palette {
	if name == Light.Name {
		return Light
	}
	return Dark
}

// Active returns the palette currently applied.
func Active() Palette {
	return current
}

// Apply makes p the active palette.
func Apply(p Palette) {
	current = p

	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	Bg = p.Bg
	BgCard = p.BgCard
	Border = p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)
	Body = lipgloss.NewStyle().
		Foreground(Text)
	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)
	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
	Unselected = lipgloss.NewStyle().
		Foreground(Text)
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)
	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
	Dimmed = lipgloss.NewStyle().
		Foreground(TextDim)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)
	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)
	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Bg).
		Bold(true).
		Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().
		Foreground(Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
