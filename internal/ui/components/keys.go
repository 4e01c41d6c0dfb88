package components

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings shared by every screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Back    key.Binding
	Quit    key.Binding
	Theme   key.Binding
	Finish  key.Binding
	Reset   key.Binding
	Explain key.Binding
	Prev    key.Binding
	Next    key.Binding
}

// Keys is the application key map.
var Keys = KeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Enter:   key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "select")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Finish:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish now")),
	Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Explain: key.NewBinding(key.WithKeys("e", "?"), key.WithHelp("e", "explain")),
	Prev:    key.NewBinding(key.WithKeys("p", "["), key.WithHelp("p", "prev group")),
	Next:    key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next group")),
}

// OptionIndex maps the keys 1-9 and a-i to an option index. ok is false
// for any other key.
func OptionIndex(k string) (int, bool) {
	if len(k) != 1 {
		return 0, false
	}
	c := k[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	}
	return 0, false
}

// OptionLabel is the letter shown next to option i.
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}
