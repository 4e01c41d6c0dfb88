package catalog

import (
	"strings"
)

// Icon names a glyph shown on a subject card.
type Icon string

const (
	IconBook   Icon = "book"
	IconZap    Icon = "zap"
	IconAward  Icon = "award"
	IconGlobe  Icon = "globe"
	IconBrain  Icon = "brain"
	IconTarget Icon = "target"
)

// Glyph returns the terminal glyph for an icon.
func (i Icon) Glyph() string {
	switch i {
	case IconBook:
		return "▤"
	case IconZap:
		return "ϟ"
	case IconAward:
		return "✪"
	case IconGlobe:
		return "◍"
	case IconBrain:
		return "✺"
	case IconTarget:
		return "◎"
	default:
		return "•"
	}
}

// Subject is a named topic area with its own question bank.
type Subject struct {
	ID            string
	Name          string
	Description   string
	Icon          Icon
	QuestionCount int
}

// subjects is the single source of truth for subject metadata. Adding a
// subject means adding an entry here and a matching bank file.
var subjects = []Subject{
	{
		ID:            "academic-writing",
		Name:          "Academic Writing",
		Description:   "Master the essentials of academic writing and composition",
		Icon:          IconBook,
		QuestionCount: 30,
	},
	{
		ID:            "information-technology",
		Name:          "Information Technology",
		Description:   "Test your IT knowledge across all major domains",
		Icon:          IconZap,
		QuestionCount: 28,
	},
	{
		ID:            "economic-theories",
		Name:          "Economic Theories",
		Description:   "Understand fundamental economic principles and theories",
		Icon:          IconAward,
		QuestionCount: 27,
	},
	{
		ID:            "programming",
		Name:          "Programming",
		Description:   "Master programming concepts and C++ fundamentals",
		Icon:          IconTarget,
		QuestionCount: 32,
	},
}

// All returns every registered subject in display order.
func All() []Subject {
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	return out
}

// Get returns the subject with the given id.
func Get(id string) (Subject, bool) {
	for _, s := range subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// IDs returns all subject ids in display order.
func IDs() []string {
	ids := make([]string, len(subjects))
	for i, s := range subjects {
		ids[i] = s.ID
	}
	return ids
}

// DisplayName returns the subject name, or a title-cased form of the id
// when the subject is not registered ("academic-writing" -> "Academic Writing").
func DisplayName(id string) string {
	if s, ok := Get(id); ok {
		return s.Name
	}
	words := strings.Split(id, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
