package bank

import "errors"

// ErrSubjectNotFound is returned when no bank exists for a subject id.
var ErrSubjectNotFound = errors.New("subject not found")

// CorrectSource records how a question's correct option was resolved.
type CorrectSource int

const (
	// SourceMarker means an option carried the '#' marker.
	SourceMarker CorrectSource = iota
	// SourceField means the explicit correctIndex field was used.
	SourceField
	// SourceDefault means nothing identified the answer and option 0 was assumed.
	SourceDefault
)

// String returns a short label for the source.
func (s CorrectSource) String() string {
	switch s {
	case SourceMarker:
		return "marker"
	case SourceField:
		return "field"
	case SourceDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Option is a single sanitized answer choice.
type Option struct {
	Text      string
	IsCorrect bool
}

// Question is a parsed bank entry. Marker characters are gone by the time
// a Question exists; consumers rely on CorrectIndex and Option.IsCorrect.
type Question struct {
	Text         string
	Options      []Option
	CorrectIndex int // pre-shuffle index into Options
	Source       CorrectSource
	Marked       int // options that carried a marker
	Position     int // 0-based position in the bank

	// IgnoredIndex holds a correctIndex field that was out of range.
	IgnoredIndex *int
}

// OptionTexts returns the option texts in stored order.
func (q Question) OptionTexts() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Text
	}
	return out
}

// CorrectText returns the text of the correct option, or "" when the
// question has no options.
func (q Question) CorrectText() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex].Text
}

// Bank is the ordered question list for one subject.
type Bank struct {
	SubjectID string
	Questions []Question
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Questions)
}

// rawQuestion mirrors the on-disk record.
type rawQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex,omitempty"`
}

type rawBank struct {
	Questions []rawQuestion `json:"questions"`
}
