package bank

import (
	"regexp"
	"strings"
)

var (
	citeTag   = regexp.MustCompile(`(?i)\s*\[cite:\s*\d+\]\s*`)
	markerTag = regexp.MustCompile(`^\s*#\s*`)
)

// Sanitize removes citation artifacts such as "[cite: 12]" and trims the
// result. Each tag, with the whitespace around it, becomes one space.
// Replacement repeats until nothing matches so that Sanitize(Sanitize(s))
// always equals Sanitize(s).
func Sanitize(s string) string {
	for {
		next := citeTag.ReplaceAllString(s, " ")
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// parseOption sanitizes a raw option and reports whether it carried the
// correct-answer marker.
func parseOption(raw string) (text string, marked bool) {
	text = Sanitize(raw)
	if !strings.HasPrefix(text, "#") {
		return text, false
	}
	return strings.TrimSpace(markerTag.ReplaceAllString(text, "")), true
}

// parseQuestion turns a raw record into a Question.
func parseQuestion(pos int, rq rawQuestion) Question {
	q := Question{
		Text:         Sanitize(rq.Text),
		Options:      make([]Option, len(rq.Options)),
		CorrectIndex: -1,
		Position:     pos,
	}

	for i, raw := range rq.Options {
		text, marked := parseOption(raw)
		q.Options[i].Text = text
		if marked {
			q.Marked++
			if q.CorrectIndex < 0 {
				q.CorrectIndex = i
				q.Source = SourceMarker
			}
		}
	}

	fieldOK := rq.CorrectIndex != nil && *rq.CorrectIndex >= 0 && *rq.CorrectIndex < len(rq.Options)
	if rq.CorrectIndex != nil && !fieldOK {
		idx := *rq.CorrectIndex
		q.IgnoredIndex = &idx
	}

	if q.CorrectIndex < 0 {
		if fieldOK {
			q.CorrectIndex = *rq.CorrectIndex
			q.Source = SourceField
		} else {
			q.CorrectIndex = 0
			q.Source = SourceDefault
		}
	}

	if q.CorrectIndex < len(q.Options) {
		q.Options[q.CorrectIndex].IsCorrect = true
	}
	return q
}
