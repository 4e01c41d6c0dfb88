package bank

import "fmt"

// IssueKind classifies a data problem in a bank.
type IssueKind string

const (
	IssueNoMarker        IssueKind = "no-marker"
	IssueMultipleMarkers IssueKind = "multiple-markers"
	IssueTooFewOptions   IssueKind = "too-few-options"
	IssueEmptyText       IssueKind = "empty-text"
	IssueEmptyOption     IssueKind = "empty-option"
	IssueBadCorrectIndex IssueKind = "bad-correct-index"
)

// Issue is a single finding from Validate.
type Issue struct {
	Position int
	Kind     IssueKind
	Detail   string
}

func (i Issue) String() string {
	return fmt.Sprintf("#%d %s: %s", i.Position+1, i.Kind, i.Detail)
}

// Validate reports questions whose data would be scored on a guess or
// rendered badly. It never changes the bank.
func Validate(b *Bank) []Issue {
	if b == nil {
		return nil
	}

	var issues []Issue
	for _, q := range b.Questions {
		add := func(kind IssueKind, detail string) {
			issues = append(issues, Issue{Position: q.Position, Kind: kind, Detail: detail})
		}

		if q.Text == "" {
			add(IssueEmptyText, "question text is empty")
		}
		if len(q.Options) < 2 {
			add(IssueTooFewOptions, fmt.Sprintf("%d option(s)", len(q.Options)))
		}
		for i, o := range q.Options {
			if o.Text == "" {
				add(IssueEmptyOption, fmt.Sprintf("option %d is empty", i+1))
			}
		}

		if q.IgnoredIndex != nil {
			add(IssueBadCorrectIndex, fmt.Sprintf("correctIndex %d is out of range for %d option(s)", *q.IgnoredIndex, len(q.Options)))
		}

		switch {
		case q.Source == SourceDefault && len(q.Options) > 0:
			add(IssueNoMarker, "no marked option; first option assumed correct")
		case q.Marked > 1:
			add(IssueMultipleMarkers, fmt.Sprintf("%d marked options; first one used", q.Marked))
		}
	}
	return issues
}
