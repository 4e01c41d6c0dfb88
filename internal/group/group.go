// Package group splits a subject's question bank into fixed-size,
// contiguous practice groups.
package group

import "fmt"

// DefaultPageSize is the number of questions per group.
const DefaultPageSize = 25

// Group is a contiguous half-open range [Start, End) of a question bank.
type Group struct {
	ID    int // 1-based
	Label string
	Start int
	End   int
}

// Len returns the number of questions in the group.
func (g Group) Len() int {
	return g.End - g.Start
}

// Count returns how many groups a bank of questionCount questions yields.
func Count(questionCount, pageSize int) int {
	if questionCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (questionCount + pageSize - 1) / pageSize
}

// Partition divides questionCount questions into groups of pageSize. The
// last group is clamped to questionCount. Non-positive inputs yield nil.
func Partition(questionCount, pageSize int) []Group {
	n := Count(questionCount, pageSize)
	if n == 0 {
		return nil
	}

	groups := make([]Group, n)
	for i := range groups {
		start := i * pageSize
		end := min(start+pageSize, questionCount)
		groups[i] = Group{
			ID:    i + 1,
			Label: fmt.Sprintf("%d-%d", start+1, end),
			Start: start,
			End:   end,
		}
	}
	return groups
}

// Find returns the group with the given id.
func Find(groups []Group, id int) (Group, bool) {
	if id < 1 || id > len(groups) {
		return Group{}, false
	}
	return groups[id-1], true
}

// ForID builds the group with the given id directly from the bank size.
func ForID(questionCount, pageSize, id int) (Group, bool) {
	return Find(Partition(questionCount, pageSize), id)
}

// Valid reports whether id names an existing group.
func Valid(questionCount, pageSize, id int) bool {
	return id >= 1 && id <= Count(questionCount, pageSize)
}

// Prev returns the id before id, if any.
func Prev(questionCount, pageSize, id int) (int, bool) {
	return id - 1, Valid(questionCount, pageSize, id-1)
}

// Next returns the id after id, if any.
func Next(questionCount, pageSize, id int) (int, bool) {
	return id + 1, Valid(questionCount, pageSize, id+1)
}

// Slice returns the items that g covers, clamped to the slice bounds. A
// group lying outside items yields an empty slice.
func Slice[T any](items []T, g Group) []T {
	start := max(g.Start, 0)
	end := min(g.End, len(items))
	if start >= end {
		return nil
	}
	return items[start:end:end]
}
