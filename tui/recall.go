package tui

import "github.com/nathoo/hamurabi/types"

// Recall remembers the answers given to each kind of question, so Up offers
// last year's answer to this year's question.
type Recall struct {
	byKind map[types.PromptKind][]string
	max    int
	cursor int // -1 = not navigating
}

// NewRecall keeps at most max answers per question kind.
func NewRecall(max int) *Recall {
	return &Recall{
		byKind: map[types.PromptKind][]string{},
		max:    max,
		cursor: -1,
	}
}

// Push records an answer. Repeating the previous answer is not recorded.
func (r *Recall) Push(kind types.PromptKind, answer string) {
	entries := r.byKind[kind]
	if len(entries) > 0 && entries[len(entries)-1] == answer {
		return
	}
	entries = append(entries, answer)
	if len(entries) > r.max {
		entries = entries[1:]
	}
	r.byKind[kind] = entries
}

// Prev steps back to an older answer for kind.
func (r *Recall) Prev(kind types.PromptKind) (string, bool) {
	entries := r.byKind[kind]
	if len(entries) == 0 {
		return "", false
	}
	switch {
	case r.cursor == -1 || r.cursor >= len(entries):
		r.cursor = len(entries) - 1
	case r.cursor > 0:
		r.cursor--
	}
	return entries[r.cursor], true
}

// Next steps forward to a newer answer; false means back to an empty line.
func (r *Recall) Next(kind types.PromptKind) (string, bool) {
	entries := r.byKind[kind]
	if r.cursor == -1 {
		return "", false
	}
	r.cursor++
	if r.cursor >= len(entries) {
		r.cursor = -1
		return "", false
	}
	return entries[r.cursor], true
}

// ResetCursor stops navigating.
func (r *Recall) ResetCursor() {
	r.cursor = -1
}
