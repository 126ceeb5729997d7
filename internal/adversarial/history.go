package adversarial

import (
	"slices"

	"github.com/abhisek/wisein/internal/question"
)

// History is the set of question IDs already asked in a session.
// The zero value is an empty history and is ready to use.
type History struct {
	ids map[question.ID]struct{}
}

// NewHistory builds a history from ids.
func NewHistory(ids ...question.ID) History {
	var h History
	for _, id := range ids {
		h.Add(id)
	}
	return h
}

// Add records id as asked.
func (h *History) Add(id question.ID) {
	if h.ids == nil {
		h.ids = make(map[question.ID]struct{})
	}
	h.ids[id] = struct{}{}
}

// Contains reports whether id was already asked.
func (h History) Contains(id question.ID) bool {
	_, ok := h.ids[id]
	return ok
}

// Len returns the number of distinct asked IDs.
func (h History) Len() int {
	return len(h.ids)
}

// IDs returns the asked IDs in ascending order.
func (h History) IDs() []question.ID {
	out := make([]question.ID, 0, len(h.ids))
	for id := range h.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
