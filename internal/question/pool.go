package question

import (
	"slices"
	"strings"
)

// Pool is an ordered list of candidate items. Order matters: both search
// engines use it as their tie-break.
type Pool []Item

// Clone returns a copy that shares no backing array with p.
func (p Pool) Clone() Pool {
	if p == nil {
		return nil
	}
	return slices.Clone(p)
}

// IDs returns the item IDs in pool order.
func (p Pool) IDs() []ID {
	ids := make([]ID, len(p))
	for i, it := range p {
		ids[i] = it.ID
	}
	return ids
}

// FilterTopic returns the items whose topic contains topic,
// case-insensitively, preserving order. An empty topic matches nothing.
func (p Pool) FilterTopic(topic string) Pool {
	needle := strings.ToLower(strings.TrimSpace(topic))
	if needle == "" {
		return nil
	}
	var out Pool
	for _, it := range p {
		if strings.Contains(strings.ToLower(it.Topic), needle) {
			out = append(out, it)
		}
	}
	return out
}

// ResolveTopic returns the topic string exactly as stored on the first
// item matching topic case-insensitively. It is used to turn free-text
// input into the exact value the constraint solver compares against.
func (p Pool) ResolveTopic(topic string) (string, bool) {
	matches := p.FilterTopic(topic)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Topic, true
}

// Topics returns the distinct topics in first-seen order.
func (p Pool) Topics() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range p {
		if !seen[it.Topic] {
			seen[it.Topic] = true
			out = append(out, it.Topic)
		}
	}
	return out
}
