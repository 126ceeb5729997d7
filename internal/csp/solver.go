// Package csp assembles quizzes by backtracking search over a question
// pool under hard inclusion and exclusion rules.
package csp

import (
	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/search"
)

// Constraints configures a single Solve call. Nil maps and zero values
// impose no restriction.
type Constraints struct {
	// TargetSize is the exact number of items the quiz must contain.
	TargetSize int `json:"size"`

	// Topic, when set, must equal each selected item's topic exactly.
	// Callers normalize free-text input before solving.
	Topic string `json:"topic,omitempty"`

	// MaxOfFormat caps the number of items of a format. Checked as items
	// are added.
	MaxOfFormat map[question.Format]int `json:"max_of_format,omitempty"`

	// MinHard is the minimum number of hard items. Checked on completion.
	MinHard int `json:"min_hard,omitempty"`

	// MinSkillCategory is the minimum number of items per skill category.
	// Checked on completion.
	MinSkillCategory map[question.SkillCategory]int `json:"min_skill_category,omitempty"`
}

// Result is the outcome of Solve. Items is nil when no quiz satisfies the
// constraints.
type Result struct {
	Items []question.Item
	Stats search.Stats
}

// Found reports whether a quiz was assembled.
func (r Result) Found() bool {
	return r.Stats.Success
}

// Solve returns the first ordered sequence of TargetSize distinct pool
// items, in pool-order priority, that satisfies every constraint. The
// pool is never modified.
func Solve(pool question.Pool, c Constraints) Result {
	timer := search.StartTimer()

	s := &solver{
		pool:        pool,
		c:           c,
		chosen:      make(map[question.ID]bool, max(c.TargetSize, 0)),
		formatCount: make(map[question.Format]int),
	}

	var items []question.Item
	if s.feasible() {
		s.partial = make([]question.Item, 0, c.TargetSize)
		if s.backtrack() {
			items = append([]question.Item{}, s.partial...)
		}
	}

	return Result{
		Items: items,
		Stats: search.Stats{
			Success: items != nil,
			Elapsed: timer.Stop(),
			Steps:   s.steps,
			Size:    len(items),
		},
	}
}

// solver is the private state of one Solve call.
type solver struct {
	pool        question.Pool
	c           Constraints
	partial     []question.Item
	chosen      map[question.ID]bool
	formatCount map[question.Format]int
	steps       int
}

// feasible rejects constraint sets that cannot be satisfied no matter how
// the pool is searched: a negative size, or more slots than distinct
// items on the requested topic.
func (s *solver) feasible() bool {
	if s.c.TargetSize < 0 {
		return false
	}
	distinct := make(map[question.ID]bool)
	for _, it := range s.pool {
		if s.topicMatches(it) {
			distinct[it.ID] = true
		}
	}
	return s.c.TargetSize <= len(distinct)
}

// backtrack fills the next slot. It reports whether the partial solution
// was completed into one that passes the final goal check.
func (s *solver) backtrack() bool {
	s.steps++

	if len(s.partial) == s.c.TargetSize {
		return s.goalMet()
	}

	for _, it := range s.pool {
		if !s.admissible(it) {
			continue
		}
		s.push(it)
		if s.backtrack() {
			return true
		}
		s.pop()
	}
	return false
}

// admissible applies the checks that can prune before an item is added.
func (s *solver) admissible(it question.Item) bool {
	if s.chosen[it.ID] {
		return false
	}
	if !s.topicMatches(it) {
		return false
	}
	if len(s.partial) >= s.c.TargetSize {
		return false
	}
	if limit, ok := s.c.MaxOfFormat[it.Format]; ok && s.formatCount[it.Format] >= limit {
		return false
	}
	return true
}

// goalMet checks the minimums that only make sense on a complete quiz.
func (s *solver) goalMet() bool {
	hard := 0
	categories := make(map[question.SkillCategory]int)
	for _, it := range s.partial {
		if it.Difficulty == question.DifficultyHard {
			hard++
		}
		categories[it.Category]++
	}
	if hard < s.c.MinHard {
		return false
	}
	for cat, want := range s.c.MinSkillCategory {
		if categories[cat] < want {
			return false
		}
	}
	return true
}

func (s *solver) topicMatches(it question.Item) bool {
	return s.c.Topic == "" || it.Topic == s.c.Topic
}

func (s *solver) push(it question.Item) {
	s.partial = append(s.partial, it)
	s.chosen[it.ID] = true
	s.formatCount[it.Format]++
}

func (s *solver) pop() {
	last := s.partial[len(s.partial)-1]
	s.partial = s.partial[:len(s.partial)-1]
	delete(s.chosen, last.ID)
	s.formatCount[last.Format]--
}
