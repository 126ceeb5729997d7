package csp

import "github.com/abhisek/wisein/internal/question"

// Bounded reports whether Solve on pool and c visits at most maxStates
// states in the worst case. The bound counts every ordered selection of
// up to TargetSize topic-matching items, which is what an exhaustive
// search with unsatisfiable minimums explores. Callers serving untrusted
// input check it before solving, since Solve itself cannot be cancelled.
func Bounded(pool question.Pool, c Constraints, maxStates int) bool {
	if maxStates < 1 {
		return false
	}

	s := &solver{pool: pool, c: c}
	if !s.feasible() {
		// Rejected before the first recursive call.
		return true
	}

	matching := 0
	for _, it := range pool {
		if s.topicMatches(it) {
			matching++
		}
	}

	total, level := 1, 1
	for k := 1; k <= c.TargetSize; k++ {
		branch := matching - k + 1
		if level > maxStates/branch {
			return false
		}
		level *= branch
		total += level
		if total > maxStates {
			return false
		}
	}
	return true
}
