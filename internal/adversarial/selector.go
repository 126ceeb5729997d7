// Package adversarial picks the next interview question with a two-ply
// minimax search against a simulated respondent.
package adversarial

import (
	"math"

	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/search"
)

// searchDepth is the number of plies: the engine's move followed by the
// respondent's forced response.
const searchDepth = 2

// ply identifies whose turn a search node belongs to.
type ply int

const (
	// plyEngine enumerates candidate questions and maximizes utility.
	plyEngine ply = iota
	// plyRespondent is forced: it has no choices of its own and passes
	// straight through to the leaf evaluation of the engine's question.
	plyRespondent
)

// Weight returns the payoff scale of a difficulty: hard 10, medium 5,
// easy 1. Unset difficulties score as medium.
func Weight(d question.Difficulty) float64 {
	switch d {
	case question.DifficultyHard:
		return 10
	case question.DifficultyEasy:
		return 1
	default:
		return 5
	}
}

// SimulatedPerformance is the fixed respondent model: the share of the
// weight the respondent is assumed to recover. Unset difficulties score
// as medium.
func SimulatedPerformance(d question.Difficulty) float64 {
	switch d {
	case question.DifficultyHard:
		return 0.3
	case question.DifficultyEasy:
		return 0.9
	default:
		return 0.5
	}
}

// Utility is the engine's payoff for asking it.
func Utility(it question.Item) float64 {
	w := Weight(it.Difficulty)
	return w - w*SimulatedPerformance(it.Difficulty)
}

// Result is the outcome of SelectNext. Item is meaningful only when
// Found reports true.
type Result struct {
	Item  question.Item
	Stats search.Stats
}

// Found reports whether a question was selected.
func (r Result) Found() bool {
	return r.Stats.Success
}

// SelectNext returns the pool item outside history with the highest
// utility. Ties go to the item that appears first in the pool. When every
// item is already in history the search is not run.
func SelectNext(pool question.Pool, history History) Result {
	timer := search.StartTimer()

	g := &game{history: history}
	g.moves = g.possibleMoves(pool)

	var res Result
	if len(g.moves) > 0 {
		best, _ := g.root()
		res.Item = best
		res.Stats.Success = true
		res.Stats.Size = 1
	}
	res.Stats.Steps = g.nodes
	res.Stats.Elapsed = timer.Stop()
	return res
}

// game is the private state of one SelectNext call.
type game struct {
	history History
	moves   []question.Item
	nodes   int
}

func (g *game) possibleMoves(pool question.Pool) []question.Item {
	var moves []question.Item
	for _, it := range pool {
		if !g.history.Contains(it.ID) {
			moves = append(moves, it)
		}
	}
	return moves
}

// root runs the engine ply at full depth and returns the chosen move
// rather than its score.
func (g *game) root() (question.Item, float64) {
	g.nodes++

	best := question.Item{}
	bestScore := math.Inf(-1)
	for _, it := range g.moves {
		score := g.minimax(searchDepth-1, plyRespondent, it)
		if score > bestScore {
			bestScore = score
			best = it
		}
	}
	return best, bestScore
}

// minimax evaluates the subtree below current.
func (g *game) minimax(depth int, turn ply, current question.Item) float64 {
	g.nodes++

	if depth == 0 {
		return Utility(current)
	}

	switch turn {
	case plyRespondent:
		return g.minimax(depth-1, plyEngine, current)
	default:
		// Below the root the engine only moves when searchDepth exceeds 2.
		best := math.Inf(-1)
		for _, it := range g.moves {
			if score := g.minimax(depth-1, plyRespondent, it); score > best {
				best = score
			}
		}
		return best
	}
}
