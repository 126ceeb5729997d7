package csp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/wisein/internal/question"
)

func easyTrueFalse(n int, topic string) question.Pool {
	pool := make(question.Pool, n)
	for i := range pool {
		pool[i] = question.Item{
			ID:         question.ID(i + 1),
			Topic:      topic,
			Difficulty: question.DifficultyEasy,
			Format:     question.FormatTrueFalse,
			Category:   question.CategoryVocab,
		}
	}
	return pool
}

func TestBounded(t *testing.T) {
	tests := []struct {
		name      string
		pool      question.Pool
		c         Constraints
		maxStates int
		want      bool
	}{
		// 1 + 3 + 6 + 6 states.
		{"scenario pool at the limit", scenarioPool(), Constraints{TargetSize: 3, Topic: "python"}, 16, true},
		{"scenario pool over the limit", scenarioPool(), Constraints{TargetSize: 3, Topic: "python"}, 15, false},
		{"other topics are not counted", scenarioPool(), Constraints{TargetSize: 1, Topic: "go"}, 1, true},
		{"infeasible size never recurses", scenarioPool(), Constraints{TargetSize: 4, Topic: "python"}, 1, true},
		{"negative size", scenarioPool(), Constraints{TargetSize: -1}, 1, true},
		{"zero size", scenarioPool(), Constraints{}, 1, true},
		{"zero budget", scenarioPool(), Constraints{}, 0, false},
		{"thirty items ten slots", easyTrueFalse(30, "go"), Constraints{TargetSize: 10, Topic: "go", MinHard: 1}, 1_000_000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bounded(tt.pool, tt.c, tt.maxStates))
		})
	}
}

func TestBounded_CoversActualSteps(t *testing.T) {
	pool := easyTrueFalse(6, "go")
	for size := 0; size <= 4; size++ {
		c := Constraints{TargetSize: size, Topic: "go", MinHard: 1}
		res := Solve(pool, c)
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			assert.False(t, res.Found())
			assert.True(t, Bounded(pool, c, res.Stats.Steps))
			if res.Stats.Steps > 1 {
				assert.False(t, Bounded(pool, c, res.Stats.Steps-1))
			}
		})
	}
}
