package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/wisein/internal/metrics"
	"github.com/abhisek/wisein/internal/tutor"
)

// playSession asks the session's questions on out and reads answers
// line by line from in until the session ends or input closes.
func playSession(ctx context.Context, sess *tutor.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	lastEngine := ""

	for !sess.Done() {
		item, card, ok := sess.Current()
		if !ok {
			break
		}
		served, _ := sess.Score()
		fmt.Fprintf(out, "\nQ%d/%d  [%s · %s · %s]\n", served+1, sess.Total(), item.Difficulty, item.Format, item.Category)
		engine, stats := sess.LastSearch()
		if sess.Mode == tutor.ModeInterview || engine != lastEngine {
			if desc := metrics.Describe(engine, stats); desc != "" {
				fmt.Fprintf(out, "  (%s)\n", desc)
			}
			lastEngine = engine
		}

		fmt.Fprintln(out, card.Prompt)
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			continue
		}

		fb, err := sess.Answer(ctx, answer)
		if err != nil {
			return err
		}
		if fb.Correct {
			fmt.Fprintf(out, "✓ %s\n", fb.Message)
		} else {
			fmt.Fprintf(out, "✗ %s (expected: %s)\n", fb.Message, fb.Expected)
		}
	}

	served, correct := sess.Score()
	fmt.Fprintf(out, "\nDone! You got %d of %d right.\n", correct, served)
	return nil
}
