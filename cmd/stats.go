package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/wisein/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent solver and interview searches and sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		engine, _ := cmd.Flags().GetString("engine")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		searches, err := s.EventRepo().QuerySearchEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query search events: %w", err)
		}

		fmt.Fprintln(out, "Searches")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		if len(searches) == 0 {
			fmt.Fprintln(out, "No searches recorded yet.")
		} else {
			fmt.Fprintf(out, "%-5s  %-19s  %-11s  %-12s  %-3s  %6s  %4s  %9s  %s\n",
				"ID", "Timestamp", "Engine", "Topic", "OK", "Steps", "Size", "Seconds", "Detail")
			var runs, steps int
			for _, e := range searches {
				if engine != "" && e.Engine != engine {
					continue
				}
				ok := "✓"
				if !e.Success {
					ok = "✗"
				}
				fmt.Fprintf(out, "%-5d  %-19s  %-11s  %-12s  %-3s  %6d  %4d  %9.4f  %s\n",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					e.Engine,
					truncate(e.Topic, 12),
					ok,
					e.Steps,
					e.Size,
					e.Elapsed.Seconds(),
					e.Detail,
				)
				runs++
				steps += e.Steps
			}
			if runs > 0 {
				fmt.Fprintf(out, "\n%d run(s), %.1f steps on average\n", runs, float64(steps)/float64(runs))
			}
		}

		sessions, err := s.EventRepo().QuerySessionEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query session events: %w", err)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Sessions")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}
		fmt.Fprintf(out, "%-19s  %-8s  %-10s  %-6s  %-12s  %6s  %7s  %5s\n",
			"Timestamp", "Session", "Mode", "Action", "Topic", "Served", "Correct", "Secs")
		for _, e := range sessions {
			fmt.Fprintf(out, "%-19s  %-8s  %-10s  %-6s  %-12s  %6d  %7d  %5d\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.SessionID, 8),
				e.Mode,
				e.Action,
				truncate(e.Topic, 12),
				e.QuestionsServed,
				e.CorrectAnswers,
				e.DurationSecs,
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of events to show per table")
	statsCmd.Flags().StringP("engine", "e", "", "Only show searches by this engine (csp or adversarial)")
}
