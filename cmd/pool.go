package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/store"
	"github.com/abhisek/wisein/internal/tutor"
	"github.com/spf13/cobra"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Inspect and grow the question bank",
}

var poolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions in the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		repo := e.store.QuestionRepo()
		var recs []store.QuestionRecord
		if topic != "" {
			recs, err = repo.ByTopic(ctx, topic)
		} else {
			recs, err = repo.List(ctx)
		}
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No questions found.")
			return nil
		}

		var pool question.Pool
		fmt.Fprintf(out, "%-6s  ", "Source")
		printItemHeader(out)
		for _, rec := range recs {
			fmt.Fprintf(out, "%-6s  ", rec.Source)
			printItemRow(out, rec.Item, rec.Card.Prompt)
			pool = append(pool, rec.Item)
		}
		fmt.Fprintf(out, "\n%d question(s), topics: %s\n", len(pool), strings.Join(pool.Topics(), ", "))
		return nil
	},
}

var poolSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Restore the built-in starter questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		if err := tutor.SeedStore(cmd.Context(), e.store.QuestionRepo()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d starter questions.\n", len(question.Seed()))
		return nil
	},
}

var poolGenerateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate new questions on a topic with the configured LLM",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		count := e.cfg.Generate.BatchSize
		if cmd.Flags().Changed("count") {
			count, _ = cmd.Flags().GetInt("count")
		}

		first := e.svc.Catalog().NextID()
		n, err := e.svc.Generate(cmd.Context(), topic, count)
		if errors.Is(err, tutor.ErrGenerationDisabled) {
			return fmt.Errorf("%w: set WISEIN_LLM_PROVIDER or a provider API key", err)
		}
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added %d question(s) on %s using %s.\n\n", n, topic, e.status())
		if n == 0 {
			return nil
		}
		printItemHeader(out)
		for _, it := range e.svc.Catalog().Pool() {
			if it.ID < first {
				continue
			}
			card, _ := e.svc.Card(it.ID)
			printItemRow(out, it, card.Prompt)
		}
		return nil
	},
}

func init() {
	poolListCmd.Flags().StringP("topic", "t", "", "Only list questions whose topic contains this text")
	poolGenerateCmd.Flags().IntP("count", "n", 0, "Number of questions (defaults to WISEIN_GENERATE_BATCH)")

	poolCmd.AddCommand(poolListCmd)
	poolCmd.AddCommand(poolSeedCmd)
	poolCmd.AddCommand(poolGenerateCmd)
}

func printItemHeader(w io.Writer) {
	fmt.Fprintf(w, "%-5s  %-12s  %-6s  %-15s  %-8s  %s\n",
		"ID", "Topic", "Level", "Type", "Category", "Question")
	fmt.Fprintln(w, strings.Repeat("─", 100))
}

func printItemRow(w io.Writer, it question.Item, prompt string) {
	fmt.Fprintf(w, "%-5d  %-12s  %-6s  %-15s  %-8s  %s\n",
		it.ID, truncate(it.Topic, 12), it.Difficulty, it.Format, it.Category,
		truncate(strings.ReplaceAll(prompt, "\n", " "), 48))
}
