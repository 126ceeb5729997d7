package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/wisein/internal/config"
	"github.com/abhisek/wisein/internal/metrics"
	"github.com/abhisek/wisein/internal/tutor"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <topic>",
	Short: "Plan a quiz on a topic with the constraint solver",
	Long: `Plan a quiz on a topic. The solver picks questions that satisfy the
configured size, format and category limits; when it cannot, a single
question quiz is planned instead. Unknown topics fall back to the
configured fallback topic.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().Int("size", 0, "Number of questions (overrides WISEIN_QUIZ_SIZE)")
	quizCmd.Flags().Int("max-mc", 0, "Maximum multiple choice questions (overrides WISEIN_QUIZ_MAX_MC)")
	quizCmd.Flags().Int("min-grammar", 0, "Minimum grammar questions (overrides WISEIN_QUIZ_MIN_GRAMMAR)")
	quizCmd.Flags().Bool("play", false, "Answer the quiz in the terminal")
	quizCmd.Flags().Bool("json", false, "Print the plan as JSON")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")
	play, _ := cmd.Flags().GetBool("play")
	asJSON, _ := cmd.Flags().GetBool("json")

	e, err := openEnv(cmd, envOptions{adjust: func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("size") {
			cfg.Quiz.Size, _ = flags.GetInt("size")
		}
		if flags.Changed("max-mc") {
			cfg.Quiz.MaxMultipleChoice, _ = flags.GetInt("max-mc")
		}
		if flags.Changed("min-grammar") {
			cfg.Quiz.MinGrammar, _ = flags.GetInt("min-grammar")
		}
	}})
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if play {
		sess, err := e.svc.StartQuiz(ctx, topic)
		if err != nil {
			return quizError(topic, err)
		}
		return playSession(ctx, sess, cmd.InOrStdin(), out)
	}

	plan, err := e.svc.PlanQuiz(ctx, topic)
	if err != nil {
		return quizError(topic, err)
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	printPlan(out, e.svc, plan)
	return nil
}

func quizError(topic string, err error) error {
	if errors.Is(err, tutor.ErrNoQuestions) {
		return fmt.Errorf("no quiz could be planned for %q: %w", topic, err)
	}
	return fmt.Errorf("plan quiz: %w", err)
}

func printPlan(w io.Writer, svc *tutor.Service, plan *tutor.Plan) {
	fmt.Fprintf(w, "Quiz on %s", plan.Topic)
	if !strings.EqualFold(plan.Topic, plan.Requested) {
		fmt.Fprintf(w, " (no questions on %q)", plan.Requested)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Constraints: %s\n", metrics.SummarizeConstraints(plan.Constraints))
	if plan.Fallback {
		fmt.Fprintln(w, "Full constraints could not be met; planned a relaxed quiz.")
	}
	fmt.Fprintf(w, "Search:      %s\n\n", metrics.Describe(metrics.EngineCSP, plan.Stats))

	printItemHeader(w)
	for _, it := range plan.Items {
		card, _ := svc.Card(it.ID)
		printItemRow(w, it, card.Prompt)
	}
}
