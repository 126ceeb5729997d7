package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/wisein/internal/adversarial"
	"github.com/abhisek/wisein/internal/config"
	"github.com/abhisek/wisein/internal/metrics"
	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/tutor"
	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview <topic>",
	Short: "Run an adversarial interview on a topic",
	Long: `Run an interview in the terminal. Each question is picked by a
two-ply minimax search that assumes you answer in the way that scores
least, so hard questions come first.

With --next, print only the question that would be asked after the IDs
given in --asked.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInterview,
}

func init() {
	interviewCmd.Flags().Int("length", 0, "Questions per interview (overrides WISEIN_INTERVIEW_LENGTH)")
	interviewCmd.Flags().Bool("next", false, "Print the next pick and exit")
	interviewCmd.Flags().IntSlice("asked", nil, "IDs already asked, used with --next")
}

func runInterview(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")
	next, _ := cmd.Flags().GetBool("next")

	e, err := openEnv(cmd, envOptions{adjust: func(cfg *config.Config) {
		if cmd.Flags().Changed("length") {
			cfg.Interview.Length, _ = cmd.Flags().GetInt("length")
		}
	}})
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if !next {
		sess, err := e.svc.StartInterview(ctx, topic)
		if err != nil {
			return interviewError(topic, err)
		}
		return playSession(ctx, sess, cmd.InOrStdin(), out)
	}

	asked, _ := cmd.Flags().GetIntSlice("asked")
	history := adversarial.NewHistory()
	for _, id := range asked {
		history.Add(question.ID(id))
	}

	step, err := e.svc.NextInterviewQuestion(ctx, topic, history)
	if err != nil {
		return interviewError(topic, err)
	}
	fmt.Fprintf(out, "Topic:  %s\n", step.Topic)
	fmt.Fprintf(out, "Search: %s\n\n", metrics.Describe(metrics.EngineAdversarial, step.Stats))
	printItemHeader(out)
	printItemRow(out, step.Item, step.Card.Prompt)
	return nil
}

func interviewError(topic string, err error) error {
	if errors.Is(err, tutor.ErrNoQuestions) {
		return fmt.Errorf("no interview question left for %q: %w", topic, err)
	}
	return fmt.Errorf("interview: %w", err)
}
