package poolgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a technical interviewer writing short quiz questions for software engineers.

Rules:
- Every question is about the requested topic.
- Mix difficulty levels: include easy, medium and hard questions.
- Use "multiple_choice" unless the question is a yes/no check ("true_false") or asks to fill in code ("code_completion").
- Use category "grammar" for syntax and code questions and "vocab" for concepts, services and terms.
- For multiple choice, list the options inside the question text, one per line ("a) ...").
- The answer is a short lowercase keyword; a learner's reply is accepted when the keyword contains it.
- Keep feedback to one sentence. The wrong-answer feedback names the correct answer.
- Do not repeat any question from the "already in the bank" list.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Number of questions: %d\n", input.Count)

	b.WriteString("\nAlready in the bank:\n")
	b.WriteString(buildDedup(input.Existing, cfg.MaxExisting))

	return b.String()
}

// buildDedup formats existing prompts for the prompt, keeping the most
// recent max entries. Returns "None" when there are none.
func buildDedup(existing []string, max int) string {
	if len(existing) == 0 {
		return "None"
	}

	if max > 0 && len(existing) > max {
		existing = existing[len(existing)-max:]
	}

	var b strings.Builder
	for i, q := range existing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
