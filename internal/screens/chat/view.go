package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wisein/internal/ui/components"
	"github.com/abhisek/wisein/internal/ui/theme"
)

func (s *ChatScreen) View(width, height int) string {
	bottom := s.renderBottom(width)
	avail := max(height-lipgloss.Height(bottom)-1, 0)

	var blocks []string
	for _, m := range s.messages {
		blocks = append(blocks, renderMessage(m, width-4))
	}
	log := strings.Join(blocks, "\n\n")

	// Keep the newest lines in view.
	lines := strings.Split(log, "\n")
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	body := lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(lines, "\n"))

	gap := max(avail-lipgloss.Height(body), 0)
	return body + strings.Repeat("\n", gap+1) + bottom
}

func (s *ChatScreen) renderBottom(width int) string {
	var b strings.Builder
	if s.session != nil && !s.session.Done() {
		served, _ := s.session.Score()
		bar := components.ProgressBar{Done: served, Total: s.session.Total(), Width: min(width-4, 40)}
		b.WriteString("  " + bar.View() + "\n")
	}
	if s.busy {
		b.WriteString("  " + theme.Hint.Render("thinking...") + "\n")
	}
	b.WriteString("  " + s.input.View())
	return b.String()
}

func renderMessage(m message, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width-2, 10))
	switch m.role {
	case roleUser:
		return theme.UserName.Render("you") + "\n" + wrap.Foreground(theme.Text).Render(m.text)
	case roleQuestion:
		box := theme.QuestionBox.Width(max(width-2, 10)).Render(m.text)
		if m.tag != "" {
			return theme.AlgorithmTag.Render(m.tag) + "\n" + box
		}
		return box
	case roleCorrect:
		return theme.Correct.Render("✓ ") + wrap.Foreground(theme.Text).Render(m.text)
	case roleIncorrect:
		return theme.Incorrect.Render("✗ ") + wrap.Foreground(theme.Text).Render(m.text)
	default:
		return theme.BotName.Render("wisein") + "\n" + wrap.Foreground(theme.Text).Render(m.text)
	}
}
