package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wisein/internal/ui/theme"
)

// ProgressBar shows how far a session has come, e.g. "Q 2/5 ███░░".
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	label := fmt.Sprintf("Q %d/%d ", p.Done, p.Total)
	barWidth := max(p.Width-lipgloss.Width(label), 4)

	filled := 0
	if p.Total > 0 {
		filled = min(barWidth*p.Done/p.Total, barWidth)
	}

	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(label) +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
}
