package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for centered cards.
func ContentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CenteredFrame wraps content in a double border and centers it in the
// given area.
func CenteredFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel renders a titled rounded card at width w. Active panels use the
// primary border color.
func Panel(title, body string, w int, active bool) string {
	style := theme.Card
	if active {
		style = theme.ActiveCard
	}
	if title != "" {
		body = theme.Title.Render(title) + "\n" + body
	}
	return style.Width(w).Render(body)
}
