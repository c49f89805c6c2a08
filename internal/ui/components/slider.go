package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/ui/theme"
)

// Slider renders a labelled horizontal slider for a bounded value.
type Slider struct {
	Label       string
	Display     string // formatted value
	Value       float64
	Min, Max    float64
	Focused     bool
	Highlighted bool
	Width       int
}

// View renders "label  ──●──────  value".
func (s Slider) View() string {
	labelStyle := theme.Unselected
	cursor := "  "
	if s.Focused {
		labelStyle = theme.Selected
		cursor = "▸ "
	}
	label := labelStyle.Render(cursor + s.Label)

	value := theme.Body.Render(s.Display)
	if s.Highlighted {
		value = theme.Highlight.Render(" " + s.Display + " ")
	}

	track := s.Width - lipgloss.Width(label) - lipgloss.Width(value) - 4
	if track < 8 {
		track = 8
	}

	pos := 0
	if s.Max > s.Min {
		pos = int((s.Value-s.Min)/(s.Max-s.Min)*float64(track-1) + 0.5)
	}
	pos = max(0, min(pos, track-1))

	knob := lipgloss.NewStyle().Foreground(theme.Secondary).Render("●")
	if s.Focused {
		knob = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("●")
	}
	line := lipgloss.NewStyle().Foreground(theme.Border)
	bar := line.Render(strings.Repeat("─", pos)) + knob + line.Render(strings.Repeat("─", track-1-pos))

	return label + "  " + bar + "  " + value
}
