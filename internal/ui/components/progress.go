package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/afm"
	"github.com/abhisek/afmlab/internal/ui/theme"
)

// ProbabilityBar renders a success probability as a bar colored by its ZPD
// zone, with tick marks at the band edges.
type ProbabilityBar struct {
	Label       string
	Probability float64
	Width       int
}

// NewProbabilityBar creates a probability bar.
func NewProbabilityBar(label string, p float64, width int) ProbabilityBar {
	return ProbabilityBar{Label: label, Probability: p, Width: width}
}

// View renders the bar, the percentage and the zone badge on one line and
// the band ticks below it.
func (p ProbabilityBar) View() string {
	zone := afm.Classify(p.Probability)

	var head string
	if p.Label != "" {
		head = theme.Body.Render(p.Label) + "  "
	}
	tail := fmt.Sprintf("  %5.1f%%  %s", p.Probability*100, theme.ZoneBadge(zone))

	barWidth := p.Width - lipgloss.Width(head) - lipgloss.Width(tail)
	if barWidth < 10 {
		barWidth = 10
	}

	filled := int(float64(barWidth)*p.Probability + 0.5)
	filled = max(0, min(filled, barWidth))

	bar := theme.ZoneColor(zone).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))

	ticks := []rune(strings.Repeat(" ", barWidth))
	for _, edge := range []float64{afm.ZPDLower, afm.ZPDUpper} {
		if i := int(float64(barWidth) * edge); i < barWidth {
			ticks[i] = '╵'
		}
	}
	pad := strings.Repeat(" ", lipgloss.Width(head))

	return head + bar + tail + "\n" + pad + theme.Hint.Render(string(ticks))
}

// TaskProgress renders one marker per task, e.g. "●●◉○○○○○".
func TaskProgress(done, current, total int) string {
	var b strings.Builder
	for i := range total {
		switch {
		case i < done:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("●"))
		case i == current:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("◉"))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("○"))
		}
	}
	return b.String()
}
