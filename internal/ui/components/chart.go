package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/afm"
	"github.com/abhisek/afmlab/internal/ui/theme"
)

// CurveChart plots a learning curve: probability (0-100%) against practice
// count. The ZPD band is shaded and the current point is marked.
type CurveChart struct {
	Points  []afm.CurvePoint
	Current afm.CurvePoint
	Width   int
	Height  int
}

const axisWidth = 5 // "100% "

// View renders the chart as Height plot rows plus an x axis.
func (c CurveChart) View() string {
	if len(c.Points) == 0 || c.Height < 3 {
		return ""
	}
	cols := c.Width - axisWidth - 1
	if cols < len(c.Points) {
		cols = len(c.Points)
	}
	rows := c.Height

	maxT := c.Points[len(c.Points)-1].Practice
	if maxT <= 0 {
		maxT = 1
	}
	colOf := func(t int) int { return t * (cols - 1) / maxT }
	rowOf := func(p float64) int {
		r := int((1-p)*float64(rows-1) + 0.5)
		return max(0, min(r, rows-1))
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}

	// Shade the ZPD band.
	lo, hi := rowOf(afm.ZPDUpper), rowOf(afm.ZPDLower)
	for r := lo; r <= hi; r++ {
		for x := range grid[r] {
			grid[r][x] = '·'
		}
	}

	// Interpolate between neighbouring points so the curve is continuous.
	for i, pt := range c.Points {
		x0, y0 := colOf(pt.Practice), rowOf(pt.Probability)
		grid[y0][x0] = '•'
		if i+1 < len(c.Points) {
			next := c.Points[i+1]
			x1 := colOf(next.Practice)
			for x := x0 + 1; x < x1; x++ {
				frac := float64(x-x0) / float64(x1-x0)
				p := pt.Probability + frac*(next.Probability-pt.Probability)
				grid[rowOf(p)][x] = '•'
			}
		}
	}
	cx, cy := colOf(min(c.Current.Practice, maxT)), rowOf(c.Current.Probability)

	band := lipgloss.NewStyle().Foreground(theme.Border)
	curve := lipgloss.NewStyle().Foreground(theme.Secondary)
	marker := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var b strings.Builder
	for r, row := range grid {
		label := "    "
		switch r {
		case 0:
			label = "100%"
		case rowOf(0.5):
			label = " 50%"
		case rows - 1:
			label = "  0%"
		}
		b.WriteString(theme.Hint.Render(label) + " ")
		for x, ch := range row {
			switch {
			case r == cy && x == cx:
				b.WriteString(marker.Render("◆"))
			case ch == '•':
				b.WriteString(curve.Render("•"))
			case ch == '·':
				b.WriteString(band.Render("·"))
			default:
				b.WriteRune(ch)
			}
		}
		b.WriteString("\n")
	}

	axis := []rune(strings.Repeat(" ", cols))
	for _, t := range []int{0, maxT / 4, maxT / 2, 3 * maxT / 4, maxT} {
		lbl := fmt.Sprint(t)
		start := min(colOf(t), cols-len(lbl))
		copy(axis[start:], []rune(lbl))
	}
	b.WriteString(strings.Repeat(" ", axisWidth) + theme.Hint.Render(string(axis)))
	b.WriteString("\n" + strings.Repeat(" ", axisWidth) + theme.Hint.Render("practice opportunities (T)"))
	return b.String()
}
