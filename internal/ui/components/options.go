package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/ui/theme"
)

// OptionList is a lettered multiple-choice list. The cursor moves until an
// answer is chosen; after that the list only shows feedback.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 until answered
	Correct int // -1 until answered
}

// NewOptionList creates an unanswered option list.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options, Chosen: -1, Correct: -1}
}

// Answered reports whether feedback is being shown.
func (o OptionList) Answered() bool {
	return o.Chosen >= 0
}

// Reveal switches the list to feedback mode.
func (o OptionList) Reveal(chosen, correct int) OptionList {
	o.Chosen, o.Correct = chosen, correct
	return o
}

// Update moves the cursor. It returns the picked index, or -1, so the caller
// can apply the answer to its own state.
func (o OptionList) Update(msg tea.Msg) (OptionList, int) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || o.Answered() {
		return o, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter", "space":
		return o, o.Cursor
	default:
		if i := optionIndex(key); i >= 0 && i < len(o.Options) {
			o.Cursor = i
			return o, i
		}
	}
	return o, -1
}

// optionIndex maps a-d (or 1-4) to an option index.
func optionIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	switch c := key[0]; {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= '1' && c <= '9':
		return int(c - '1')
	}
	return -1
}

// View renders the options, wrapped to width.
func (o OptionList) View(width int) string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor && !o.Answered() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		style := theme.Unselected
		switch {
		case o.Answered() && i == o.Correct:
			style = theme.Correct
			line += "  ✓"
		case o.Answered() && i == o.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case o.Answered():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
