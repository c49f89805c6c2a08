package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/ui/theme"
)

// NumberInput wraps bubbles/textinput for typing a decimal value.
type NumberInput struct {
	Model  textinput.Model
	errMsg string
}

// NewNumberInput creates a focused input prefilled with value.
func NewNumberInput(prompt, value string) NumberInput {
	ti := textinput.New()
	ti.Prompt = prompt + " "
	ti.CharLimit = 8
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return NumberInput{Model: ti}
}

// Init returns the initial command.
func (n NumberInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update filters keys to those that can form a decimal number.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && !strings.ContainsAny(key, "0123456789.-") {
			return n, nil
		}
	}
	n.errMsg = ""

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// Float parses the value. On failure the error is shown under the input.
func (n *NumberInput) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(n.Model.Value()), 64)
	if err != nil {
		n.errMsg = "not a number"
		return 0, false
	}
	return v, true
}

// View renders the input.
func (n NumberInput) View() string {
	view := n.Model.View()
	if n.errMsg != "" {
		view += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+n.errMsg)
	}
	return view
}
