// Package explorer is the Learning Explorer screen: eight tasks with a live
// view of the AFM prediction for each.
package explorer

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/activity"
	"github.com/abhisek/afmlab/internal/coach"
	exp "github.com/abhisek/afmlab/internal/explorer"
	"github.com/abhisek/afmlab/internal/router"
	"github.com/abhisek/afmlab/internal/screen"
	"github.com/abhisek/afmlab/internal/screens/coachpanel"
	"github.com/abhisek/afmlab/internal/store"
	"github.com/abhisek/afmlab/internal/ui/components"
	"github.com/abhisek/afmlab/internal/ui/layout"
	"github.com/abhisek/afmlab/internal/ui/theme"
)

// NextScreen builds the screen shown after the last task, normally the
// simulator. Nil disables the hand-over.
type NextScreen func() screen.Screen

// ExplorerScreen implements screen.Screen for one explorer session.
type ExplorerScreen struct {
	state     exp.State
	options   components.OptionList
	coach     coachpanel.Panel
	rec       *activity.Recorder
	next      NextScreen
	sessionID string
	closed    bool
}

var _ screen.Screen = (*ExplorerScreen)(nil)
var _ screen.KeyHintProvider = (*ExplorerScreen)(nil)
var _ screen.StatusProvider = (*ExplorerScreen)(nil)
var _ screen.Closer = (*ExplorerScreen)(nil)

// New starts an explorer session. rec and coachSvc may be nil.
func New(rec *activity.Recorder, coachSvc *coach.Service, next NextScreen) *ExplorerScreen {
	if rec == nil {
		rec = activity.Disabled()
	}
	s := &ExplorerScreen{
		state: exp.New(),
		coach: coachpanel.New(coachSvc),
		rec:   rec,
		next:  next,
	}
	s.sessionID = rec.StartPage(context.Background(), store.PageExplorer)
	s.resetOptions()
	return s
}

func (s *ExplorerScreen) Init() tea.Cmd {
	return nil
}

func (s *ExplorerScreen) Title() string {
	return "Learning Explorer"
}

// Status shows the current prediction in the header.
func (s *ExplorerScreen) Status() string {
	if s.state.Completed() {
		return fmt.Sprintf("θ = %.1f", s.state.Ability)
	}
	return fmt.Sprintf("P = %.1f%%", s.state.Probability()*100)
}

func (s *ExplorerScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.state.Completed() && s.next != nil:
		return []layout.KeyHint{
			{Key: "S", Description: "Open simulator"},
			{Key: "Esc", Description: "Back"},
		}
	case s.state.Completed():
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.state.Answered:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next task"}}
		return append(hints, s.commonHints()...)
	}
	hints := []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
	}
	return append(hints, s.commonHints()...)
}

func (s *ExplorerScreen) commonHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.coach.Available() {
		hints = append(hints, layout.KeyHint{Key: "?", Description: "Coach"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Close records the end of the session. Safe to call more than once.
func (s *ExplorerScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	ctx := context.Background()
	s.rec.SaveSnapshot(ctx, s.sessionID, store.PageExplorer, s.state.Snapshot())
	s.rec.EndPage(ctx, s.sessionID, store.PageExplorer)
}

// State returns the current explorer state.
func (s *ExplorerScreen) State() exp.State {
	return s.state
}

func (s *ExplorerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.coach, cmd = s.coach.Update(msg, s.coachKey())
	if cmd != nil {
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key := kmsg.String(); {
	case key == "?":
		return s.requestCoach()
	case s.state.Completed():
		if (key == "s" || key == "enter") && s.next != nil {
			next := s.next()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case s.state.Answered:
		if key == "enter" || key == "n" || key == "right" || key == "space" {
			s.apply(exp.NextTaskEvent{})
		}
	default:
		var picked int
		s.options, picked = s.options.Update(msg)
		if picked >= 0 {
			s.apply(exp.SelectAnswerEvent{Option: picked})
		}
	}
	return s, nil
}

// apply runs ev through the state and keeps the view in step.
func (s *ExplorerScreen) apply(ev exp.Event) {
	before := s.state
	s.state = s.state.Apply(ev)

	switch {
	case s.state.TaskIndex != before.TaskIndex:
		s.resetOptions()
		s.coach = s.coach.Reset()
	case s.state.Answered && !before.Answered:
		t, _ := s.state.CurrentTask()
		s.options = s.options.Reveal(s.state.Selected, t.CorrectIndex)
		s.coach = s.coach.Reset()
		s.rec.ExplorerAnswer(context.Background(), s.sessionID, before, s.state)
	}
}

func (s *ExplorerScreen) resetOptions() {
	if t, ok := s.state.CurrentTask(); ok {
		s.options = components.NewOptionList(t.Options)
	}
}

func (s *ExplorerScreen) coachKey() string {
	return fmt.Sprintf("%d/%t", s.state.TaskIndex, s.state.Answered)
}

func (s *ExplorerScreen) requestCoach() (screen.Screen, tea.Cmd) {
	in, ok := coach.FromExplorer(s.state)
	if !ok {
		return s, nil
	}
	var cmd tea.Cmd
	s.coach, cmd = s.coach.Request(s.coachKey(), in)
	return s, cmd
}

func (s *ExplorerScreen) View(width, height int) string {
	snap := s.state.Snapshot()
	if snap.Completed {
		return s.renderSummary(snap, width)
	}

	lw, rw, stacked := layout.Columns(width)
	left := components.Panel("", s.renderTask(snap, lw-4), lw, true)
	right := components.Panel("Model", s.renderModel(snap, rw-4), rw, false)
	return layout.JoinColumns(left, right, stacked)
}

func (s *ExplorerScreen) renderTask(snap exp.Snapshot, w int) string {
	t := snap.Task
	var b strings.Builder

	badge := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Secondary).Bold(true).Padding(0, 1)
	fmt.Fprintf(&b, "%s  %s\n\n", badge.Render(t.Concept.DisplayName()),
		theme.Hint.Render(fmt.Sprintf("Task %d of %d", snap.TaskIndex+1, snap.TaskCount)))
	b.WriteString(theme.Title.Render(t.Title) + "\n")
	b.WriteString(lipgloss.NewStyle().Width(w).Foreground(theme.TextDim).Render(t.Description) + "\n\n")
	if t.Code != "" {
		b.WriteString(theme.Code.Render(t.Code) + "\n\n")
	}
	b.WriteString(lipgloss.NewStyle().Width(w).Foreground(theme.Text).Bold(true).Render(t.Question) + "\n\n")
	b.WriteString(s.options.View(w))

	if snap.Answered {
		verdict := theme.Incorrect.Render("✗ Not quite.")
		if t.Correct {
			verdict = theme.Correct.Render("✓ Correct!")
		}
		b.WriteString("\n" + verdict + "\n")
		b.WriteString(lipgloss.NewStyle().Width(w).Foreground(theme.Text).Render(snap.Explanation) + "\n")
	}
	return b.String()
}

func (s *ExplorerScreen) renderModel(snap exp.Snapshot, w int) string {
	c := snap.Concept
	var b strings.Builder

	b.WriteString(components.NewProbabilityBar("P(success)", snap.Probability, w).View() + "\n\n")
	b.WriteString(theme.Formula.Render(snap.Formula) + "\n\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", theme.Subtitle.Render(fmt.Sprintf("%-16s", label)), theme.Body.Render(value))
	}
	row("Ability θ", fmt.Sprintf("%.1f", snap.Ability))
	row("Difficulty β", fmt.Sprintf("%.2f  %s", c.Difficulty, dots(c.Dots)))
	row("Learning rate γ", fmt.Sprintf("%.2f", c.LearningRate))
	row("Practice T", fmt.Sprint(c.Opportunities))

	b.WriteString("\n" + components.TaskProgress(snap.TaskIndex, snap.TaskIndex, snap.TaskCount) + "\n")

	if snap.Insight != "" {
		b.WriteString("\n" + theme.Title.Render("Insight") + "\n")
		b.WriteString(lipgloss.NewStyle().Width(w).Foreground(theme.Text).Render(snap.Insight) + "\n")
	}
	if v := s.coach.View(w); v != "" {
		b.WriteString("\n" + v + "\n")
	}
	return b.String()
}

func dots(n int) string {
	filled := lipgloss.NewStyle().Foreground(theme.Accent).Render(strings.Repeat("●", n))
	empty := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("○", exp.MaxDifficultyDots-n))
	return filled + empty
}

func (s *ExplorerScreen) renderSummary(snap exp.Snapshot, width int) string {
	cw := components.ContentWidth(width)
	body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Explorer complete") + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Final ability θ = %.1f", snap.Ability)) + "\n")
	for _, sec := range snap.Summary {
		b.WriteString("\n" + theme.Selected.Render(sec.Heading) + "\n")
		for _, item := range sec.Items {
			b.WriteString(body.Render("  • "+item) + "\n")
		}
		if sec.Body != "" {
			b.WriteString(body.Render(sec.Body) + "\n")
		}
	}
	if s.next != nil {
		b.WriteString("\n" + theme.Hint.Render("Press S to experiment with the parameters in the simulator."))
	}
	return lipgloss.NewStyle().Width(width).Padding(1, 2).Render(b.String())
}
