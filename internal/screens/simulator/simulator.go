// Package simulator is the Adaptive Simulator screen: four AFM parameter
// sliders, a learning curve and simulated student responses.
package simulator

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/activity"
	"github.com/abhisek/afmlab/internal/coach"
	"github.com/abhisek/afmlab/internal/screen"
	"github.com/abhisek/afmlab/internal/screens/coachpanel"
	sim "github.com/abhisek/afmlab/internal/simulator"
	"github.com/abhisek/afmlab/internal/store"
	"github.com/abhisek/afmlab/internal/ui/components"
	"github.com/abhisek/afmlab/internal/ui/layout"
	"github.com/abhisek/afmlab/internal/ui/theme"
)

// highlightExpiredMsg fires when the earliest highlight ends.
type highlightExpiredMsg time.Time

// SimulatorScreen implements screen.Screen for one simulator session.
type SimulatorScreen struct {
	state      sim.State
	highlights sim.Highlights
	focus      int // index into sim.Params()
	editor     *components.NumberInput
	coach      coachpanel.Panel
	rec        *activity.Recorder
	now        func() time.Time
	sessionID  string
	closed     bool
}

var _ screen.Screen = (*SimulatorScreen)(nil)
var _ screen.KeyHintProvider = (*SimulatorScreen)(nil)
var _ screen.StatusProvider = (*SimulatorScreen)(nil)
var _ screen.Closer = (*SimulatorScreen)(nil)
var _ screen.Modal = (*SimulatorScreen)(nil)

// New starts a simulator session. rec and coachSvc may be nil.
func New(rec *activity.Recorder, coachSvc *coach.Service) *SimulatorScreen {
	if rec == nil {
		rec = activity.Disabled()
	}
	s := &SimulatorScreen{
		state: sim.New(),
		coach: coachpanel.New(coachSvc),
		rec:   rec,
		now:   time.Now,
	}
	s.sessionID = rec.StartPage(context.Background(), store.PageSimulator)
	return s
}

func (s *SimulatorScreen) Init() tea.Cmd {
	return nil
}

func (s *SimulatorScreen) Title() string {
	return "Adaptive Simulator"
}

// Status shows the current prediction in the header.
func (s *SimulatorScreen) Status() string {
	return fmt.Sprintf("P = %.1f%%", s.state.Probability()*100)
}

// Modal is true while a value is being typed, so Esc cancels the edit.
func (s *SimulatorScreen) Modal() bool {
	return s.editor != nil
}

func (s *SimulatorScreen) KeyHints() []layout.KeyHint {
	if s.editor != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Set"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Parameter"},
		{Key: "←→", Description: "Adjust"},
		{Key: "E", Description: "Type value"},
		{Key: "C/X", Description: "Correct/Incorrect"},
	}
	if s.coach.Available() {
		hints = append(hints, layout.KeyHint{Key: "?", Description: "Coach"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Close records the end of the session. Safe to call more than once.
func (s *SimulatorScreen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	ctx := context.Background()
	s.rec.SaveSnapshot(ctx, s.sessionID, store.PageSimulator, s.state.Snapshot(nil, s.now()))
	s.rec.EndPage(ctx, s.sessionID, store.PageSimulator)
}

// State returns the current simulator state.
func (s *SimulatorScreen) State() sim.State {
	return s.state
}

func (s *SimulatorScreen) focused() sim.Param {
	return sim.Params()[s.focus]
}

func (s *SimulatorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.coach, cmd = s.coach.Update(msg, s.coachKey())
	if cmd != nil {
		return s, cmd
	}

	switch msg := msg.(type) {
	case highlightExpiredMsg:
		s.highlights.Expire(time.Time(msg))
		return s, s.scheduleExpiry()

	case tea.KeyMsg:
		if s.editor != nil {
			return s.updateEditor(msg)
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SimulatorScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.focus > 0 {
			s.focus--
		}
	case "down", "j", "tab":
		if s.focus < len(sim.Params())-1 {
			s.focus++
		}
	case "left", "h", "-":
		s.setParam(s.focused(), s.state.Nudge(s.focused(), -1).Value(s.focused()))
	case "right", "l", "+", "=":
		s.setParam(s.focused(), s.state.Nudge(s.focused(), 1).Value(s.focused()))
	case "e", "enter":
		p := s.focused()
		ed := components.NewNumberInput(p.Symbol()+" =", sim.FormatValue(p, s.state.Value(p)))
		s.editor = &ed
		return s, ed.Init()
	case "c":
		return s, s.simulate(true)
	case "x":
		return s, s.simulate(false)
	case "?":
		var cmd tea.Cmd
		s.coach, cmd = s.coach.Request(s.coachKey(), coach.FromSimulator(s.state))
		return s, cmd
	}
	return s, nil
}

func (s *SimulatorScreen) updateEditor(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editor = nil
		return s, nil
	case "enter":
		v, ok := s.editor.Float()
		if !ok {
			return s, nil
		}
		s.setParam(s.focused(), v)
		s.editor = nil
		return s, nil
	}
	ed, cmd := s.editor.Update(msg)
	s.editor = &ed
	return s, cmd
}

// setParam applies a direct change. Direct changes are recorded but not
// highlighted; only simulated responses highlight.
func (s *SimulatorScreen) setParam(p sim.Param, v float64) {
	var changed []sim.Param
	s.state, changed = s.state.Apply(sim.SetParamEvent{Param: p, Value: v})
	if len(changed) == 0 {
		return
	}
	s.coach = s.coach.Reset()
	s.rec.ParamChange(context.Background(), s.sessionID, p, s.state)
}

func (s *SimulatorScreen) simulate(correct bool) tea.Cmd {
	var changed []sim.Param
	s.state, changed = s.state.Apply(sim.SimulateEvent{Correct: correct})
	s.highlights.Mark(s.now(), sim.HighlightDuration, changed...)
	s.coach = s.coach.Reset()
	s.rec.SimulatorResponse(context.Background(), s.sessionID, s.state)
	return s.scheduleExpiry()
}

// scheduleExpiry ticks when the earliest remaining highlight ends.
func (s *SimulatorScreen) scheduleExpiry() tea.Cmd {
	next, ok := s.highlights.Next()
	if !ok {
		return nil
	}
	return tea.Tick(max(next.Sub(s.now()), 0), func(t time.Time) tea.Msg {
		return highlightExpiredMsg(t)
	})
}

func (s *SimulatorScreen) coachKey() string {
	return fmt.Sprintf("%v/%v/%v/%d/%d", s.state.Theta, s.state.Beta, s.state.Gamma, s.state.Practice, len(s.state.Log))
}

func (s *SimulatorScreen) View(width, height int) string {
	snap := s.state.Snapshot(&s.highlights, s.now())

	lw, rw, stacked := layout.Columns(width)
	left := components.Panel("Parameters", s.renderControls(snap, lw-4), lw, true)

	chartHeight := 8
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		chartHeight = 12
	}
	right := components.Panel("Learning curve", s.renderCurve(snap, rw-4, chartHeight), rw, false)
	return layout.JoinColumns(left, right, stacked)
}

func (s *SimulatorScreen) renderControls(snap sim.Snapshot, w int) string {
	var b strings.Builder
	for i, pv := range snap.Params {
		slider := components.Slider{
			Label:       fmt.Sprintf("%s %-8s", pv.Symbol, pv.Label),
			Display:     pv.Display,
			Value:       pv.Value,
			Min:         pv.Range.Min,
			Max:         pv.Range.Max,
			Focused:     i == s.focus,
			Highlighted: pv.Highlighted,
			Width:       w,
		}
		b.WriteString(slider.View() + "\n")
		if i == s.focus && s.editor != nil {
			b.WriteString("    " + s.editor.View() + "\n")
		}
	}

	b.WriteString("\n" + components.NewProbabilityBar("P", snap.Probability, w).View() + "\n\n")
	b.WriteString(theme.Formula.Render(snap.Formula) + "\n")
	for _, step := range snap.Steps {
		b.WriteString(theme.Subtitle.Render(step) + "\n")
	}

	b.WriteString("\n" + theme.Title.Render("Simulated responses") + " " +
		theme.Hint.Render(fmt.Sprintf("(%d so far, next at T = %d)", snap.TotalLogged, snap.PracticeCount)) + "\n")
	if len(snap.Log) == 0 {
		b.WriteString(theme.Hint.Render("Press C or X to simulate a correct or incorrect answer.") + "\n")
	}
	for _, r := range snap.Log {
		mark := theme.Incorrect.Render("✗")
		if r.Correct {
			mark = theme.Correct.Render("✓")
		}
		fmt.Fprintf(&b, "%s T=%-3d predicted %5.1f%%\n", mark, r.Practice, r.Probability*100)
	}
	return b.String()
}

func (s *SimulatorScreen) renderCurve(snap sim.Snapshot, w, h int) string {
	chart := components.CurveChart{
		Points:  snap.Curve,
		Current: snap.CurrentPoint,
		Width:   w,
		Height:  h,
	}
	out := chart.View() + "\n\n" + theme.Hint.Render("Dotted band: zone of proximal development (40-80%)")
	if v := s.coach.View(w); v != "" {
		out += "\n\n" + lipgloss.NewStyle().Width(w).Render(v)
	}
	return out
}
