// Package coachpanel shows coach explanations inside a page screen. It polls
// the coach service on a short tick while a request is in flight.
package coachpanel

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/coach"
	"github.com/abhisek/afmlab/internal/ui/theme"
)

const pollInterval = 150 * time.Millisecond

// pollMsg asks the panel to check for a finished explanation.
type pollMsg struct{}

// Panel is the coach section of a page. The zero value is a panel with no
// coach; it renders nothing.
type Panel struct {
	svc     *coach.Service
	key     string // which prediction the explanation belongs to
	loading bool
	exp     *coach.Explanation
	errMsg  string
}

// New creates a panel backed by svc. svc may be nil.
func New(svc *coach.Service) Panel {
	return Panel{svc: svc}
}

// Available reports whether the panel can explain anything.
func (p Panel) Available() bool {
	return p.svc != nil
}

// Loading reports whether a request is in flight.
func (p Panel) Loading() bool {
	return p.loading
}

// Request asks the coach to explain in. key identifies the prediction; an
// explanation that arrives after Reset or for an older key is discarded.
func (p Panel) Request(key string, in coach.Input) (Panel, tea.Cmd) {
	if p.svc == nil {
		return p, nil
	}
	p.svc.Request(context.Background(), in)
	p.key, p.loading, p.exp, p.errMsg = key, true, nil, ""
	return p, poll()
}

// Reset clears the panel when the prediction changes.
func (p Panel) Reset() Panel {
	p.key, p.loading, p.exp, p.errMsg = "", false, nil, ""
	return p
}

// Update handles poll ticks. It must see every message the screen receives.
func (p Panel) Update(msg tea.Msg, currentKey string) (Panel, tea.Cmd) {
	if _, ok := msg.(pollMsg); !ok || !p.loading {
		return p, nil
	}
	res, ok := p.svc.Consume()
	if !ok {
		return p, poll()
	}
	p.loading = false
	if p.key != currentKey {
		return p.Reset(), nil
	}
	p.exp = res.Explanation
	if res.Err != nil {
		p.errMsg = "coach offline: " + res.Err.Error()
	}
	return p, nil
}

// Explanation returns the current explanation, if any.
func (p Panel) Explanation() *coach.Explanation {
	return p.exp
}

// View renders the explanation wrapped to width.
func (p Panel) View(width int) string {
	switch {
	case p.svc == nil:
		return ""
	case p.loading:
		return theme.Hint.Render("Coach is thinking...")
	case p.exp == nil:
		return theme.Hint.Render("Press ? for a coach explanation")
	}

	body := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
	s := theme.Title.Render("Coach") + " " + theme.Hint.Render("("+p.exp.Source+")") + "\n" +
		body.Render(p.exp.Summary)
	if p.exp.Suggestion != "" {
		s += "\n" + body.Foreground(theme.Secondary).Render("→ "+p.exp.Suggestion)
	}
	if p.errMsg != "" {
		s += "\n" + lipgloss.NewStyle().Width(width).Foreground(theme.Error).Render(p.errMsg)
	}
	return s
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}
