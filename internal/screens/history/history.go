package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/router"
	"github.com/abhisek/afmlab/internal/screen"
	"github.com/abhisek/afmlab/internal/store"
	"github.com/abhisek/afmlab/internal/ui/layout"
	"github.com/abhisek/afmlab/internal/ui/theme"
)

// historyLimit caps how many events are loaded per table.
const historyLimit = 200

type historyLoadedMsg struct {
	Sessions []sessionGroup
	Err      error
}

// sessionGroup is one page session and its events, newest first.
type sessionGroup struct {
	ID     string
	Header store.Activity // the latest start/end entry, if loaded
	Events []store.Activity
}

// HistoryScreen lists past page sessions; Enter expands one.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []sessionGroup
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		acts, err := s.eventRepo.History(context.Background(), store.QueryOpts{Limit: historyLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: groupBySession(acts)}
	}
}

// groupBySession keeps the order of first appearance, which is newest first
// since History returns events in descending sequence.
func groupBySession(acts []store.Activity) []sessionGroup {
	var out []sessionGroup
	index := make(map[string]int)
	for _, a := range acts {
		i, ok := index[a.SessionID]
		if !ok {
			i = len(out)
			index[a.SessionID] = i
			out = append(out, sessionGroup{ID: a.SessionID})
		}
		g := &out[i]
		if a.Kind == store.KindSession {
			if g.Header.Sequence == 0 {
				g.Header = a
			}
			continue
		}
		g.Events = append(g.Events, a)
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Open the explorer or the simulator!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, g := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		title := g.Header.Summary
		when := g.Header.Timestamp
		if title == "" {
			title = "session " + shortID(g.ID)
			if len(g.Events) > 0 {
				when = g.Events[0].Timestamp
			}
		}
		line := fmt.Sprintf("%s%s  %-28s %d events", prefix, when.Local().Format("Jan 02 15:04"), title, len(g.Events))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			if len(g.Events) == 0 {
				b.WriteString(theme.Hint.Render("      Nothing recorded in this session") + "\n")
			}
			for _, e := range g.Events {
				b.WriteString(lipgloss.NewStyle().Foreground(kindColor(e.Kind)).
					Render(fmt.Sprintf("      %s  %s", e.Timestamp.Local().Format("15:04:05"), e.Summary)))
				b.WriteString("\n")
			}
		}
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func kindColor(k store.ActivityKind) color.Color {
	switch k {
	case store.KindAnswer:
		return theme.Secondary
	case store.KindResponse:
		return theme.Accent
	case store.KindParam:
		return theme.Text
	default:
		return theme.TextDim
	}
}
