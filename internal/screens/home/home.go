package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/activity"
	"github.com/abhisek/afmlab/internal/coach"
	"github.com/abhisek/afmlab/internal/router"
	"github.com/abhisek/afmlab/internal/screen"
	"github.com/abhisek/afmlab/internal/screens/explorer"
	"github.com/abhisek/afmlab/internal/screens/history"
	"github.com/abhisek/afmlab/internal/screens/simulator"
	"github.com/abhisek/afmlab/internal/store"
	"github.com/abhisek/afmlab/internal/ui/components"
	"github.com/abhisek/afmlab/internal/ui/theme"
)

const banner = "A · F · M · L · A · B"

const tagline = "Additive Factor Model, hands on"

type statsLoadedMsg struct {
	Stats *store.Stats
	Err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu      components.Menu
	eventRepo store.EventRepo
	stats     *store.Stats
	coachMode string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. Any dependency may be nil: without a store
// nothing is recorded and history is disabled, without a coach the ? key
// does nothing.
func New(eventRepo store.EventRepo, rec *activity.Recorder, coachSvc *coach.Service) *HomeScreen {
	newSimulator := func() screen.Screen { return simulator.New(rec, coachSvc) }

	items := []components.MenuItem{
		{
			Label: "LEARNING EXPLORER",
			Hint:  "Answer eight tasks and watch the model's prediction move",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: explorer.New(rec, coachSvc, newSimulator)}
				}
			},
		},
		{
			Label: "ADAPTIVE SIMULATOR",
			Hint:  "Tune θ, β, γ and T and simulate a student",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: newSimulator()}
				}
			},
		},
		{
			Label:    "HISTORY",
			Hint:     "Past sessions and answers",
			Disabled: eventRepo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(eventRepo)}
				}
			},
		},
		{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	mode := "coach: off"
	if coachSvc != nil && coachSvc.Enabled() {
		mode = "coach: on"
	} else if coachSvc != nil {
		mode = "coach: offline"
	}

	return &HomeScreen{
		menu:      components.NewMenu(items),
		eventRepo: eventRepo,
		coachMode: mode,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.eventRepo == nil {
		return nil
	}
	repo := h.eventRepo
	return func() tea.Msg {
		st, err := repo.Stats(context.Background())
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err == nil {
			h.stats = msg.Stats
		}
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	sections := []string{
		center.Render(theme.Title.Render(banner)),
		center.Render(theme.Subtitle.Render(tagline)),
		center.Render(h.renderStats()),
		lipgloss.NewStyle().Width(cw).Render(h.menu.View()),
	}
	return components.CenteredFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStats() string {
	parts := []string{h.coachMode}
	if h.stats != nil {
		parts = append(parts,
			fmt.Sprintf("%d explorer answers", h.stats.ExplorerAnswers),
			fmt.Sprintf("%d simulated responses", h.stats.SimulatorResponses))
	}
	return theme.Hint.Render(strings.Join(parts, "  ·  "))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
