package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afmlab/internal/activity"
	"github.com/abhisek/afmlab/internal/coach"
	"github.com/abhisek/afmlab/internal/router"
	"github.com/abhisek/afmlab/internal/screen"
	"github.com/abhisek/afmlab/internal/screens/explorer"
	"github.com/abhisek/afmlab/internal/screens/home"
	"github.com/abhisek/afmlab/internal/screens/simulator"
	"github.com/abhisek/afmlab/internal/store"
	"github.com/abhisek/afmlab/internal/ui/layout"
)

// Start selects the first screen.
type Start int

const (
	StartHome Start = iota
	StartExplorer
	StartSimulator
)

// Options holds the dependencies for the TUI. All fields are optional.
type Options struct {
	EventRepo store.EventRepo
	Recorder  *activity.Recorder
	Coach     *coach.Service
	Start     Start
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel. Pages opened directly sit on top of
// the home screen so Esc returns to the menu.
func newAppModel(opts Options) AppModel {
	r := router.New(home.New(opts.EventRepo, opts.Recorder, opts.Coach))
	switch opts.Start {
	case StartExplorer:
		r.Push(explorer.New(opts.Recorder, opts.Coach, func() screen.Screen {
			return simulator.New(opts.Recorder, opts.Coach)
		}))
	case StartSimulator:
		r.Push(simulator.New(opts.Recorder, opts.Coach))
	}
	return AppModel{router: r}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if modal, ok := m.router.Active().(screen.Modal); ok && modal.Modal() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. Open page sessions are closed when the
// program exits, however it exits.
func Run(opts Options) error {
	m := newAppModel(opts)
	defer m.router.CloseAll()

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
