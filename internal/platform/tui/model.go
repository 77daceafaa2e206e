package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/frameloop/internal/app"
	"github.com/vovakirdan/frameloop/internal/input"
)

// Model is the Bubble Tea model that drives an app. The app is shared by
// every copy of the model, so value receivers are safe.
type Model struct {
	app      *app.App
	title    string
	quitting bool
}

// NewModel wraps a. The model closes a when it quits.
func NewModel(a *app.App) Model {
	return Model{
		app:   a,
		title: a.Config().Window.Title,
	}
}

// Init sets the window title and starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.title),
		frameCmd(m.app.FrameInterval()),
	)
}

// Update feeds input to the app and runs a frame on every FrameMsg.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Ctrl+C always gets the user out, whatever the bindings say.
		if msg.Type == tea.KeyCtrlC {
			m.app.Feed(input.Quit{})
			return m, nil
		}

	case FrameMsg:
		if m.app.Frame() {
			m.quitting = true
			m.app.Close()
			return m, tea.Quit
		}
		return m, frameCmd(m.app.FrameInterval())
	}

	if raw, ok := Translate(msg); ok {
		m.app.Feed(raw)
	}
	return m, nil
}

// View returns the last frame the app presented.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.app.View()
}

// Run drives a on the local terminal until it quits.
func Run(a *app.App) error {
	p := tea.NewProgram(
		NewModel(a),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
