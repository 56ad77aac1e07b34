// Package watchui renders a live countdown for the active focus session.
package watchui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drossen/unplug/internal/cli/formatter"
	"github.com/drossen/unplug/internal/domain"
	"github.com/drossen/unplug/internal/focus"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	clockStyle = lipgloss.NewStyle().Foreground(formatter.ColorFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(formatter.ColorDim)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model polls the manager once per second, mirroring the engine's own
// reconciliation cadence.
type Model struct {
	manager  *focus.Manager
	bar      progress.Model
	session  domain.FocusSession
	active   bool
	finished bool
	width    int
}

// New creates a watch model for the given manager.
func New(m *focus.Manager) Model {
	bar := progress.New(progress.WithDefaultGradient())
	session, active := m.ActiveSession()
	return Model{
		manager: m,
		bar:     bar,
		session: session,
		active:  active,
		width:   60,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}
		return m, nil

	case tickMsg:
		session, active := m.manager.ActiveSession()
		m.session = session
		if !active {
			m.active = false
			m.finished = true
			return m, tea.Quit
		}
		m.active = true
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "e":
			m.manager.End(true)
			m.finished = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.active {
		if m.finished {
			return titleStyle.Render("Focus session over.") + "\n"
		}
		return dimStyle.Render("No active focus session.") + "\n"
	}

	now := time.Now()
	remaining := int(m.session.Remaining(now).Seconds())

	var b strings.Builder
	b.WriteString(titleStyle.Render("Focus"))
	b.WriteString("\n\n")
	b.WriteString("  " + clockStyle.Render(formatter.Countdown(remaining)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  of %s", formatter.Duration(m.session.DurationSec))))
	b.WriteString("\n\n  ")
	b.WriteString(m.bar.ViewAs(m.session.PercentComplete(now)))
	b.WriteString("\n")
	if len(m.session.BlockedApps) > 0 {
		b.WriteString(dimStyle.Render("\n  blocking " + strings.Join(m.session.BlockedApps, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("\n  e end session · q quit\n"))
	return b.String()
}

// Run starts the watch UI and blocks until it exits.
func Run(m *focus.Manager) error {
	p := tea.NewProgram(New(m))
	_, err := p.Run()
	return err
}
