// Package tui draws the live share code screen with bubbletea.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dmitrijs2005/wekip/internal/client/api"
	"github.com/dmitrijs2005/wekip/internal/client/screens"
)

// ShareCodeScreen is the state the model draws.
type ShareCodeScreen interface {
	Regenerate(ctx context.Context) error
	Code() string
	Copy() string
	Timer() string
	RefreshDisabled() bool
}

type tickMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	codeStyle  = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
	timerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model shows the current code and its countdown. The screen must already be
// mounted.
type Model struct {
	ctx    context.Context
	screen ShareCodeScreen
	keys   KeyMap
	help   help.Model

	// copy puts text on the system clipboard.
	copy func(string)

	status string
	err    string
}

func New(ctx context.Context, screen ShareCodeScreen) Model {
	return Model{
		ctx:    ctx,
		screen: screen,
		keys:   DefaultKeyMap,
		help:   help.New(),
		copy:   termenv.Copy,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Copy):
			code := m.screen.Copy()
			if code == "" {
				return m, nil
			}
			m.copy(code)
			m.status, m.err = "Copied "+code, ""

		case key.Matches(msg, m.keys.Regenerate):
			m.status, m.err = "", ""
			err := m.screen.Regenerate(m.ctx)
			switch {
			case errors.Is(err, screens.ErrRefreshDisabled):
				m.err = "Wait for the current code to expire"
			case err != nil:
				m.err = api.Message(err)
			default:
				m.status = "New code issued"
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Share code"))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("Get a share code for secure receipt storage"))
	b.WriteString("\n\n")

	code := m.screen.Code()
	if code == "" {
		code = "------"
	}
	b.WriteString(codeStyle.Render(code))
	b.WriteString("\n\n")

	if m.screen.RefreshDisabled() {
		b.WriteString("Your code will expire in ")
		b.WriteString(timerStyle.Render(m.screen.Timer()))
	} else {
		b.WriteString(faintStyle.Render("Code expired, press r for a new one"))
	}
	b.WriteString("\n")

	switch {
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
