package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const actionTimeout = 2 * time.Minute

type actionMsg struct {
	details []string
	err     error
	elapsed time.Duration
}

type model struct {
	title   string
	details []string
	err     error
	elapsed time.Duration
	done    bool
	action  func(context.Context) ([]string, error)
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		start := time.Now()
		details, err := m.action(ctx)
		return actionMsg{details: details, err: err, elapsed: time.Since(start)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = context.Canceled
			m.done = true
			return m, tea.Quit
		}
	case actionMsg:
		m.details = msg.details
		m.err = msg.err
		m.elapsed = msg.elapsed
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if !m.done {
		b.WriteString(mutedStyle.Render("working...") + "\n")
		return b.String()
	}
	if m.err != nil {
		fmt.Fprintf(&b, "%s: %v\n", failedStyle.Render("FAILED"), m.err)
	} else {
		fmt.Fprintf(&b, "%s %s\n", okStyle.Render("OK"), mutedStyle.Render(m.elapsed.Round(time.Millisecond).String()))
	}
	for _, d := range m.details {
		b.WriteString("  • " + d + "\n")
	}
	return b.String()
}

// Run executes action behind a small terminal status view and returns its
// result once the action finishes or the user presses ctrl+c.
func Run(title string, action func(context.Context) ([]string, error)) ([]string, error) {
	p := tea.NewProgram(model{title: title, action: action})
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	res := final.(model)
	return res.details, res.err
}
