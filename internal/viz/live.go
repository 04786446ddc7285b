package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scflab/internal/scf"
)

const historyCapacity = 600

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	convergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	exhaustedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Event is one message from a running solve: an iteration record while the
// solve is in flight, then exactly one final Result or Err.
type Event struct {
	Iter   *scf.Iteration
	Result *scf.Result
	Err    error
}

// Live is a bubbletea model that follows a solve iteration by iteration.
// The solve runs in its own goroutine and feeds the events channel; closing
// of the loop is signalled by the Result or Err event.
type Live struct {
	title     string
	events    <-chan Event
	residuals []float64
	lastIter  int
	result    *scf.Result
	err       error
	done      bool
}

func NewLive(title string, events <-chan Event) Live {
	return Live{
		title:     title,
		events:    events,
		residuals: make([]float64, 0, historyCapacity),
	}
}

func (m Live) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m Live) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return ev
	}
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case Event:
		switch {
		case msg.Iter != nil:
			m.lastIter = msg.Iter.N
			m.residuals = append(m.residuals, msg.Iter.ResidualNorm)
			if len(m.residuals) > historyCapacity {
				m.residuals = m.residuals[1:]
			}
		case msg.Result != nil:
			m.result = msg.Result
			m.done = true
		case msg.Err != nil:
			m.err = msg.Err
			m.done = true
		}
		if m.done {
			return m, nil
		}
		return m, m.waitForEvent()
	}
	return m, nil
}

func (m Live) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(exhaustedStyle.Render("ERROR") + "\n")
		s.WriteString(valueStyle.Render(m.err.Error()) + "\n")
	case m.result != nil && m.result.Converged:
		s.WriteString(convergedStyle.Render("CONVERGED") + "\n")
	case m.result != nil:
		s.WriteString(exhaustedStyle.Render("EXHAUSTED") + "\n")
	default:
		s.WriteString("RUNNING\n")
	}
	s.WriteString("\n")

	if chart := ResidualChart(m.residuals, "log10 residual"); chart != "" {
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Iteration") + valueStyle.Render(fmt.Sprintf("%d", m.lastIter)) + "\n")
	if n := len(m.residuals); n > 0 {
		s.WriteString(labelStyle.Render("Residual") + valueStyle.Render(fmt.Sprintf("%.3e", m.residuals[n-1])) + "\n")
	}
	if m.result != nil {
		s.WriteString(labelStyle.Render("Status") + valueStyle.Render(m.result.Status.String()) + "\n")
	}

	s.WriteString(helpStyle.Render("Q:Quit"))
	return s.String()
}
