package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mcint/internal/analysis"
)

const (
	plotWidth  = 60
	plotHeight = 12
	tableRows  = 8
)

// Measurer produces one convergence entry per call. Calls are strictly
// sequential.
type Measurer interface {
	Measure(n int) (analysis.Point, error)
}

// PointMsg carries a finished measurement back to the model.
type PointMsg struct {
	Point analysis.Point
	Err   error
}

// Model runs a convergence sweep one sample count at a time and redraws
// after each.
type Model struct {
	title    string
	exact    float64
	m        Measurer
	counts   []int
	next     int
	rec      analysis.Record
	err      error
	paused   bool
	inFlight bool
	done     bool
}

func NewModel(title string, exact float64, m Measurer, counts []int) Model {
	// Init dispatches the first count.
	return Model{
		title:    title,
		exact:    exact,
		m:        m,
		counts:   counts,
		rec:      make(analysis.Record, 0, len(counts)),
		done:     len(counts) == 0,
		inFlight: len(counts) > 0,
	}
}

func (m Model) Record() analysis.Record { return m.rec }
func (m Model) Err() error              { return m.err }
func (m Model) Done() bool              { return m.done }

func (m Model) Init() tea.Cmd {
	if !m.inFlight {
		return nil
	}
	return m.measureCmd(m.counts[m.next])
}

// measureNext dispatches the next count unless one is already running.
// At most one measurement is in flight, so the source is never shared
// between goroutines.
func (m Model) measureNext() (Model, tea.Cmd) {
	if m.done || m.paused || m.inFlight || m.next >= len(m.counts) {
		return m, nil
	}
	m.inFlight = true
	return m, m.measureCmd(m.counts[m.next])
}

func (m Model) measureCmd(n int) tea.Cmd {
	meas := m.m
	return func() tea.Msg {
		p, err := meas.Measure(n)
		return PointMsg{Point: p, Err: err}
	}
}

// Update handles key presses and finished measurements.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space", "p":
			m.paused = !m.paused
			return m.measureNext()
		}
	case PointMsg:
		m.inFlight = false
		if msg.Err != nil {
			m.err = msg.Err
			m.done = true
			return m, nil
		}
		m.rec = append(m.rec, msg.Point)
		m.next++
		if m.next >= len(m.counts) {
			m.done = true
			return m, nil
		}
		return m.measureNext()
	}
	return m, nil
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return statusFailed.Render("FAILED: " + m.err.Error())
	case m.done:
		return statusRunning.Render("DONE")
	case m.paused:
		return statusPaused.Render("PAUSED")
	default:
		return statusRunning.Render(fmt.Sprintf("SAMPLING N=%d", m.counts[m.next]))
	}
}

// View renders the sweep progress, recent entries and the log-log plot.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	progress := 1.0
	if len(m.counts) > 0 {
		progress = float64(len(m.rec)) / float64(len(m.counts))
	}
	s.WriteString(ProgressBar(progress, 30) + fmt.Sprintf(" %d/%d\n\n", len(m.rec), len(m.counts)))

	s.WriteString(labelStyle.Render("Exact") + valueStyle.Render(fmt.Sprintf("%.8g", m.exact)) + "\n")
	if len(m.rec) > 0 {
		last := m.rec[len(m.rec)-1]
		s.WriteString(labelStyle.Render("Estimate") + valueStyle.Render(fmt.Sprintf("%.8g", last.Estimate)) + "\n")
		s.WriteString(labelStyle.Render("Rel. error") + valueStyle.Render(fmt.Sprintf("%.3e", last.RelErr)) + "\n")
	}
	if slope, err := analysis.FitSlope(m.rec); err == nil {
		s.WriteString(labelStyle.Render("Slope") + valueStyle.Render(fmt.Sprintf("%.3f", slope)) + "\n")
	}

	s.WriteString("\n")
	start := len(m.rec) - tableRows
	if start < 0 {
		start = 0
	}
	for _, p := range m.rec[start:] {
		s.WriteString(labelStyle.Render(fmt.Sprintf("N=%d", p.N)) + valueStyle.Render(fmt.Sprintf("%.3e", p.RelErr)) + "\n")
	}

	stats := panelStyle.Render(s.String())
	if len(m.rec) < 2 {
		return stats + "\n" + helpStyle.Render("SPACE:Pause  Q:Quit")
	}

	chart := graphStyle.Render(PlotConvergence(m.rec, plotWidth, plotHeight))
	return lipgloss.JoinHorizontal(lipgloss.Top, stats, chart) + "\n" + helpStyle.Render("SPACE:Pause  Q:Quit")
}
