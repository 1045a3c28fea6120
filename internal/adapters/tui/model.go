package tui

import (
	"fmt"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bft-labs/probemon/internal/adapters/csvlog"
	"github.com/bft-labs/probemon/internal/domain"
	"github.com/bft-labs/probemon/internal/ports"
)

// Chart window and range.
const (
	WindowSize = 120
	RangeMin   = 0.0
	RangeMax   = 100.0
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	belowStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// readingMsg carries one reading into the bubbletea event loop.
type readingMsg domain.Reading

// Model is the bubbletea model for the live view. It is only ever touched by
// the program's own goroutine.
type Model struct {
	title     string
	threshold ports.ThresholdSource
	paused    *atomic.Bool

	window []float32
	latest domain.Reading
	seen   int
}

// NewModel creates a model. paused is shared with the Surface so the space key
// gates the live sink without crossing goroutines through the model.
func NewModel(title string, threshold ports.ThresholdSource, paused *atomic.Bool) Model {
	return Model{
		title:     title,
		threshold: threshold,
		paused:    paused,
		window:    make([]float32, 0, WindowSize),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readingMsg:
		r := domain.Reading(msg)
		m.latest = r
		m.seen++
		if len(m.window) == WindowSize {
			copy(m.window, m.window[1:])
			m.window = m.window[:WindowSize-1]
		}
		m.window = append(m.window, r.Value)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused.Store(!m.paused.Load())
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	threshold := 0.0
	if m.threshold != nil {
		threshold = m.threshold.Threshold()
	}

	if m.seen == 0 {
		b.WriteString(mutedStyle.Render("waiting for readings..."))
	} else {
		style := okStyle
		if m.latest.Below(threshold) {
			style = belowStyle
		}
		b.WriteString(style.Render(csvlog.FormatValue(m.latest.Value) + " °C"))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  at %s  threshold %.1f",
			m.latest.Timestamp.Format("15:04:05"), threshold)))
	}
	b.WriteString("\n")

	b.WriteString(Sparkline(m.window))
	b.WriteString("\n\n")

	if m.paused.Load() {
		b.WriteString(pausedStyle.Render("paused"))
	} else {
		b.WriteString(okStyle.Render("live"))
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d readings  •  space pause  •  q quit", m.seen)))
	b.WriteString("\n")

	return b.String()
}

// Sparkline renders values clamped to [RangeMin, RangeMax].
func Sparkline(values []float32) string {
	out := make([]rune, len(values))
	top := len(sparkLevels) - 1
	for i, v := range values {
		f := (float64(v) - RangeMin) / (RangeMax - RangeMin)
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		out[i] = sparkLevels[int(f*float64(top)+0.5)]
	}
	return string(out)
}
