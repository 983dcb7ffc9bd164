// Package tui renders conversion progress in the terminal.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnyUserName/imgfit-cli/internal/convert"
)

// Model is a bubbletea model fed by the converter's status stream.
type Model struct {
	updates  <-chan convert.Status
	started  time.Time
	width    int
	status   convert.Status
	done     int
	total    int
	errors   int
	quitting bool
}

type doneMsg struct{}

type statusMsg convert.Status

func NewModel(updates <-chan convert.Status) Model {
	return Model{updates: updates, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = convert.Status(msg)
		if msg.Total > 0 {
			m.total = msg.Total
		}
		if msg.Done > m.done {
			m.done = msg.Done
			if msg.IsError {
				m.errors++
			}
		}
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = min(60, m.width-10)
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = math.Min(1, float64(m.done)/float64(m.total))
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		titleStyle.Render("imgfit"),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.done, m.total)) + dimStyle.Render(fmt.Sprintf("  errors:%d", m.errors)),
		StatusLine(m.status.Message, m.status.IsError),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(renderBar(barWidth, ratio)),
	}
	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan convert.Status) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return statusMsg(st)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
