package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"lcstats/pkg/models"
	"lcstats/pkg/processor"
)

// Message types for the TUI

// RunStartedMsg is sent when the processor starts a run
type RunStartedMsg struct {
	RunID string
	Rows  int
}

// RowSkippedMsg is sent when a row has no usable profile link
type RowSkippedMsg struct {
	Row    models.InputRow
	Reason string
}

// LookupStartedMsg is sent before a profile is fetched
type LookupStartedMsg struct {
	Row      models.InputRow
	Username string
}

// LookupFinishedMsg is sent after a profile is fetched
type LookupFinishedMsg struct {
	Row models.OutputRow
}

// RunFinishedMsg is sent when the run is over
type RunFinishedMsg struct {
	Summary processor.Summary
}

// LogMsg is sent to add a log message
type LogMsg struct {
	Level   string
	Message string
}

// TickMsg is sent periodically to update the UI
type TickMsg time.Time

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(20, msg.Width-30)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		if p, ok := pm.(progress.Model); ok {
			m.progress = p
		}
		return m, cmd

	case TickMsg:
		return m, tickCmd()

	case RunStartedMsg:
		m.StartRun(msg.RunID, msg.Rows)
		m.AddLogMessage("INFO", fmt.Sprintf("Run %s started with %d rows", shortID(msg.RunID), msg.Rows))
		return m, nil

	case RowSkippedMsg:
		m.SkipRow(msg.Row, msg.Reason)
		return m, m.progress.SetPercent(m.Percent())

	case LookupStartedMsg:
		m.StartLookup(msg.Row, msg.Username)
		return m, nil

	case LookupFinishedMsg:
		m.FinishLookup(msg.Row)
		if msg.Row.Status != models.LookupOK {
			m.AddLogMessage("WARN", fmt.Sprintf("%s: lookup %s, counted as 0", msg.Row.Username, msg.Row.Status))
		}
		return m, m.progress.SetPercent(m.Percent())

	case RunFinishedMsg:
		m.FinishRun(msg.Summary)
		m.AddLogMessage("SUCCESS", fmt.Sprintf("Looked up %d profiles", msg.Summary.Processed))
		m.quitting = true
		return m, tea.Quit

	case LogMsg:
		m.AddLogMessage(msg.Level, msg.Message)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.quitting = true
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+l":
		m.mu.Lock()
		m.logMessages = nil
		m.mu.Unlock()
		return m, nil
	}

	return m, nil
}

// tickCmd returns a command that sends a tick message
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
