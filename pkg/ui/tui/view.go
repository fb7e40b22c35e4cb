package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"lcstats/pkg/models"
)

const recentRows = 8

// View renders the entire TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	width := m.width - 4
	sections := []string{
		logoStyle.Render("LCSTATS  " + dimStyle.Render("LeetCode submission stats")),
		m.renderProgressPanel(width),
		m.renderRowsPanel(width),
		m.renderLogsPanel(width),
	}

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("q: quit • ?: help"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderProgressPanel renders counters and the progress bar
func (m *Model) renderProgressPanel(width int) string {
	title := titleStyle.Render(" PROGRESS ")
	percent := m.Percent()
	eta := m.ETA()

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		statsLabelStyle.Render("Rows:"), statsValueStyle.Render(fmt.Sprintf("%d/%d", m.visited(), m.totalRows)),
		statsLabelStyle.Render("OK:"), successStyle.Render(fmt.Sprint(m.succeeded)),
		statsLabelStyle.Render("Failed:"), errorStyle.Render(fmt.Sprint(m.failed)),
		statsLabelStyle.Render("Skipped:"), dimStyle.Render(fmt.Sprint(m.skipped)),
	)
	timing := fmt.Sprintf("%s %s   %s %s",
		statsLabelStyle.Render("Elapsed:"), statsValueStyle.Render(formatDuration(time.Since(m.startTime))),
		statsLabelStyle.Render("ETA:"), statsValueStyle.Render(formatDuration(eta)),
	)

	current := dimStyle.Render("waiting for the next row")
	if m.active != nil {
		current = fmt.Sprintf("%s fetching %s (line %d)", m.spinner.View(), warningStyle.Render(m.active.Username), m.active.Line)
	}

	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, stats, timing, m.progress.ViewAs(percent), current,
	))
}

// renderRowsPanel renders the most recently visited rows
func (m *Model) renderRowsPanel(width int) string {
	title := titleStyle.Render(" RECENT ROWS ")
	rows := m.RecentRows(recentRows)

	if len(rows) == 0 {
		return panelStyle.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, dimStyle.Render("No rows yet")),
		)
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, renderRow(r))
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")),
	)
}

// renderRow renders one visited row
func renderRow(r RowItem) string {
	switch r.State {
	case RowSkipped:
		return dimStyle.Render(fmt.Sprintf("- %-10s skipped: %s", r.RollNumber, r.Reason))
	case RowActive:
		return warningStyle.Render(fmt.Sprintf("… %-10s %s", r.RollNumber, r.Username))
	case RowFailed:
		return errorStyle.Render(fmt.Sprintf("✗ %-10s %s (%s)", r.RollNumber, r.Username, r.Status))
	default:
		return fmt.Sprintf("%s %-10s %-20s %s %s %s %s",
			successStyle.Render("✓"), r.RollNumber, r.Username,
			statsValueStyle.Render(fmt.Sprintf("%4d", r.Stats.Total)),
			DifficultyStyle(string(models.DifficultyEasy)).Render(fmt.Sprintf("E%-4d", r.Stats.Easy)),
			DifficultyStyle(string(models.DifficultyMedium)).Render(fmt.Sprintf("M%-4d", r.Stats.Medium)),
			DifficultyStyle(string(models.DifficultyHard)).Render(fmt.Sprintf("H%-4d", r.Stats.Hard)),
		)
	}
}

// renderLogsPanel renders the logs panel
func (m *Model) renderLogsPanel(width int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := titleStyle.Render(" LOG ")

	start := len(m.logMessages) - 5
	if start < 0 {
		start = 0
	}

	var logs []string
	for _, log := range m.logMessages[start:] {
		timestamp := logTimestampStyle.Render(log.Time.Format("15:04:05"))
		level := lipgloss.NewStyle().Foreground(log.Color).Bold(true).Render(fmt.Sprintf("[%-7s]", log.Level))
		logs = append(logs, fmt.Sprintf("%s %s %s", timestamp, level, log.Message))
	}

	content := strings.Join(logs, "\n")
	if content == "" {
		content = dimStyle.Render("No logs yet...")
	}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderHelp renders the help panel
func (m *Model) renderHelp() string {
	help := `
  Keys:
    q/Q, ctrl+c  - Stop after the current lookup and quit
    ctrl+l       - Clear the log
    ?            - Toggle this help

  Rows:
    ` + successStyle.Render("✓") + `  looked up
    ` + errorStyle.Render("✗") + `  lookup failed, exported as 0
    -  skipped, no LeetCode profile link
`

	return panelStyle.Width(m.width - 4).Render(help)
}

// formatDuration formats a duration as mm:ss or hh:mm:ss
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
