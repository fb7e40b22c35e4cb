package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"lcstats/pkg/models"
	"lcstats/pkg/processor"
)

// RowState represents where a roster row is in the run
type RowState int

const (
	RowActive RowState = iota
	RowDone
	RowFailed
	RowSkipped
)

// RowItem is one visited roster row
type RowItem struct {
	Line       int
	RollNumber string
	Username   string
	State      RowState
	Stats      models.SubmissionStats
	Status     models.LookupStatus
	Reason     string
	StartTime  time.Time
	Duration   time.Duration
}

// LogMessage represents a log entry
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
	Color   lipgloss.Color
}

// Model represents the TUI model
type Model struct {
	spinner  spinner.Model
	progress progress.Model

	runID     string
	totalRows int
	rows      []*RowItem
	active    *RowItem

	succeeded int
	failed    int
	skipped   int

	startTime time.Time
	summary   *processor.Summary

	width          int
	height         int
	showHelp       bool
	quitting       bool
	onQuit         func()
	logMessages    []LogMessage
	maxLogMessages int

	mu sync.RWMutex
}

// NewModel creates a new TUI model. onQuit runs when the user quits early.
func NewModel(onQuit func()) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brandOrange)

	p := progress.New(progress.WithGradient(string(mediumAmber), string(easyGreen)))
	p.Width = 40

	return &Model{
		spinner:        s,
		progress:       p,
		startTime:      time.Now(),
		onQuit:         onQuit,
		maxLogMessages: 50,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// StartRun resets counters for a run over total rows
func (m *Model) StartRun(runID string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runID = runID
	m.totalRows = total
	m.rows = nil
	m.active = nil
	m.succeeded, m.failed, m.skipped = 0, 0, 0
	m.summary = nil
	m.startTime = time.Now()
}

// SkipRow records a row dropped for having no usable profile link
func (m *Model) SkipRow(row models.InputRow, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = append(m.rows, &RowItem{
		Line:       row.Line,
		RollNumber: row.RollNumber,
		State:      RowSkipped,
		Reason:     reason,
	})
	m.skipped++
}

// StartLookup marks the lookup for row as active
func (m *Model) StartLookup(row models.InputRow, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := &RowItem{
		Line:       row.Line,
		RollNumber: row.RollNumber,
		Username:   username,
		State:      RowActive,
		StartTime:  time.Now(),
	}
	m.rows = append(m.rows, item)
	m.active = item
}

// FinishLookup records the outcome of the active lookup
func (m *Model) FinishLookup(row models.OutputRow) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := m.active
	if item == nil || item.Username != row.Username {
		item = &RowItem{RollNumber: row.RollNumber, Username: row.Username}
		m.rows = append(m.rows, item)
	}

	item.Stats = row.SubmissionStats
	item.Status = row.Status
	if !item.StartTime.IsZero() {
		item.Duration = time.Since(item.StartTime)
	}
	if row.Status == models.LookupOK {
		item.State = RowDone
		m.succeeded++
	} else {
		item.State = RowFailed
		m.failed++
	}
	m.active = nil
}

// FinishRun stores the run summary
func (m *Model) FinishRun(summary processor.Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.summary = &summary
	m.active = nil
}

// AddLogMessage adds a log message
func (m *Model) AddLogMessage(level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	color := dimWhite
	switch level {
	case "ERROR":
		color = hardRed
	case "WARN":
		color = mediumAmber
	case "SUCCESS":
		color = easyGreen
	case "INFO":
		color = brandOrange
	}

	m.logMessages = append(m.logMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
		Color:   color,
	})

	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// Visited returns how many rows have been handled, including skipped ones
func (m *Model) Visited() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visited()
}

func (m *Model) visited() int {
	return m.succeeded + m.failed + m.skipped
}

// Percent returns run progress in [0, 1]
func (m *Model) Percent() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalRows == 0 {
		if m.summary != nil {
			return 1
		}
		return 0
	}
	return float64(m.visited()) / float64(m.totalRows)
}

// RecentRows returns up to n most recently visited rows, oldest first
func (m *Model) RecentRows(n int) []RowItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := len(m.rows) - n
	if start < 0 {
		start = 0
	}
	out := make([]RowItem, 0, len(m.rows)-start)
	for _, r := range m.rows[start:] {
		out = append(out, *r)
	}
	return out
}

// ETA estimates the time left from the average time per visited row
func (m *Model) ETA() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	visited := m.visited()
	if visited == 0 || m.totalRows <= visited {
		return 0
	}
	perRow := time.Since(m.startTime) / time.Duration(visited)
	return perRow * time.Duration(m.totalRows-visited)
}
