package ui

import (
	"fmt"
	"strings"
	"time"

	"lcstats/pkg/models"
)

const (
	ProgressBar   = "━"
	ProgressEmpty = "─"
)

// StatusTracker counts row outcomes during a run
type StatusTracker struct {
	Total     int
	Succeeded int
	NotFound  int
	Failed    int
	Skipped   int
	StartTime time.Time
}

// NewStatusTracker creates a new status tracker for total rows
func NewStatusTracker(total int) *StatusTracker {
	return &StatusTracker{
		Total:     total,
		StartTime: time.Now(),
	}
}

// Record counts a finished lookup by its status
func (st *StatusTracker) Record(status models.LookupStatus) {
	switch status {
	case models.LookupOK:
		st.Succeeded++
	case models.LookupNotFound:
		st.NotFound++
	default:
		st.Failed++
	}
}

// Skip counts a row dropped for having no usable profile link
func (st *StatusTracker) Skip() {
	st.Skipped++
}

// Lookups returns the number of finished lookups
func (st *StatusTracker) Lookups() int {
	return st.Succeeded + st.NotFound + st.Failed
}

// Visited returns the number of rows handled so far
func (st *StatusTracker) Visited() int {
	return st.Lookups() + st.Skipped
}

// GetElapsedTime returns the elapsed time since tracking started
func (st *StatusTracker) GetElapsedTime() time.Duration {
	return time.Since(st.StartTime)
}

// GetLookupRate returns the average lookup rate (lookups per minute)
func (st *StatusTracker) GetLookupRate() float64 {
	elapsed := st.GetElapsedTime().Minutes()
	if elapsed == 0 {
		return 0
	}
	return float64(st.Lookups()) / elapsed
}

// Bar returns a progress bar of width cells for rows visited so far
func (st *StatusTracker) Bar(width int) string {
	return RenderBar(st.Visited(), st.Total, width)
}

// RenderBar draws done/total as a fixed-width bar
func RenderBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat(ProgressBar, filled) + strings.Repeat(ProgressEmpty, width-filled)
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
