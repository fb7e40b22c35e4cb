package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"lcstats/pkg/models"
	"lcstats/pkg/processor"
)

// ProgressDisplay renders run progress on a single status line.
// It implements processor.Observer.
type ProgressDisplay struct {
	mu          sync.Mutex
	out         io.Writer
	tracker     *StatusTracker
	currentUser string
	isDebug     bool
}

// NewProgressDisplay creates a new progress display writing to out.
// In debug mode every row gets its own line instead.
func NewProgressDisplay(out io.Writer, debug bool) *ProgressDisplay {
	if out == nil {
		out = Err
	}
	return &ProgressDisplay{
		out:     out,
		tracker: NewStatusTracker(0),
		isDebug: debug,
	}
}

// RunStarted resets the display for a run over rows
func (p *ProgressDisplay) RunStarted(runID string, rows int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tracker = NewStatusTracker(rows)
	p.currentUser = ""
	if p.isDebug {
		fmt.Fprintf(p.out, "%s run %s • %d rows\n", Magenta("→"), runID, rows)
	}
}

// RowSkipped counts a dropped row
func (p *ProgressDisplay) RowSkipped(row models.InputRow, reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tracker.Skip()
	if p.isDebug {
		fmt.Fprintf(p.out, "%s line %d skipped • %s\n", Dim("-"), row.Line, Dim(reason))
		return
	}
	p.printProgress()
}

// LookupStarted shows the username being fetched
func (p *ProgressDisplay) LookupStarted(row models.InputRow, username string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.currentUser = username
	if !p.isDebug {
		p.printProgress()
	}
}

// LookupFinished counts a finished lookup
func (p *ProgressDisplay) LookupFinished(row models.OutputRow) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tracker.Record(row.Status)
	p.currentUser = ""

	if !p.isDebug {
		p.printProgress()
		return
	}

	mark := Green("✓")
	if row.Status != models.LookupOK {
		mark = Red("✗")
	}
	fmt.Fprintf(p.out, "%s %s • %d solved (%d/%d/%d)",
		mark, row.Username, row.Total, row.Easy, row.Medium, row.Hard)
	if row.Status != models.LookupOK {
		fmt.Fprintf(p.out, " • %s", Red(string(row.Status)))
	}
	fmt.Fprintln(p.out)
}

// RunFinished prints the run summary
func (p *ProgressDisplay) RunFinished(summary processor.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isDebug {
		fmt.Fprintln(p.out)
	}

	fmt.Fprintf(p.out, "\n%s Looked up %d profiles from %d rows\n",
		Green("✓"), summary.Processed, summary.Rows)
	fmt.Fprintf(p.out, "  %s finished in %s\n", Dim("•"), FormatDuration(summary.Elapsed))
	if summary.Skipped > 0 {
		fmt.Fprintf(p.out, "  %s %d rows without a LeetCode profile link\n", Dim("•"), summary.Skipped)
	}
	if summary.NotFound > 0 {
		fmt.Fprintf(p.out, "  %s %d users not found (shown as 0)\n", Dim("•"), summary.NotFound)
	}
	if summary.Failed > 0 {
		fmt.Fprintf(p.out, "  %s %d lookups failed (shown as 0)\n", Dim("•"), summary.Failed)
	}
	if summary.Cancelled {
		fmt.Fprintf(p.out, "  %s %s\n", Dim("•"), Yellow("cancelled before the last row"))
	}
}

// printProgress prints the minimal progress line
func (p *ProgressDisplay) printProgress() {
	t := p.tracker
	line := fmt.Sprintf("%s [%s] %d/%d • %.1f/min",
		Cyan("lookups"),
		t.Bar(20),
		t.Visited(),
		t.Total,
		t.GetLookupRate(),
	)

	if p.currentUser != "" {
		line += fmt.Sprintf(" • %s", p.currentUser)
	}

	if failed := t.Failed + t.NotFound; failed > 0 {
		line += fmt.Sprintf(" • %s", Red(fmt.Sprintf("%d failed", failed)))
	}

	fmt.Fprintf(p.out, "\r%s\r%s", strings.Repeat(" ", 100), line)
}

var _ processor.Observer = (*ProgressDisplay)(nil)
