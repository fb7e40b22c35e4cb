package processor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"lcstats/pkg/config"
	"lcstats/pkg/leetcode"
	"lcstats/pkg/logger"
	"lcstats/pkg/models"
)

// ErrNoValidProfiles is returned by Run when no row had a usable profile link
var ErrNoValidProfiles = errors.New("no valid LeetCode profiles found")

// Skip reasons reported to observers
const (
	SkipMissingProfile = "missing profile link"
	SkipNotProfileLink = "not a LeetCode profile link"
)

// Summary describes a finished run
type Summary struct {
	RunID     string
	Rows      int
	Processed int
	Skipped   int
	NotFound  int
	Failed    int
	Elapsed   time.Duration
	Cancelled bool
}

// Processor turns roster rows into a ResultSet, one lookup per valid row
type Processor struct {
	fetcher  StatsFetcher
	marker   string
	observer Observer
	logger   logger.Logger
}

// New creates a Processor. A nil cfg uses the default profile marker.
func New(fetcher StatsFetcher, cfg *config.InputConfig, log logger.Logger) *Processor {
	if log == nil {
		log = logger.GetLogger()
	}
	marker := leetcode.ProfileMarker
	if cfg != nil && cfg.ProfileMarker != "" {
		marker = cfg.ProfileMarker
	}

	return &Processor{
		fetcher:  fetcher,
		marker:   marker,
		observer: NopObserver{},
		logger:   log.WithField("component", "processor"),
	}
}

// SetObserver sets the progress observer for subsequent runs
func (p *Processor) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	p.observer = o
}

// Process looks up every row with a valid profile link, in order.
// Rows without one are dropped. A cancelled ctx stops before the next row
// and returns what was collected so far.
func (p *Processor) Process(ctx context.Context, rows []models.InputRow) models.ResultSet {
	results, _ := p.process(ctx, rows)
	return results
}

// Run is Process plus the empty-result signal. It returns ErrNoValidProfiles
// when nothing was processed, or ctx.Err() when the run was cancelled.
func (p *Processor) Run(ctx context.Context, rows []models.InputRow) (models.ResultSet, error) {
	results, _, err := p.RunSummary(ctx, rows)
	return results, err
}

// RunSummary is Run that also returns the run's Summary, which is filled
// in whatever the error.
func (p *Processor) RunSummary(ctx context.Context, rows []models.InputRow) (models.ResultSet, Summary, error) {
	results, summary := p.process(ctx, rows)
	if summary.Cancelled {
		return results, summary, ctx.Err()
	}
	if results.Empty() {
		return nil, summary, ErrNoValidProfiles
	}
	return results, summary, nil
}

func (p *Processor) process(ctx context.Context, rows []models.InputRow) (models.ResultSet, Summary) {
	summary := Summary{RunID: uuid.NewString(), Rows: len(rows)}
	log := p.logger.WithField("run_id", summary.RunID)
	start := time.Now()

	log.InfoWithFields("Starting run", map[string]interface{}{
		"rows": len(rows),
	})
	p.observer.RunStarted(summary.RunID, len(rows))

	results := make(models.ResultSet, 0, len(rows))
	for _, row := range rows {
		if ctx.Err() != nil {
			summary.Cancelled = true
			log.WithError(ctx.Err()).Warn("Run cancelled")
			break
		}

		username, reason, ok := p.usernameFor(row)
		if !ok {
			summary.Skipped++
			log.DebugWithFields("Skipping row", map[string]interface{}{
				"line":        row.Line,
				"roll_number": row.RollNumber,
				"reason":      reason,
			})
			p.observer.RowSkipped(row, reason)
			continue
		}

		p.observer.LookupStarted(row, username)
		lookup := p.fetcher.Lookup(ctx, username)

		switch lookup.Status {
		case models.LookupNotFound:
			summary.NotFound++
		case models.LookupFailed:
			summary.Failed++
		}

		out := models.OutputRow{
			RollNumber:      row.RollNumber,
			ProfileLink:     row.ProfileLink,
			SubmissionStats: lookup.Stats,
			Username:        username,
			Status:          lookup.Status,
		}
		results = append(results, out)
		p.observer.LookupFinished(out)
	}

	summary.Processed = len(results)
	summary.Elapsed = time.Since(start)

	visited := summary.Processed + summary.Skipped
	logger.LogRunSummary(log, summary.RunID, visited, summary.Processed,
		summary.Failed+summary.NotFound, summary.Elapsed)
	p.observer.RunFinished(summary)

	return results, summary
}

// usernameFor validates the profile link of row and derives the username
func (p *Processor) usernameFor(row models.InputRow) (string, string, bool) {
	if !row.HasProfile {
		return "", SkipMissingProfile, false
	}
	if !leetcode.HasMarker(row.ProfileLink, p.marker) {
		return "", SkipNotProfileLink, false
	}
	return leetcode.UsernameFromProfileLink(row.ProfileLink), "", true
}
