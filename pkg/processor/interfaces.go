package processor

import (
	"context"

	"lcstats/pkg/models"
)

// StatsFetcher defines the lookup operation the processor needs
type StatsFetcher interface {
	Lookup(ctx context.Context, username string) models.Lookup
}

// Observer receives progress events from a run. Events arrive on the
// goroutine that called Process, in row order.
type Observer interface {
	RunStarted(runID string, rows int)
	RowSkipped(row models.InputRow, reason string)
	LookupStarted(row models.InputRow, username string)
	LookupFinished(row models.OutputRow)
	RunFinished(summary Summary)
}

// NopObserver ignores every event
type NopObserver struct{}

func (NopObserver) RunStarted(string, int)                {}
func (NopObserver) RowSkipped(models.InputRow, string)    {}
func (NopObserver) LookupStarted(models.InputRow, string) {}
func (NopObserver) LookupFinished(models.OutputRow)       {}
func (NopObserver) RunFinished(Summary)                   {}

// MultiObserver fans events out to several observers in order
type MultiObserver []Observer

func (m MultiObserver) RunStarted(runID string, rows int) {
	for _, o := range m {
		o.RunStarted(runID, rows)
	}
}

func (m MultiObserver) RowSkipped(row models.InputRow, reason string) {
	for _, o := range m {
		o.RowSkipped(row, reason)
	}
}

func (m MultiObserver) LookupStarted(row models.InputRow, username string) {
	for _, o := range m {
		o.LookupStarted(row, username)
	}
}

func (m MultiObserver) LookupFinished(row models.OutputRow) {
	for _, o := range m {
		o.LookupFinished(row)
	}
}

func (m MultiObserver) RunFinished(summary Summary) {
	for _, o := range m {
		o.RunFinished(summary)
	}
}
