package processor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"lcstats/pkg/config"
	"lcstats/pkg/leetcode"
	"lcstats/pkg/logger"
	"lcstats/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher returns canned lookups keyed by username
type fakeFetcher struct {
	mu      sync.Mutex
	lookups map[string]models.Lookup
	calls   []string
	onCall  func()
}

func (f *fakeFetcher) Lookup(ctx context.Context, username string) models.Lookup {
	f.mu.Lock()
	f.calls = append(f.calls, username)
	f.mu.Unlock()

	if f.onCall != nil {
		f.onCall()
	}
	if l, ok := f.lookups[username]; ok {
		l.Username = username
		return l
	}
	return models.Lookup{Username: username, Status: models.LookupFailed, Err: fmt.Errorf("no canned lookup")}
}

// recordingObserver keeps every event it receives
type recordingObserver struct {
	started  int
	skipped  []string
	lookups  []string
	finished []models.OutputRow
	summary  *Summary
}

func (r *recordingObserver) RunStarted(runID string, rows int) { r.started = rows }
func (r *recordingObserver) RowSkipped(row models.InputRow, reason string) {
	r.skipped = append(r.skipped, reason)
}
func (r *recordingObserver) LookupStarted(row models.InputRow, username string) {
	r.lookups = append(r.lookups, username)
}
func (r *recordingObserver) LookupFinished(row models.OutputRow) {
	r.finished = append(r.finished, row)
}
func (r *recordingObserver) RunFinished(s Summary) { r.summary = &s }

func row(line int, roll, link string) models.InputRow {
	return models.InputRow{Line: line, RollNumber: roll, ProfileLink: link, HasProfile: true}
}

func okLookup(total, easy, medium, hard int) models.Lookup {
	return models.Lookup{
		Stats:  models.SubmissionStats{Total: total, Easy: easy, Medium: medium, Hard: hard},
		Status: models.LookupOK,
	}
}

func TestProcessSkipsInvalidLinks(t *testing.T) {
	fetcher := &fakeFetcher{lookups: map[string]models.Lookup{
		"alice123": okLookup(10, 5, 3, 2),
	}}
	p := New(fetcher, nil, logger.NewTestLogger())

	results := p.Process(context.Background(), []models.InputRow{
		row(2, "R1", "https://leetcode.com/alice123/"),
		row(3, "R2", "https://github.com/bob"),
	})

	require.Len(t, results, 1)
	assert.Equal(t, models.OutputRow{
		RollNumber:      "R1",
		ProfileLink:     "https://leetcode.com/alice123/",
		SubmissionStats: models.SubmissionStats{Total: 10, Easy: 5, Medium: 3, Hard: 2},
		Username:        "alice123",
		Status:          models.LookupOK,
	}, results[0])
	assert.Equal(t, []string{"alice123"}, fetcher.calls)
}

func TestProcessKeepsOrderAndDuplicates(t *testing.T) {
	fetcher := &fakeFetcher{lookups: map[string]models.Lookup{
		"a": okLookup(1, 1, 0, 0),
		"b": okLookup(2, 0, 2, 0),
	}}
	p := New(fetcher, nil, logger.NewTestLogger())

	results := p.Process(context.Background(), []models.InputRow{
		row(2, "R1", "https://leetcode.com/b"),
		row(3, "R2", "https://leetcode.com/a/"),
		row(4, "R1", "https://leetcode.com/b/"),
	})

	require.Len(t, results, 3)
	assert.Equal(t, []string{"R1", "R2", "R1"}, []string{results[0].RollNumber, results[1].RollNumber, results[2].RollNumber})
	assert.Equal(t, []string{"b", "a", "b"}, fetcher.calls, "no caching or deduplication")
	assert.Equal(t, results[0].SubmissionStats, results[2].SubmissionStats)
}

func TestProcessFailedLookupKeepsZeroRow(t *testing.T) {
	fetcher := &fakeFetcher{lookups: map[string]models.Lookup{
		"ghost": {Status: models.LookupNotFound},
	}}
	p := New(fetcher, nil, logger.NewTestLogger())

	results := p.Process(context.Background(), []models.InputRow{
		row(2, "R1", "https://leetcode.com/ghost"),
		row(3, "R2", "https://leetcode.com/offline"),
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].IsZero())
	assert.Equal(t, models.LookupNotFound, results[0].Status)
	assert.True(t, results[1].IsZero())
	assert.Equal(t, models.LookupFailed, results[1].Status)
}

func TestProcessMissingProfile(t *testing.T) {
	fetcher := &fakeFetcher{}
	obs := &recordingObserver{}
	p := New(fetcher, nil, logger.NewTestLogger())
	p.SetObserver(obs)

	results := p.Process(context.Background(), []models.InputRow{
		{Line: 2, RollNumber: "R1"},
		row(3, "R2", ""),
		row(4, "R3", "not a link"),
	})

	assert.Empty(t, results)
	assert.Empty(t, fetcher.calls)
	assert.Equal(t, []string{SkipMissingProfile, SkipNotProfileLink, SkipNotProfileLink}, obs.skipped)
}

func TestRunNoValidProfiles(t *testing.T) {
	log := logger.NewTestLogger()
	p := New(&fakeFetcher{}, nil, log)

	results, err := p.Run(context.Background(), []models.InputRow{
		row(2, "R1", "https://github.com/bob"),
		row(3, "R2", "https://hackerrank.com/carol"),
	})

	assert.ErrorIs(t, err, ErrNoValidProfiles)
	assert.Empty(t, results)
	assert.True(t, log.HasMessage("No valid LeetCode profiles found"))
}

func TestRunEmptyInput(t *testing.T) {
	p := New(&fakeFetcher{}, nil, logger.NewTestLogger())

	_, err := p.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoValidProfiles)
}

func TestRunSuccess(t *testing.T) {
	fetcher := &fakeFetcher{lookups: map[string]models.Lookup{"alice": okLookup(3, 1, 1, 1)}}
	p := New(fetcher, nil, logger.NewTestLogger())

	results, err := p.Run(context.Background(), []models.InputRow{row(2, "R1", "https://leetcode.com/alice")})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRunSummary(t *testing.T) {
	fetcher := &fakeFetcher{lookups: map[string]models.Lookup{
		"alice": okLookup(3, 1, 1, 1),
		"ghost": {Status: models.LookupNotFound},
	}}
	obs := &recordingObserver{}
	p := New(fetcher, nil, logger.NewTestLogger())
	p.SetObserver(obs)

	results, summary, err := p.RunSummary(context.Background(), []models.InputRow{
		row(2, "R1", "https://leetcode.com/alice"),
		row(3, "R2", "https://github.com/bob"),
		row(4, "R3", "https://leetcode.com/ghost"),
		row(5, "R4", "https://leetcode.com/nobody"),
	})
	require.NoError(t, err)
	assert.Len(t, results, 3)

	assert.Len(t, summary.RunID, 36)
	assert.Equal(t, 4, summary.Rows)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.NotFound)
	assert.Equal(t, 1, summary.Failed)
	assert.False(t, summary.Cancelled)

	require.NotNil(t, obs.summary)
	assert.Equal(t, summary.RunID, obs.summary.RunID)
}

func TestRunSummaryNoValidProfiles(t *testing.T) {
	p := New(&fakeFetcher{}, nil, logger.NewTestLogger())

	results, summary, err := p.RunSummary(context.Background(), []models.InputRow{
		row(2, "R1", "https://github.com/bob"),
	})
	assert.ErrorIs(t, err, ErrNoValidProfiles)
	assert.Nil(t, results)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 1, summary.Skipped)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{
		lookups: map[string]models.Lookup{"a": okLookup(1, 1, 0, 0)},
		onCall:  cancel,
	}
	obs := &recordingObserver{}
	p := New(fetcher, nil, logger.NewTestLogger())
	p.SetObserver(obs)

	results, err := p.Run(ctx, []models.InputRow{
		row(2, "R1", "https://leetcode.com/a"),
		row(3, "R2", "https://leetcode.com/b"),
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 1)
	assert.Equal(t, []string{"a"}, fetcher.calls)
	require.NotNil(t, obs.summary)
	assert.True(t, obs.summary.Cancelled)
}

func TestObserverEvents(t *testing.T) {
	fetcher := &fakeFetcher{lookups: map[string]models.Lookup{"alice": okLookup(3, 1, 1, 1)}}
	obs := &recordingObserver{}
	p := New(fetcher, nil, logger.NewTestLogger())
	p.SetObserver(obs)

	p.Process(context.Background(), []models.InputRow{
		row(2, "R1", "https://leetcode.com/alice/"),
		row(3, "R2", "https://github.com/bob"),
		row(4, "R3", "https://leetcode.com/ghost"),
	})

	assert.Equal(t, 3, obs.started)
	assert.Equal(t, []string{"alice", "ghost"}, obs.lookups)
	assert.Len(t, obs.finished, 2)
	assert.Equal(t, []string{SkipNotProfileLink}, obs.skipped)

	require.NotNil(t, obs.summary)
	assert.NotEmpty(t, obs.summary.RunID)
	assert.Equal(t, 3, obs.summary.Rows)
	assert.Equal(t, 2, obs.summary.Processed)
	assert.Equal(t, 1, obs.summary.Skipped)
	assert.Equal(t, 1, obs.summary.Failed)

	// A nil observer resets to the no-op one
	p.SetObserver(nil)
	assert.NotPanics(t, func() {
		p.Process(context.Background(), []models.InputRow{row(2, "R1", "https://leetcode.com/alice")})
	})
}

func TestCustomProfileMarker(t *testing.T) {
	fetcher := &fakeFetcher{lookups: map[string]models.Lookup{"alice": okLookup(1, 1, 0, 0)}}
	p := New(fetcher, &config.InputConfig{ProfileMarker: "leetcode.cn"}, logger.NewTestLogger())

	results := p.Process(context.Background(), []models.InputRow{
		row(2, "R1", "https://leetcode.cn/u/alice/"),
		row(3, "R2", "https://leetcode.com/alice/"),
	})

	require.Len(t, results, 1)
	assert.Equal(t, "R1", results[0].RollNumber)
}

func TestRunWithLeetCodeClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"matchedUser":{"submitStats":{"acSubmissionNum":[
			{"difficulty":"All","count":10},{"difficulty":"Easy","count":5},
			{"difficulty":"Medium","count":3},{"difficulty":"Hard","count":2}]}}}}`)
	}))
	defer server.Close()

	log := logger.NewTestLogger()
	client := leetcode.NewClient(&config.LeetCodeConfig{Endpoint: server.URL, BaseURL: server.URL}, log)
	p := New(client, nil, log)

	results, err := p.Run(context.Background(), []models.InputRow{
		row(2, "21CS001", "https://leetcode.com/alice123/"),
		row(3, "21CS002", "https://github.com/bob"),
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"21CS001", "https://leetcode.com/alice123/", "10", "5", "3", "2"}, results[0].Record())
}

func TestMultiObserver(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	fetcher := &fakeFetcher{lookups: map[string]models.Lookup{"alice": okLookup(1, 1, 0, 0)}}
	p := New(fetcher, nil, logger.NewTestLogger())
	p.SetObserver(MultiObserver{a, NopObserver{}, b})

	p.Process(context.Background(), []models.InputRow{
		row(2, "R1", "https://leetcode.com/alice"),
		row(3, "R2", "nope"),
	})

	for _, obs := range []*recordingObserver{a, b} {
		assert.Equal(t, 2, obs.started)
		assert.Equal(t, []string{"alice"}, obs.lookups)
		assert.Len(t, obs.finished, 1)
		assert.Len(t, obs.skipped, 1)
		require.NotNil(t, obs.summary)
	}
}
