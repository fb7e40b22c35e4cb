package models

import "strconv"

// Difficulty is a LeetCode difficulty bucket as reported by the GraphQL API
type Difficulty string

const (
	DifficultyAll    Difficulty = "All"
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// SubmissionStats holds accepted-submission counts by difficulty.
// The zero value is the default returned for any failed lookup.
type SubmissionStats struct {
	Total  int `json:"total"`
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// StatsFromCounts builds a SubmissionStats from a difficulty -> count map.
// Missing labels count as zero.
func StatsFromCounts(counts map[Difficulty]int) SubmissionStats {
	return SubmissionStats{
		Total:  counts[DifficultyAll],
		Easy:   counts[DifficultyEasy],
		Medium: counts[DifficultyMedium],
		Hard:   counts[DifficultyHard],
	}
}

// IsZero reports whether every count is zero
func (s SubmissionStats) IsZero() bool {
	return s == SubmissionStats{}
}

// LookupStatus tags the outcome of a single profile lookup
type LookupStatus string

const (
	LookupOK       LookupStatus = "ok"
	LookupNotFound LookupStatus = "not_found"
	LookupFailed   LookupStatus = "failed"
)

// Lookup is the tagged result of fetching stats for one username.
// Stats is always the zero record unless Status is LookupOK.
type Lookup struct {
	Username  string          `json:"username"`
	Stats     SubmissionStats `json:"stats"`
	// Submitted counts all submissions, accepted or not
	Submitted SubmissionStats `json:"submitted"`
	Status    LookupStatus    `json:"status"`
	Err       error           `json:"-"`
}

// Succeeded reports whether the remote lookup returned real data
func (l Lookup) Succeeded() bool {
	return l.Status == LookupOK
}

// InputRow is one typed row of the uploaded spreadsheet
type InputRow struct {
	// Line is the 1-based sheet row, kept for diagnostics only
	Line        int    `json:"line"`
	RollNumber  string `json:"roll_number"`
	ProfileLink string `json:"leetcode_profile"`
	// HasProfile is false when the profile cell is missing from the row
	HasProfile bool `json:"-"`
}

// OutputRow combines an input row with its lookup result
type OutputRow struct {
	RollNumber  string `json:"roll_number"`
	ProfileLink string `json:"leetcode_profile"`
	SubmissionStats

	Username string       `json:"username"`
	Status   LookupStatus `json:"status"`
}

// Record renders the exported columns in their natural string form
func (r OutputRow) Record() []string {
	return []string{
		r.RollNumber,
		r.ProfileLink,
		strconv.Itoa(r.Total),
		strconv.Itoa(r.Easy),
		strconv.Itoa(r.Medium),
		strconv.Itoa(r.Hard),
	}
}

// ResultSet is the ordered output of one run, in input row order
type ResultSet []OutputRow

// Empty reports whether no valid profile was processed
func (rs ResultSet) Empty() bool {
	return len(rs) == 0
}

// CountByStatus tallies rows per lookup status
func (rs ResultSet) CountByStatus() map[LookupStatus]int {
	counts := make(map[LookupStatus]int)
	for _, row := range rs {
		counts[row.Status]++
	}
	return counts
}
