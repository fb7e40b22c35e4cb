package leetcode

import (
	"encoding/json"

	"lcstats/pkg/models"
)

// GraphQLRequest is the POST body sent to the GraphQL endpoint
type GraphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

// UserProfileResponse is the top-level response for UserProfileQuery
type UserProfileResponse struct {
	Data   *ProfileData   `json:"data"`
	Errors []GraphQLError `json:"errors"`

	// HasErrors is true when the errors key is present, even as null or []
	HasErrors bool `json:"-"`
}

// UnmarshalJSON decodes the response and records whether an errors key was sent
func (r *UserProfileResponse) UnmarshalJSON(data []byte) error {
	type plain UserProfileResponse
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = UserProfileResponse(p)
	_, r.HasErrors = keys["errors"]
	return nil
}

// ProfileData wraps the matched user
type ProfileData struct {
	MatchedUser *MatchedUser `json:"matchedUser"`
}

// MatchedUser is a LeetCode account returned by matchedUser
type MatchedUser struct {
	SubmitStats *SubmitStats `json:"submitStats"`
}

// SubmitStats holds per-difficulty submission counts
type SubmitStats struct {
	AcSubmissionNum    []DifficultyCount `json:"acSubmissionNum"`
	TotalSubmissionNum []DifficultyCount `json:"totalSubmissionNum"`
}

// DifficultyCount is one {difficulty, count} pair
type DifficultyCount struct {
	Difficulty models.Difficulty `json:"difficulty"`
	Count      int               `json:"count"`
}

// GraphQLError is one entry of the top-level errors array
type GraphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// AcceptedStats maps the accepted-submission list into a SubmissionStats
func (s SubmitStats) AcceptedStats() models.SubmissionStats {
	return models.StatsFromCounts(countsByDifficulty(s.AcSubmissionNum))
}

// TotalStats maps the total-submission list into a SubmissionStats
func (s SubmitStats) TotalStats() models.SubmissionStats {
	return models.StatsFromCounts(countsByDifficulty(s.TotalSubmissionNum))
}

// countsByDifficulty indexes entries by label. Negative counts become zero.
func countsByDifficulty(entries []DifficultyCount) map[models.Difficulty]int {
	counts := make(map[models.Difficulty]int, len(entries))
	for _, e := range entries {
		counts[e.Difficulty] = max(e.Count, 0)
	}
	return counts
}
