// Package leetcode provides a client for LeetCode's public GraphQL API.
//
// The client issues one query per username and maps the accepted-submission
// counts into a models.SubmissionStats. Three entry points share one code path:
//
//	client := leetcode.NewClient(&cfg.LeetCode, log)
//
//	// Zero record on any failure
//	stats := client.Stats(ctx, "alice123")
//
//	// Typed error describing the failure class
//	stats, err := client.FetchStats(ctx, "alice123")
//	if errors.IsNotFound(err) {
//	    // no such user
//	}
//
//	// Tagged result for callers that need to tell zero from failed
//	lookup := client.Lookup(ctx, "alice123")
//
// There is no retry, caching or rate limiting. A failed lookup is reported
// as the all-zero record, which cannot be told apart from a real account
// with zero accepted submissions unless Lookup or FetchStats is used.
package leetcode
