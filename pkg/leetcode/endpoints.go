package leetcode

import (
	"fmt"
	"strings"
)

const (
	// BaseURL is the public LeetCode site
	BaseURL = "https://leetcode.com"

	// GraphQLEndpoint is the public GraphQL API
	GraphQLEndpoint = BaseURL + "/graphql"

	// ProfileMarker is the substring every accepted profile link must contain
	ProfileMarker = "leetcode.com"

	// DefaultUserAgent is sent with every query; the API rejects requests without one
	DefaultUserAgent = "Mozilla/5.0"
)

// UserProfileQuery selects accepted and total submission counts per difficulty
const UserProfileQuery = `
query getUserProfile($username: String!) {
    matchedUser(username: $username) {
        submitStats {
            acSubmissionNum {
                difficulty
                count
            }
            totalSubmissionNum {
                difficulty
                count
            }
        }
    }
}
`

// IsProfileLink reports whether link looks like a LeetCode profile link
func IsProfileLink(link string) bool {
	return HasMarker(link, ProfileMarker)
}

// HasMarker reports whether link contains marker. Nothing else is validated.
func HasMarker(link, marker string) bool {
	return marker != "" && strings.Contains(link, marker)
}

// UsernameFromProfileLink returns the last path segment of link after
// trailing slashes are removed. Whitespace is left untouched.
func UsernameFromProfileLink(link string) string {
	trimmed := strings.TrimRight(link, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// ProfileURL constructs the public profile URL for a user on base
func ProfileURL(base, username string) string {
	if username == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/", strings.TrimRight(base, "/"), username)
}
