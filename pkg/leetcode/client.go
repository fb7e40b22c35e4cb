package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lcstats/pkg/config"
	"lcstats/pkg/errors"
	"lcstats/pkg/logger"
	"lcstats/pkg/models"
)

// Client queries LeetCode's GraphQL API for submission statistics
type Client struct {
	httpClient *http.Client
	endpoint   string
	baseURL    string
	userAgent  string
	logger     logger.Logger
}

// NewClient creates a new LeetCode API client. A nil cfg uses the defaults.
func NewClient(cfg *config.LeetCodeConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if cfg == nil {
		cfg = &config.DefaultConfig().LeetCode
	}

	c := &Client{
		// A zero timeout leaves the transport default in place
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		endpoint:   cfg.Endpoint,
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		logger:     log.WithField("component", "leetcode"),
	}
	if c.endpoint == "" {
		c.endpoint = GraphQLEndpoint
	}
	if c.baseURL == "" {
		c.baseURL = BaseURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	return c
}

// Stats returns the accepted-submission counts for username.
// Every failure yields the all-zero record.
func (c *Client) Stats(ctx context.Context, username string) models.SubmissionStats {
	stats, _ := c.FetchStats(ctx, username)
	return stats
}

// Lookup returns the tagged result of fetching stats for username.
// Submitted carries the total-submission counts of a successful lookup.
func (c *Client) Lookup(ctx context.Context, username string) models.Lookup {
	lookup := models.Lookup{Username: username, Status: models.LookupOK}

	stats, err := c.fetchSubmitStats(ctx, username)
	switch {
	case err == nil:
		lookup.Stats = stats.AcceptedStats()
		lookup.Submitted = stats.TotalStats()
	case errors.IsNotFound(err):
		lookup.Status = models.LookupNotFound
		lookup.Err = err
	default:
		lookup.Status = models.LookupFailed
		lookup.Err = err
	}
	return lookup
}

// FetchStats returns the accepted-submission counts for username, or the
// zero record and a *errors.Error describing why the lookup failed
func (c *Client) FetchStats(ctx context.Context, username string) (models.SubmissionStats, error) {
	stats, err := c.fetchSubmitStats(ctx, username)
	if err != nil {
		return models.SubmissionStats{}, err
	}
	return stats.AcceptedStats(), nil
}

// fetchSubmitStats queries username and logs the outcome
func (c *Client) fetchSubmitStats(ctx context.Context, username string) (*SubmitStats, error) {
	c.logger.DebugWithFields("fetching submission stats", map[string]interface{}{
		"username": username,
	})

	resp, err := c.queryUserProfile(ctx, username)
	if err != nil {
		c.logger.WarnWithFields("lookup failed, using zero stats", map[string]interface{}{
			"username":   username,
			"error_type": string(errors.TypeOf(err)),
			"error":      err.Error(),
		})
		return nil, err
	}

	stats := resp.Data.MatchedUser.SubmitStats
	c.logger.DebugWithFields("successfully fetched submission stats", map[string]interface{}{
		"username": username,
		"total":    stats.AcceptedStats().Total,
	})
	return stats, nil
}

// queryUserProfile runs UserProfileQuery and checks the response shape
func (c *Client) queryUserProfile(ctx context.Context, username string) (*UserProfileResponse, error) {
	payload, err := json.Marshal(GraphQLRequest{
		Query:     UserProfileQuery,
		Variables: map[string]string{"username": username},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeUnknown, err, "failed to encode query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeUnknown, err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", ProfileURL(c.baseURL, username))
	req.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrorTypeStatus, httpResp.StatusCode,
			fmt.Sprintf("unexpected status code: %d", httpResp.StatusCode))
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    httpResp.StatusCode,
			Err:     err,
		}
	}

	var resp UserProfileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.DebugWithFields("failed to parse JSON response", map[string]interface{}{
			"username":     username,
			"body_preview": bodyPreview,
		})
		return nil, errors.Wrap(errors.ErrorTypeParsing, err, "failed to parse JSON")
	}

	// A present errors key fails the lookup even when data is also set
	if resp.HasErrors {
		msg := "graphql error"
		if len(resp.Errors) > 0 && resp.Errors[0].Message != "" {
			msg = resp.Errors[0].Message
		}
		return nil, errors.New(errors.ErrorTypeGraphQL, 0, msg)
	}

	if resp.Data == nil || resp.Data.MatchedUser == nil {
		return nil, errors.New(errors.ErrorTypeNotFound, 0, fmt.Sprintf("user %q not found", username))
	}

	submit := resp.Data.MatchedUser.SubmitStats
	if submit == nil || submit.AcSubmissionNum == nil {
		return nil, errors.New(errors.ErrorTypeParsing, 0, "response has no accepted submission counts")
	}

	return &resp, nil
}

// doRequest performs an HTTP request and logs its outcome
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.DebugWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errors.Wrap(errors.ErrorTypeNetwork, err, "network error")
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}
