package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"lcstats/pkg/config"
	"lcstats/pkg/export"
	"lcstats/pkg/logger"
	"lcstats/pkg/models"
)

type fakeFetcher struct {
	stats map[string]models.SubmissionStats
	calls []string
}

func (f *fakeFetcher) Lookup(ctx context.Context, username string) models.Lookup {
	f.calls = append(f.calls, username)
	stats, ok := f.stats[username]
	if !ok {
		return models.Lookup{Username: username, Status: models.LookupNotFound}
	}
	return models.Lookup{Username: username, Stats: stats, Status: models.LookupOK}
}

func newTestServer(t *testing.T) (*Server, *fakeFetcher, *logger.TestLogger) {
	t.Helper()
	fetcher := &fakeFetcher{stats: map[string]models.SubmissionStats{
		"alice123": {Total: 10, Easy: 5, Medium: 3, Hard: 2},
	}}
	log := logger.NewTestLogger()
	return New(config.DefaultConfig(), fetcher, log), fetcher, log
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

const rosterCSV = "roll_number,leetcode_profile\n" +
	"R1,https://leetcode.com/alice123/\n" +
	"R2,https://github.com/bob\n" +
	"R3,https://leetcode.com/ghost\n"

const invalidCSV = "roll_number,leetcode_profile\nR1,https://github.com/bob\nR2,\n"

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestIndex(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `enctype="multipart/form-data"`)
	assert.Contains(t, rec.Body.String(), "leetcode_profile")
}

func TestResultsPage(t *testing.T) {
	s, fetcher, _ := newTestServer(t)
	rec := serve(s, uploadRequest(t, "/results", "class.csv", []byte(rosterCSV)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Total Submissions")
	assert.Contains(t, body, "https://leetcode.com/alice123/")
	assert.NotContains(t, body, "github.com/bob")
	assert.Contains(t, body, `download="leetcode_results.csv"`)
	assert.Contains(t, body, "data:text/csv;base64,")
	assert.Contains(t, body, "1 lookups failed")
	assert.Equal(t, []string{"alice123", "ghost"}, fetcher.calls)
}

func TestResultsPageNoValidProfiles(t *testing.T) {
	s, fetcher, _ := newTestServer(t)
	rec := serve(s, uploadRequest(t, "/results", "class.csv", []byte(invalidCSV)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No valid LeetCode profiles found.")
	assert.NotContains(t, rec.Body.String(), "Download CSV")
	assert.Empty(t, fetcher.calls)
}

func TestResultsPageBadFile(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := serve(s, uploadRequest(t, "/results", "class.csv", []byte("name,link\na,b\n")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "roll_number")
}

func TestAPIResults(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := serve(s, uploadRequest(t, "/api/v1/results", "class.csv", []byte(rosterCSV)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ResultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.RunID, 36)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, ResultRow{
		RollNumber:  "R1",
		ProfileLink: "https://leetcode.com/alice123/",
		Username:    "alice123",
		Total:       10,
		Easy:        5,
		Medium:      3,
		Hard:        2,
		Status:      "ok",
	}, resp.Rows[0])
	assert.Equal(t, "not_found", resp.Rows[1].Status)
	assert.Zero(t, resp.Rows[1].Total)
}

func TestAPIResultsXLSXUpload(t *testing.T) {
	s, _, _ := newTestServer(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"roll_number", "leetcode_profile"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"R1", "https://leetcode.com/alice123"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rec := serve(s, uploadRequest(t, "/api/v1/results", "class.xlsx", buf.Bytes()))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ResultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 10, resp.Rows[0].Total)
}

func TestAPIResultsNoValidProfiles(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := serve(s, uploadRequest(t, "/api/v1/results", "class.csv", []byte(invalidCSV)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"no valid LeetCode profiles found"}`, rec.Body.String())
}

func TestAPIResultsMissingFile(t *testing.T) {
	s, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/results", strings.NewReader("x"))
	req.Header.Set("Content-Type", "text/plain")
	rec := serve(s, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIResultsUploadTooLarge(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxUploadMB = 1
	s := New(cfg, &fakeFetcher{}, logger.NewNopLogger())

	big := rosterCSV + strings.Repeat("R9,https://leetcode.com/x\n", 60000)
	rec := serve(s, uploadRequest(t, "/api/v1/results", "class.csv", []byte(big)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAPIResultsCSV(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := serve(s, uploadRequest(t, "/api/v1/results.csv", "class.csv", []byte(rosterCSV)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="leetcode_results.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Len(t, rec.Header().Get("X-Run-ID"), 36)

	rs, err := export.ReadCSV(rec.Body)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "R1", rs[0].RollNumber)
	assert.Equal(t, 10, rs[0].Total)
	assert.Equal(t, "R3", rs[1].RollNumber)
	assert.Zero(t, rs[1].Total)
}

func TestAPIResultsCSVNoValidProfiles(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := serve(s, uploadRequest(t, "/api/v1/results.csv", "class.csv", []byte(invalidCSV)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAPIUser(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/users/alice123", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var l models.Lookup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	assert.Equal(t, models.LookupOK, l.Status)
	assert.Equal(t, models.SubmissionStats{Total: 10, Easy: 5, Medium: 3, Hard: 2}, l.Stats)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/v1/users/ghost", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	assert.Equal(t, models.LookupNotFound, l.Status)
	assert.True(t, l.Stats.IsZero())
}

func TestTemplateDownload(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/template.xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatXLSX.ContentType(), rec.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	header, err := f.GetCellValue("Roster", "A1")
	require.NoError(t, err)
	assert.Equal(t, "roll_number", header)
}

func TestRequestLogging(t *testing.T) {
	s, _, log := newTestServer(t)
	serve(s, httptest.NewRequest(http.MethodGet, "/nope", nil))

	msgs := log.GetMessagesByLevel("WARN")
	require.NotEmpty(t, msgs)
	last := msgs[len(msgs)-1]
	assert.Equal(t, http.StatusNotFound, last.Fields["status_code"])
	assert.Equal(t, "/nope", last.Fields["url"])
	assert.Equal(t, "server", last.Fields["component"])
	assert.NotEmpty(t, last.Fields["request_id"])
}

func TestListenAndServeShutsDown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	s := New(cfg, &fakeFetcher{}, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}
