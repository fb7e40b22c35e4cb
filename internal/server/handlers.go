package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"lcstats/pkg/export"
	"lcstats/pkg/models"
	"lcstats/pkg/processor"
	"lcstats/pkg/roster"
)

const uploadField = "file"

// uploadError carries the status code for a rejected upload
type uploadError struct {
	code int
	err  error
}

func (e *uploadError) Error() string { return e.err.Error() }
func (e *uploadError) Unwrap() error { return e.err }

// readUpload parses the multipart roster file of r
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]models.InputRow, error) {
	maxBytes := s.cfg.Server.MaxUploadMB << 20
	tooLarge := &uploadError{http.StatusRequestEntityTooLarge,
		fmt.Errorf("file exceeds %d MB", s.cfg.Server.MaxUploadMB)}
	if r.ContentLength > maxBytes {
		return nil, tooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, tooLarge
		}
		return nil, &uploadError{http.StatusBadRequest, fmt.Errorf("invalid upload: %w", err)}
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, &uploadError{http.StatusBadRequest, fmt.Errorf("missing %q file field", uploadField)}
	}
	defer file.Close()

	rows, err := s.reader.Read(header.Filename, file)
	if err != nil {
		return nil, &uploadError{http.StatusBadRequest, err}
	}
	return rows, nil
}

// process reads the upload and looks every valid profile up
func (s *Server) process(w http.ResponseWriter, r *http.Request) (models.ResultSet, processor.Summary, error) {
	rows, err := s.readUpload(w, r)
	if err != nil {
		return nil, processor.Summary{}, err
	}
	return s.newProcessor(chiMiddleware.GetReqID(r.Context())).RunSummary(r.Context(), rows)
}

// statusFor maps a processing error to an HTTP status
func statusFor(err error) int {
	var ue *uploadError
	switch {
	case errors.As(err, &ue):
		return ue.code
	case errors.Is(err, processor.ErrNoValidProfiles):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", indexPage{
		RollColumn:    s.cfg.Input.RollColumn,
		ProfileColumn: s.cfg.Input.ProfileColumn,
		MaxUploadMB:   s.cfg.Server.MaxUploadMB,
	})
}

func (s *Server) results(w http.ResponseWriter, r *http.Request) {
	rs, _, err := s.process(w, r)
	if err != nil {
		if errors.Is(err, processor.ErrNoValidProfiles) {
			s.render(w, http.StatusOK, "results.html", resultsPage{
				Header:  export.Header,
				Warning: "No valid LeetCode profiles found.",
			})
			return
		}
		s.render(w, statusFor(err), "results.html", resultsPage{Header: export.Header, Error: err.Error()})
		return
	}

	data, err := export.EncodeCSV(rs)
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode CSV")
		http.Error(w, "failed to encode results", http.StatusInternalServerError)
		return
	}

	counts := rs.CountByStatus()
	s.render(w, http.StatusOK, "results.html", resultsPage{
		Header:      export.Header,
		Rows:        rs,
		Failed:      counts[models.LookupFailed] + counts[models.LookupNotFound],
		CSVFileName: export.FormatCSV.FileName(s.cfg.Output.FileName),
		CSVDataURI:  template.URL("data:text/csv;base64," + base64.StdEncoding.EncodeToString(data)),
	})
}

func (s *Server) downloadTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := roster.WriteTemplate(&buf, &s.cfg.Input); err != nil {
		s.logger.WithError(err).Error("Failed to build template")
		http.Error(w, "failed to build template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.FormatXLSX.ContentType())
	w.Header().Set("Content-Disposition", attachment(roster.TemplateFileName))
	w.Write(buf.Bytes())
}

func (s *Server) apiResults(w http.ResponseWriter, r *http.Request) {
	rs, summary, err := s.process(w, r)
	if err != nil {
		RespondWithError(w, statusFor(err), err.Error())
		return
	}

	resp := ResultsResponse{RunID: summary.RunID, Rows: make([]ResultRow, 0, len(rs))}
	for _, row := range rs {
		resp.Rows = append(resp.Rows, ResultRow{
			RollNumber:  row.RollNumber,
			ProfileLink: row.ProfileLink,
			Username:    row.Username,
			Total:       row.Total,
			Easy:        row.Easy,
			Medium:      row.Medium,
			Hard:        row.Hard,
			Status:      string(row.Status),
		})
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) apiResultsCSV(w http.ResponseWriter, r *http.Request) {
	rs, summary, err := s.process(w, r)
	if err != nil {
		RespondWithError(w, statusFor(err), err.Error())
		return
	}

	data, err := export.EncodeCSV(rs)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "failed to encode CSV")
		return
	}

	w.Header().Set("Content-Type", export.FormatCSV.ContentType())
	w.Header().Set("Content-Disposition", attachment(export.FormatCSV.FileName(s.cfg.Output.FileName)))
	w.Header().Set("X-Run-ID", summary.RunID)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) apiUser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		RespondWithError(w, http.StatusBadRequest, "username is required")
		return
	}

	RespondWithJSON(w, http.StatusOK, s.fetcher.Lookup(r.Context(), username))
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}
