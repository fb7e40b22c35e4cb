package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"lcstats/pkg/models"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DefaultFileName is the name offered for downloads
const DefaultFileName = "leetcode_results.csv"

// ResultsSheet is the sheet name used in XLSX exports
const ResultsSheet = "Results"

// Header is the first row of every export
var Header = []string{"Roll Number", "LeetCode Profile", "Total Submissions", "Easy", "Medium", "Hard"}

// ErrInvalidHeader means a CSV file does not start with Header
var ErrInvalidHeader = errors.New("unexpected results header")

// ParseFormat converts a config or flag value into a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("invalid export format %q", s)
	}
}

// ContentType returns the MIME type for f
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// FileName replaces the extension of name with the one for f
func (f Format) FileName(name string) string {
	if name == "" {
		name = DefaultFileName
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + string(f)
}

// Write encodes results to w in format f
func Write(w io.Writer, f Format, results models.ResultSet) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatXLSX:
		return WriteXLSX(w, results)
	default:
		return fmt.Errorf("invalid export format %q", f)
	}
}

// WriteCSV writes the header and one record per row
func WriteCSV(w io.Writer, results models.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range results {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// EncodeCSV returns the CSV export as bytes
func EncodeCSV(results models.ResultSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV parses a CSV export back into a ResultSet. Only the exported
// columns are restored; Username and Status stay empty. As with any
// encoding/csv reader, a \r\n inside a quoted field comes back as \n.
func ReadCSV(r io.Reader) (models.ResultSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrInvalidHeader, i+1, header[i], name)
		}
	}

	var results models.ResultSet
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		row, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		results = append(results, row)
	}
	return results, nil
}

func parseRecord(record []string) (models.OutputRow, error) {
	counts := make([]int, 4)
	for i := range counts {
		n, err := strconv.Atoi(record[i+2])
		if err != nil {
			return models.OutputRow{}, fmt.Errorf("invalid %s value %q", Header[i+2], record[i+2])
		}
		counts[i] = n
	}

	return models.OutputRow{
		RollNumber:  record[0],
		ProfileLink: record[1],
		SubmissionStats: models.SubmissionStats{
			Total:  counts[0],
			Easy:   counts[1],
			Medium: counts[2],
			Hard:   counts[3],
		},
	}, nil
}

// WriteXLSX writes results as a single-sheet workbook
func WriteXLSX(w io.Writer, results models.ResultSet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.RollNumber, row.ProfileLink, row.Total, row.Easy, row.Medium, row.Hard}
		if err := f.SetSheetRow(ResultsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(ResultsSheet, "B", "B", 44); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
