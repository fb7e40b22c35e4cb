package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"lcstats/pkg/config"
	"lcstats/pkg/logger"
	"lcstats/pkg/models"
)

var (
	// ErrMissingColumn means the header row lacks a required column
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnsupportedFormat means the file extension is neither .xlsx nor .csv
	ErrUnsupportedFormat = errors.New("unsupported roster format")

	// ErrSheetNotFound means the configured sheet is not in the workbook
	ErrSheetNotFound = errors.New("sheet not found")
)

// Excel and CSV rows are 1-based; the header is row 1
const headerLine = 1

// Reader parses uploaded rosters into typed rows
type Reader struct {
	sheet         string
	rollColumn    string
	profileColumn string
	logger        logger.Logger
}

// columnMap holds 0-based indices of the required columns, -1 when absent
type columnMap struct {
	roll    int
	profile int
}

// NewReader creates a Reader. A nil cfg uses the default column names.
func NewReader(cfg *config.InputConfig, log logger.Logger) *Reader {
	if cfg == nil {
		cfg = &config.DefaultConfig().Input
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Reader{
		sheet:         cfg.Sheet,
		rollColumn:    cfg.RollColumn,
		profileColumn: cfg.ProfileColumn,
		logger:        log.WithField("component", "roster"),
	}
}

// ReadFile opens path and parses it according to its extension
func (r *Reader) ReadFile(path string) ([]models.InputRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()

	return r.Read(filepath.Base(path), f)
}

// Read parses src, picking the format from name's extension
func (r *Reader) Read(name string, src io.Reader) ([]models.InputRow, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return r.ParseXLSX(src)
	case ".csv":
		return r.ParseCSV(src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ParseXLSX reads the configured sheet, or the first one, of a workbook
func (r *Reader) ParseXLSX(src io.Reader) ([]models.InputRow, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	r.logger.DebugWithFields("Read workbook", map[string]interface{}{
		"sheet": sheet,
		"rows":  len(rows),
	})
	return r.toInputRows(rows)
}

// ParseCSV reads a comma-separated roster with a header row
func (r *Reader) ParseCSV(src io.Reader) ([]models.InputRow, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV roster: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	r.logger.DebugWithFields("Read CSV roster", map[string]interface{}{
		"rows": len(rows),
	})
	return r.toInputRows(rows)
}

// toInputRows maps raw rows (header first) into InputRows
func (r *Reader) toInputRows(rows [][]string) ([]models.InputRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s, %s (file is empty)", ErrMissingColumn, r.rollColumn, r.profileColumn)
	}

	cols := r.mapColumns(rows[0])
	if err := r.validateRequiredColumns(cols); err != nil {
		return nil, err
	}

	out := make([]models.InputRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		in := models.InputRow{Line: i + headerLine + 1}
		if cols.roll < len(row) {
			in.RollNumber = row[cols.roll]
		}
		if cols.profile < len(row) && row[cols.profile] != "" {
			in.ProfileLink = row[cols.profile]
			in.HasProfile = true
		}
		out = append(out, in)
	}
	return out, nil
}

// mapColumns finds the required columns in the header row
func (r *Reader) mapColumns(header []string) columnMap {
	cols := columnMap{roll: -1, profile: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case r.rollColumn:
			if cols.roll < 0 {
				cols.roll = i
			}
		case r.profileColumn:
			if cols.profile < 0 {
				cols.profile = i
			}
		}
	}
	return cols
}

func (r *Reader) validateRequiredColumns(cols columnMap) error {
	var missing []string
	if cols.roll < 0 {
		missing = append(missing, r.rollColumn)
	}
	if cols.profile < 0 {
		missing = append(missing, r.profileColumn)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}
