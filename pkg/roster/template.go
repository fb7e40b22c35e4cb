package roster

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"lcstats/pkg/config"
)

// TemplateSheet is the name of the data sheet in the generated template
const TemplateSheet = "Roster"

// TemplateFileName is the default name for the generated template
const TemplateFileName = "roster-template.xlsx"

var templateRows = [][]string{
	{"21CS001", "https://leetcode.com/u/alice123/"},
	{"21CS002", "https://leetcode.com/bob_codes"},
	{"21CS003", ""},
}

// NewTemplate builds an example roster workbook for the configured columns
func NewTemplate(cfg *config.InputConfig) (*excelize.File, error) {
	if cfg == nil {
		cfg = &config.DefaultConfig().Input
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", TemplateSheet); err != nil {
		return nil, err
	}

	if err := setRow(f, TemplateSheet, 1, []string{cfg.RollColumn, cfg.ProfileColumn}); err != nil {
		return nil, err
	}
	for i, row := range templateRows {
		if err := setRow(f, TemplateSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(TemplateSheet, "A", "A", 16); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(TemplateSheet, "B", "B", 44); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Instructions"); err != nil {
		return nil, err
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		fmt.Sprintf("%s - Passed through unchanged to the results", cfg.RollColumn),
		fmt.Sprintf("%s - Profile URL; rows without %q are skipped", cfg.ProfileColumn, cfg.ProfileMarker),
		"",
		"Only the first sheet is read unless input.sheet is configured.",
		"Extra columns are ignored.",
	}
	for i, line := range instructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// WriteTemplate writes the example roster workbook to w
func WriteTemplate(w io.Writer, cfg *config.InputConfig) error {
	f, err := NewTemplate(cfg)
	if err != nil {
		return fmt.Errorf("failed to build template: %w", err)
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, v := range values {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
