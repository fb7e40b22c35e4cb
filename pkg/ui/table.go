package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"lcstats/pkg/export"
	"lcstats/pkg/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA116")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	failedStyle = numberStyle.Foreground(lipgloss.Color("#FF375F"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))

	plainCell   = lipgloss.NewStyle().Padding(0, 1)
	plainNumber = plainCell.Align(lipgloss.Right)
)

// RenderResults renders results as a bordered table with the export columns.
// Rows whose lookup failed have their counts highlighted when color is on.
func RenderResults(results models.ResultSet) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = r.Record()
	}

	color := ColorEnabled()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(export.Header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if !color {
				if row == table.HeaderRow || col < 2 {
					return plainCell
				}
				return plainNumber
			}
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < 2:
				return cellStyle
			case row < len(results) && results[row].Status != "" && results[row].Status != models.LookupOK:
				return failedStyle
			default:
				return numberStyle
			}
		})
	if color {
		t = t.BorderStyle(borderStyle)
	}

	return t.String()
}

// PrintResults writes the results table to Out
func PrintResults(results models.ResultSet) {
	fmt.Fprintln(Out, RenderResults(results))
}

// RenderLookup renders a single lookup as label/value lines
func RenderLookup(l models.Lookup) string {
	status := Green(string(l.Status))
	if !l.Succeeded() {
		status = Red(string(l.Status))
	}

	s := fmt.Sprintf("%s %s\n%s %s\n%s %d\n%s %d\n%s %d\n%s %d\n",
		Cyan("Username:"), l.Username,
		Cyan("Status:  "), status,
		Cyan("Total:   "), l.Stats.Total,
		Cyan("Easy:    "), l.Stats.Easy,
		Cyan("Medium:  "), l.Stats.Medium,
		Cyan("Hard:    "), l.Stats.Hard,
	)
	if l.Succeeded() && !l.Submitted.IsZero() {
		s += fmt.Sprintf("%s %d (%d/%d/%d)\n", Cyan("Submitted:"), l.Submitted.Total,
			l.Submitted.Easy, l.Submitted.Medium, l.Submitted.Hard)
	}
	if l.Err != nil {
		s += fmt.Sprintf("%s %s\n", Cyan("Error:   "), Dim(l.Err.Error()))
	}
	return s
}
