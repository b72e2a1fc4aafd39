package exporter

import (
	"fmt"
	"strconv"

	"exoradio/pkg/contracts/domain"
)

// formatFloat formats a float64 value with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an integer value
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// ColumnNo is the header of the synthetic rank column
const ColumnNo = "No"

// Headers returns the column names written for mode. Filtered output
// leads with the rank column; full output has the five catalog columns.
func Headers(mode domain.ReportMode) []string {
	headers := make([]string, 0, len(domain.RequiredColumns)+1)
	if mode.Filters() {
		headers = append(headers, ColumnNo)
	}
	return append(headers, domain.RequiredColumns...)
}

// FormatRow renders one ranked record as text cells in Headers(mode) order
func FormatRow(mode domain.ReportMode, r domain.RankedRecord) []string {
	row := make([]string, 0, len(domain.RequiredColumns)+1)
	if mode.Filters() {
		row = append(row, formatInt(r.No))
	}
	return append(row,
		r.Planet,
		formatFloat(r.Fc),
		formatFloat(r.PhiMag),
		formatFloat(r.PhiKin),
		formatFloat(r.PhiCME),
	)
}

// FormatRows renders every row of the selection
func FormatRows(mode domain.ReportMode, sel domain.Selection) [][]string {
	rows := make([][]string, len(sel.Rows))
	for i, r := range sel.Rows {
		rows[i] = FormatRow(mode, r)
	}
	return rows
}
