// Package exporter writes a planet selection as tabular files.
//
// This package contains two writers sharing one column model:
//
// CSVWriter: the primary deliverable, one header line and one line per
// planet with numbers rendered to two decimals.
//
// XLSXWriter: an optional workbook of the same table with a bold header
// row and a two-decimal number format.
//
// Example usage:
//
//	csvWriter := exporter.NewCSVWriter(paths)
//	path, err := csvWriter.WriteSelection(ctx, domain.ReportModeFiltered, sel, "exoplanets_fc_and_flux_over1.csv")
package exporter
