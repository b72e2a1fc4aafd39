package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"exoradio/internal/config"
	apperrors "exoradio/internal/errors"
	"exoradio/pkg/contracts/domain"
)

const (
	// SheetName is the single worksheet of the workbook
	SheetName = "Planets"

	// numFmtTwoDecimals is the builtin "0.00" number format
	numFmtTwoDecimals = 2
)

// XLSXWriter exports a selection as an Excel workbook
type XLSXWriter struct {
	paths *config.Paths
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter(paths *config.Paths) *XLSXWriter {
	return &XLSXWriter{paths: paths}
}

// WriteSelection writes sel to name inside the output directory and returns
// the full path written. Numbers are stored as numbers displayed with two
// decimals; the rank column holds integers.
func (w *XLSXWriter) WriteSelection(ctx context.Context, mode domain.ReportMode, sel domain.Selection, name string) (string, error) {
	fullPath := name
	if !filepath.IsAbs(name) && w.paths != nil {
		fullPath = w.paths.OutputPath(name)
	}

	slog.InfoContext(ctx, "Writing XLSX file",
		slog.String("mode", mode.String()),
		slog.String("full_path", fullPath),
		slog.Int("record_count", sel.Kept()))

	if err := w.write(fullPath, mode, sel); err != nil {
		return "", apperrors.NewExportError("write XLSX", err).WithContext("path", fullPath)
	}
	return fullPath, nil
}

func (w *XLSXWriter) write(fullPath string, mode domain.ReportMode, sel domain.Selection) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	headers := Headers(mode)
	for i, h := range headers {
		if err := f.SetCellValue(SheetName, cellName(i+1, 1), h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetName, cellName(1, 1), cellName(len(headers), 1), headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	firstNumeric := 2
	if mode.Filters() {
		firstNumeric = 3
	}

	for i, r := range sel.Rows {
		row := i + 2
		values := make([]interface{}, 0, len(headers))
		if mode.Filters() {
			values = append(values, r.No)
		}
		values = append(values, r.Planet, r.Fc, r.PhiMag, r.PhiKin, r.PhiCME)

		for col, v := range values {
			if err := f.SetCellValue(SheetName, cellName(col+1, row), v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
		if err := f.SetCellStyle(SheetName, cellName(firstNumeric, row), cellName(len(headers), row), numberStyle); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
	}

	planetCol, _ := excelize.ColumnNumberToName(firstNumeric - 1)
	if err := f.SetColWidth(SheetName, planetCol, planetCol, 28); err != nil {
		return fmt.Errorf("failed to size planet column: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return f.SaveAs(fullPath)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
