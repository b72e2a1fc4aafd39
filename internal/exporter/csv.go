package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"exoradio/internal/config"
	apperrors "exoradio/internal/errors"
	"exoradio/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteSelection writes sel in the column layout of mode to name inside the
// output directory and returns the full path written.
func (w *CSVWriter) WriteSelection(ctx context.Context, mode domain.ReportMode, sel domain.Selection, name string) (string, error) {
	fullPath := w.resolvePath(name)

	slog.InfoContext(ctx, "Writing CSV file",
		slog.String("mode", mode.String()),
		slog.String("full_path", fullPath),
		slog.Int("record_count", sel.Kept()))

	err := w.WriteCSV(fullPath, WriteOptions{
		Headers: Headers(mode),
		Records: FormatRows(mode, sel),
	})
	if err != nil {
		return "", apperrors.NewExportError("write CSV", err).WithContext("path", fullPath)
	}
	return fullPath, nil
}

// WriteCSV writes data to a CSV file with the given options, replacing any
// existing file.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if err := Encode(file, options); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Encode writes options as CSV to out
func Encode(out io.Writer, options WriteOptions) error {
	// Write BOM if requested (helps Excel recognize UTF-8)
	if options.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// resolvePath places relative names inside the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.OutputPath(filePath)
}
