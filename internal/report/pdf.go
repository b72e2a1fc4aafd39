package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"exoradio/internal/config"
	apperrors "exoradio/internal/errors"
	"exoradio/pkg/contracts"
)

// PDFWriter draws laid-out pages into a PDF document
type PDFWriter struct {
	paths    *config.Paths
	compress bool
}

// Option configures a PDFWriter
type Option func(*PDFWriter)

// WithCompression toggles deflate compression of page streams
func WithCompression(on bool) Option {
	return func(w *PDFWriter) { w.compress = on }
}

// NewPDFWriter creates a writer placing files in the output directory
func NewPDFWriter(paths *config.Paths, opts ...Option) *PDFWriter {
	w := &PDFWriter{paths: paths, compress: true}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders pages to name inside the output directory and returns the
// full path written.
func (w *PDFWriter) Write(ctx context.Context, title string, pages []Page, name string) (string, error) {
	fullPath := name
	if !filepath.IsAbs(name) && w.paths != nil {
		fullPath = w.paths.OutputPath(name)
	}

	slog.InfoContext(ctx, "Writing PDF report",
		slog.String("full_path", fullPath),
		slog.Int("pages", len(pages)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", apperrors.NewReportError("create output directory", err).WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", apperrors.NewReportError("create PDF", err).WithContext("path", fullPath)
	}

	if err := w.Render(file, title, pages); err != nil {
		file.Close()
		return "", apperrors.NewReportError("render PDF", err).WithContext("path", fullPath)
	}
	if err := file.Close(); err != nil {
		return "", apperrors.NewReportError("close PDF", err).WithContext("path", fullPath)
	}
	return fullPath, nil
}

// Render writes pages as a PDF document to out
func (w *PDFWriter) Render(out io.Writer, title string, pages []Page) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(w.compress)
	pdf.SetTitle(title, true)
	pdf.SetCreator(contracts.GetVersionString(), true)

	// Core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range pages {
		pdf.AddPage()
		var current Font
		for _, op := range page.Ops {
			if op.Font != current {
				pdf.SetFont(op.Font.Family, op.Font.Style, op.Font.Size)
				current = op.Font
			}
			pdf.Text(op.X, PageHeight-op.Y, tr(op.Text))
		}
		if pdf.Err() {
			return fmt.Errorf("page %d: %w", page.Number, pdf.Error())
		}
	}

	return pdf.Output(out)
}
