package operations

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"exoradio/internal/dataprocessing"
	"exoradio/internal/exporter"
	"exoradio/internal/report"
	"exoradio/internal/validation"
)

// LoadStage reads the catalog table
type LoadStage struct {
	Path      string
	HDU       int
	Validator *validation.FileValidator
	Out       io.Writer
}

func (s *LoadStage) ID() string { return StageLoad }

func (s *LoadStage) Execute(ctx context.Context, state *RunState) error {
	if s.Validator != nil {
		if err := s.Validator.ValidateFITSFile(s.Path); err != nil {
			return err
		}
	}

	raw, err := dataprocessing.LoadCatalog(ctx, s.Path, s.HDU)
	if err != nil {
		return err
	}
	state.Raw = raw

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("rows.loaded", len(raw)))
	fmt.Fprintf(s.Out, "Planets loaded: %d\n", len(raw))
	return nil
}

// NormalizeStage converts text columns to numbers
type NormalizeStage struct{}

func (s *NormalizeStage) ID() string { return StageNormalize }

func (s *NormalizeStage) Execute(ctx context.Context, state *RunState) error {
	records, err := dataprocessing.Normalize(state.Raw)
	if err != nil {
		return err
	}
	state.Records = records
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("rows.normalized", len(records)))
	return nil
}

// FilterStage selects and ranks the planets of the report
type FilterStage struct {
	Options dataprocessing.FilterOptions
	Out     io.Writer
}

func (s *FilterStage) ID() string { return StageFilter }

func (s *FilterStage) Execute(ctx context.Context, state *RunState) error {
	sel := dataprocessing.NewSelector(state.Mode, s.Options).Select(state.Records)
	state.Selection = sel

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("rows.after_fc", sel.AfterFc),
		attribute.Int("rows.selected", sel.Kept()),
	)

	if state.Mode.Filters() {
		fmt.Fprintf(s.Out, "Planets with fc > %g MHz: %d\n", s.Options.FcThreshold, sel.AfterFc)
		fmt.Fprintf(s.Out, "Planets with fc > %g AND any flux > %g: %d\n",
			s.Options.FcThreshold, s.Options.FluxThreshold, sel.Kept())
	}
	return nil
}

// ExportStage writes the tabular files
type ExportStage struct {
	CSV      *exporter.CSVWriter
	XLSX     *exporter.XLSXWriter // nil disables the workbook
	BaseName string
	Out      io.Writer
}

func (s *ExportStage) ID() string { return StageExport }

func (s *ExportStage) Execute(ctx context.Context, state *RunState) error {
	csvPath, err := s.CSV.WriteSelection(ctx, state.Mode, state.Selection, s.BaseName+".csv")
	if err != nil {
		return err
	}
	state.CSVPath = csvPath
	fmt.Fprintf(s.Out, "CSV created: %s\n", csvPath)

	if s.XLSX != nil {
		xlsxPath, err := s.XLSX.WriteSelection(ctx, state.Mode, state.Selection, s.BaseName+".xlsx")
		if err != nil {
			return err
		}
		state.XLSXPath = xlsxPath
		fmt.Fprintf(s.Out, "XLSX created: %s\n", xlsxPath)
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("export.csv", csvPath))
	return nil
}

// ReportStage lays out and renders the PDF
type ReportStage struct {
	PDF      *report.PDFWriter
	BaseName string
	Out      io.Writer
}

func (s *ReportStage) ID() string { return StageReport }

func (s *ReportStage) Execute(ctx context.Context, state *RunState) error {
	layout := report.LayoutFor(state.Mode)
	state.Pages = report.Paginate(layout, state.Selection)

	pdfPath, err := s.PDF.Write(ctx, layout.Title, state.Pages, s.BaseName+".pdf")
	if err != nil {
		return err
	}
	state.PDFPath = pdfPath

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("report.pages", len(state.Pages)))
	fmt.Fprintf(s.Out, "PDF created: %s\n", pdfPath)
	return nil
}
