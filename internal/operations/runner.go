package operations

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"exoradio/internal/config"
	"exoradio/internal/dataprocessing"
	"exoradio/internal/exporter"
	"exoradio/internal/infrastructure"
	"exoradio/internal/report"
	"exoradio/internal/store"
	"exoradio/internal/validation"
	"exoradio/pkg/contracts/domain"
)

// Output file base names per mode
const (
	FilteredBaseName = "exoplanets_fc_and_flux_over1"
	FullBaseName     = "exoplanets_all"
)

// BaseName returns the output file name, without extension, of mode
func BaseName(mode domain.ReportMode) string {
	if mode.Filters() {
		return FilteredBaseName
	}
	return FullBaseName
}

// Options configures a Runner
type Options struct {
	Config  *config.Config
	Paths   *config.Paths
	Out     io.Writer // progress lines
	Logger  *slog.Logger
	Metrics MetricsRecorder // optional
	History HistoryRecorder // optional
}

// Result summarizes a successful run
type Result struct {
	RunID        string
	Mode         domain.ReportMode
	TotalRows    int
	AfterFc      int
	SelectedRows int
	Pages        int
	CSVPath      string
	PDFPath      string
	XLSXPath     string
	Duration     time.Duration
}

// Runner executes report runs
type Runner struct {
	cfg     *config.Config
	paths   *config.Paths
	out     io.Writer
	logger  *slog.Logger
	metrics MetricsRecorder
	history HistoryRecorder
}

// NewRunner creates a runner
func NewRunner(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		cfg:     opts.Config,
		paths:   opts.Paths,
		out:     out,
		logger:  logger.With(slog.String("component", "runner")),
		metrics: opts.Metrics,
		history: opts.History,
	}
}

// Stages returns the stage list of mode in execution order
func (r *Runner) Stages(mode domain.ReportMode) []Stage {
	var xlsx *exporter.XLSXWriter
	if r.cfg.Export.XLSX {
		xlsx = exporter.NewXLSXWriter(r.paths)
	}
	base := BaseName(mode)

	return []Stage{
		&LoadStage{
			Path:      r.paths.InputFile,
			HDU:       r.cfg.Input.HDU,
			Validator: validation.NewFileValidator(r.logger),
			Out:       r.out,
		},
		&NormalizeStage{},
		&FilterStage{
			Options: dataprocessing.FilterOptions{
				FcThreshold:   r.cfg.Filter.FcThreshold,
				FluxThreshold: r.cfg.Filter.FluxThreshold,
			},
			Out: r.out,
		},
		&ExportStage{CSV: exporter.NewCSVWriter(r.paths), XLSX: xlsx, BaseName: base, Out: r.out},
		&ReportStage{PDF: report.NewPDFWriter(r.paths), BaseName: base, Out: r.out},
	}
}

// Run executes every stage of mode. The first failing stage aborts the run
// with an *OperationError.
func (r *Runner) Run(ctx context.Context, mode domain.ReportMode) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	stages := r.Stages(mode)
	ids := make([]string, len(stages))
	for i, s := range stages {
		ids[i] = s.ID()
	}
	state := NewRunState(runID, mode, ids...)

	ctx, span := infrastructure.Tracer().Start(ctx, "run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("run.mode", mode.String()),
	))
	defer span.End()

	r.logger.InfoContext(ctx, "run_start",
		slog.String("mode", mode.String()),
		slog.String("input", r.paths.InputFile),
		slog.String("output_dir", r.paths.OutputDir))
	r.recordStart(ctx, state)

	if err := r.paths.EnsureDirectories(); err != nil {
		return nil, r.fail(ctx, span, state, StageExport, err)
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, r.fail(ctx, span, state, stage.ID(), err)
		}
		if err := r.executeStage(ctx, stage, state); err != nil {
			return nil, r.fail(ctx, span, state, stage.ID(), err)
		}
	}

	state.Complete()
	result := resultFrom(state)

	r.logger.InfoContext(ctx, "run_complete",
		slog.String("mode", mode.String()),
		slog.Int("total_rows", result.TotalRows),
		slog.Int("selected_rows", result.SelectedRows),
		slog.Int("pages", result.Pages),
		slog.Duration("duration", result.Duration))

	r.recordFinish(ctx, state, store.StatusSuccess)
	r.observe(state)
	return result, nil
}

func (r *Runner) executeStage(ctx context.Context, stage Stage, state *RunState) error {
	st := state.Stage(stage.ID())
	ctx, span := infrastructure.StartStageSpan(ctx, stage.ID())
	defer span.End()

	st.Start()
	r.logger.DebugContext(ctx, "stage_start", slog.String("stage", stage.ID()))

	if err := stage.Execute(ctx, state); err != nil {
		st.Fail(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	st.Complete()
	r.logger.InfoContext(ctx, "stage_complete",
		slog.String("stage", stage.ID()),
		slog.Duration("duration", st.Duration()))
	return nil
}

func (r *Runner) fail(ctx context.Context, span trace.Span, state *RunState, stage string, cause error) error {
	state.Fail()
	opErr := NewOperationError(stage, cause)

	span.RecordError(opErr)
	span.SetStatus(codes.Error, opErr.Error())

	// Cancellation must not stop the failure from being recorded
	recordCtx := context.WithoutCancel(ctx)
	r.logger.ErrorContext(recordCtx, "run_failed",
		slog.String("stage", stage),
		slog.String("error", cause.Error()))

	if r.history != nil {
		if err := r.history.SaveRunError(recordCtx, state.ID, stage, cause); err != nil {
			r.logger.WarnContext(recordCtx, "failed to record run error", slog.String("error", err.Error()))
		}
	}
	r.recordFinish(recordCtx, state, store.StatusFailed)
	return opErr
}

func (r *Runner) recordStart(ctx context.Context, state *RunState) {
	if r.history == nil {
		return
	}
	err := r.history.SaveRun(ctx, store.Run{
		ID:        state.ID,
		Mode:      state.Mode.String(),
		InputPath: r.paths.InputFile,
		Status:    store.StatusRunning,
		StartedAt: state.StartTime,
	})
	if err != nil {
		r.logger.WarnContext(ctx, "failed to record run start", slog.String("error", err.Error()))
	}
}

func (r *Runner) recordFinish(ctx context.Context, state *RunState, status string) {
	if r.history == nil {
		return
	}
	err := r.history.FinishRun(ctx, store.Run{
		ID:           state.ID,
		TotalRows:    state.Selection.Total,
		SelectedRows: state.Selection.Kept(),
		Pages:        len(state.Pages),
		CSVPath:      state.CSVPath,
		PDFPath:      state.PDFPath,
		XLSXPath:     state.XLSXPath,
		Status:       status,
		FinishedAt:   state.EndTime,
	})
	if err != nil {
		r.logger.WarnContext(ctx, "failed to record run finish", slog.String("error", err.Error()))
	}
}

func (r *Runner) observe(state *RunState) {
	if r.metrics == nil {
		return
	}
	r.metrics.Observe(state.Mode.String(), state.Selection.Total, state.Selection.Kept(),
		len(state.Pages), state.Duration(), state.EndTime)

	if path := r.cfg.Metrics.Textfile; path != "" {
		if err := r.metrics.WriteTextfile(path); err != nil {
			r.logger.Warn("failed to write metrics textfile",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}
}

func resultFrom(state *RunState) *Result {
	return &Result{
		RunID:        state.ID,
		Mode:         state.Mode,
		TotalRows:    state.Selection.Total,
		AfterFc:      state.Selection.AfterFc,
		SelectedRows: state.Selection.Kept(),
		Pages:        len(state.Pages),
		CSVPath:      state.CSVPath,
		PDFPath:      state.PDFPath,
		XLSXPath:     state.XLSXPath,
		Duration:     state.Duration(),
	}
}
