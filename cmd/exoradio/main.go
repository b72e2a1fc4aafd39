// Command exoradio builds the exoplanet radio emission reports from a FITS
// catalog: a filtered, ranked CSV and PDF of planets whose predicted
// emission clears the thresholds, or a full dump of every planet.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"exoradio/internal/config"
	"exoradio/internal/infrastructure"
	"exoradio/internal/operations"
	"exoradio/internal/store"
	"exoradio/pkg/contracts"
	"exoradio/pkg/contracts/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		attrs := []any{slog.String("error", err.Error())}
		if stage := operations.StageOf(err); stage != "" {
			attrs = append(attrs, slog.String("stage", stage))
		}
		if operations.IsCancellation(err) {
			infrastructure.GetLogger().Warn("Run cancelled", attrs...)
		} else {
			infrastructure.GetLogger().Error("exoradio failed", attrs...)
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "exoradio",
		Short:         "Exoplanet radio emission report generator",
		Long:          "Reads predicted radio emission of exoplanets from a FITS table and writes CSV and PDF reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "configuration file (default: config.yaml if present)")

	root.AddCommand(
		newReportCommand(domain.ReportModeFiltered, opts,
			"Report planets with fc and any flux density above the thresholds"),
		newReportCommand(domain.ReportModeFull, opts,
			"Report every planet in the catalog"),
		newHistoryCommand(opts),
		newVersionCommand(),
	)
	return root
}

type reportFlags struct {
	input string
	out   string
	xlsx  bool
}

func newReportCommand(mode domain.ReportMode, opts *rootOptions, short string) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   mode.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts, flags)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), cfg, mode, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "FITS catalog to read (default asu.fit)")
	cmd.Flags().StringVar(&flags.out, "out", "", "directory for the report files (default .)")
	cmd.Flags().BoolVar(&flags.xlsx, "xlsx", false, "also write an Excel workbook")
	return cmd
}

// loadConfig layers command line flags over the loaded configuration
func loadConfig(cmd *cobra.Command, opts *rootOptions, flags *reportFlags) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if flags == nil {
		return cfg, nil
	}

	if cmd.Flags().Changed("input") {
		cfg.Input.Path = flags.input
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.Dir = flags.out
	}
	if cmd.Flags().Changed("xlsx") {
		cfg.Export.XLSX = flags.xlsx
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runReport(ctx context.Context, cfg *config.Config, mode domain.ReportMode, stdout io.Writer) error {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return err
	}
	paths.LogPathResolution(logger)

	shutdown, err := infrastructure.InitTracing(cfg.Tracing.Enabled, os.Stderr, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	runnerOpts := operations.Options{
		Config: cfg,
		Paths:  paths,
		Out:    stdout,
		Logger: logger,
	}
	if cfg.Metrics.Textfile != "" {
		runnerOpts.Metrics = infrastructure.NewRunMetrics()
	}
	if cfg.History.DBPath != "" {
		hist, err := store.Open(ctx, cfg.History.DBPath)
		if err != nil {
			return err
		}
		defer hist.Close()
		runnerOpts.History = hist
	}

	result, err := operations.NewRunner(runnerOpts).Run(ctx, mode)
	if err != nil {
		return err
	}

	logger.Info("Report complete",
		slog.String("run_id", result.RunID),
		slog.String("mode", result.Mode.String()),
		slog.Int("selected_rows", result.SelectedRows),
		slog.Int("pages", result.Pages))
	return nil
}

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent report runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts, nil)
			if err != nil {
				return err
			}
			if cfg.History.DBPath == "" {
				return fmt.Errorf("run history is disabled; set history.db_path or EXORADIO_HISTORY_DB_PATH")
			}

			hist, err := store.Open(cmd.Context(), cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer hist.Close()

			runs, err := hist.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list (0 for all)")
	return cmd
}

const runRowFormat = "%-36s  %-8s  %-7s  %6s  %8s  %5s  %s\n"

func printRuns(w io.Writer, runs []store.Run) {
	fmt.Fprintf(w, runRowFormat, "RUN ID", "MODE", "STATUS", "ROWS", "SELECTED", "PAGES", "STARTED")
	for _, r := range runs {
		fmt.Fprintf(w, runRowFormat,
			r.ID, r.Mode, r.Status,
			fmt.Sprint(r.TotalRows), fmt.Sprint(r.SelectedRows), fmt.Sprint(r.Pages),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}
