package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics holds the gauges describing the last run of each report mode.
// They live on a private registry and are written in the node_exporter
// textfile format, since the process exits before anything could scrape it.
type RunMetrics struct {
	registry *prometheus.Registry

	RowsLoaded   *prometheus.GaugeVec
	RowsSelected *prometheus.GaugeVec
	ReportPages  *prometheus.GaugeVec
	Duration     *prometheus.GaugeVec
	LastSuccess  *prometheus.GaugeVec
}

// NewRunMetrics creates and registers the run gauges
func NewRunMetrics() *RunMetrics {
	labels := []string{"mode"}
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		RowsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "exoradio_rows_loaded",
			Help: "Rows read from the source catalog.",
		}, labels),
		RowsSelected: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "exoradio_rows_selected",
			Help: "Rows written to the report.",
		}, labels),
		ReportPages: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "exoradio_report_pages",
			Help: "Pages in the generated PDF report.",
		}, labels),
		Duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "exoradio_run_duration_seconds",
			Help: "Wall-clock duration of the run.",
		}, labels),
		LastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "exoradio_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.",
		}, labels),
	}
	m.registry.MustRegister(m.RowsLoaded, m.RowsSelected, m.ReportPages, m.Duration, m.LastSuccess)
	return m
}

// Observe records the outcome of a successful run
func (m *RunMetrics) Observe(mode string, loaded, selected, pages int, elapsed time.Duration, finished time.Time) {
	m.RowsLoaded.WithLabelValues(mode).Set(float64(loaded))
	m.RowsSelected.WithLabelValues(mode).Set(float64(selected))
	m.ReportPages.WithLabelValues(mode).Set(float64(pages))
	m.Duration.WithLabelValues(mode).Set(elapsed.Seconds())
	m.LastSuccess.WithLabelValues(mode).Set(float64(finished.Unix()))
}

// WriteTextfile writes all gauges to path, creating its directory
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Gatherer exposes the registry for inspection
func (m *RunMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
