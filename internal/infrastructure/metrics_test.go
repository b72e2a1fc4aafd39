package infrastructure

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMetricsObserve(t *testing.T) {
	m := NewRunMetrics()
	finished := time.Unix(1700000000, 0)

	m.Observe("filtered", 120, 7, 1, 1500*time.Millisecond, finished)
	m.Observe("full", 120, 120, 3, time.Second, finished)

	assert.Equal(t, float64(120), testutil.ToFloat64(m.RowsLoaded.WithLabelValues("filtered")))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.RowsSelected.WithLabelValues("filtered")))
	assert.Equal(t, float64(120), testutil.ToFloat64(m.RowsSelected.WithLabelValues("full")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ReportPages.WithLabelValues("full")))
	assert.InDelta(t, 1.5, testutil.ToFloat64(m.Duration.WithLabelValues("filtered")), 1e-9)
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(m.LastSuccess.WithLabelValues("full")))

	count, err := testutil.GatherAndCount(m.Gatherer())
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestRunMetricsWriteTextfile(t *testing.T) {
	m := NewRunMetrics()
	m.Observe("filtered", 3, 1, 1, time.Second, time.Now())

	path := filepath.Join(t.TempDir(), "metrics", "exoradio.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `exoradio_rows_selected{mode="filtered"} 1`)
	assert.Contains(t, string(data), "# TYPE exoradio_report_pages gauge")
}

func TestInitTracing(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		var buf bytes.Buffer
		shutdown, err := InitTracing(false, &buf, nil)
		require.NoError(t, err)

		_, span := StartStageSpan(context.Background(), "load")
		span.End()
		require.NoError(t, shutdown(context.Background()))
		assert.Zero(t, buf.Len())
	})

	t.Run("enabled", func(t *testing.T) {
		var buf bytes.Buffer
		shutdown, err := InitTracing(true, &buf, nil)
		require.NoError(t, err)

		ctx, root := Tracer().Start(context.Background(), "run")
		_, span := StartStageSpan(ctx, "filter")
		span.End()
		root.End()
		require.NoError(t, shutdown(context.Background()))

		assert.Contains(t, buf.String(), `"Name": "filter"`)
		assert.Contains(t, buf.String(), `"Name": "run"`)
	})
}
