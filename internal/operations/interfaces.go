package operations

import (
	"context"
	"time"

	"exoradio/internal/store"
)

// HistoryRecorder persists the lifecycle of runs
type HistoryRecorder interface {
	SaveRun(ctx context.Context, run store.Run) error
	FinishRun(ctx context.Context, run store.Run) error
	SaveRunError(ctx context.Context, runID, stage string, cause error) error
}

// MetricsRecorder receives the counts of a successful run
type MetricsRecorder interface {
	Observe(mode string, loaded, selected, pages int, elapsed time.Duration, finished time.Time)
	WriteTextfile(path string) error
}
