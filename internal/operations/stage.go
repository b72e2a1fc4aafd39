package operations

import (
	"context"
	"time"
)

// Stage IDs, in execution order
const (
	StageLoad      = "load"
	StageNormalize = "normalize"
	StageFilter    = "filter"
	StageExport    = "export"
	StageReport    = "report"
)

// Stage represents a single stage of a run
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Execute runs the stage, reading inputs from and writing outputs to state
	Execute(ctx context.Context, state *RunState) error
}

// StageStatus represents the current status of a stage
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
)

// StageState represents the runtime state of a stage
type StageState struct {
	ID        string      `json:"id"`
	Status    StageStatus `json:"status"`
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
	Error     error       `json:"-"`
}

// Duration returns how long the stage ran, or zero if it has not finished
func (s *StageState) Duration() time.Duration {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Start marks the stage as active
func (s *StageState) Start() {
	s.Status = StageStatusActive
	s.StartTime = time.Now()
}

// Complete marks the stage as completed
func (s *StageState) Complete() {
	s.Status = StageStatusCompleted
	s.EndTime = time.Now()
}

// Fail marks the stage as failed with err
func (s *StageState) Fail(err error) {
	s.Status = StageStatusFailed
	s.EndTime = time.Now()
	s.Error = err
}
