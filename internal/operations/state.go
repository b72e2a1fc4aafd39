package operations

import (
	"time"

	"exoradio/internal/report"
	"exoradio/pkg/contracts/domain"
)

// RunStatus represents the overall run status
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunState carries data between the stages of one run
type RunState struct {
	ID        string
	Mode      domain.ReportMode
	Status    RunStatus
	StartTime time.Time
	EndTime   time.Time

	// Stage outputs
	Raw       []domain.RawRecord
	Records   []domain.Record
	Selection domain.Selection
	Pages     []report.Page
	CSVPath   string
	XLSXPath  string
	PDFPath   string

	Stages map[string]*StageState
	order  []string
}

// NewRunState creates the state of a run with the given stages pending
func NewRunState(id string, mode domain.ReportMode, stageIDs ...string) *RunState {
	s := &RunState{
		ID:        id,
		Mode:      mode,
		Status:    RunStatusRunning,
		StartTime: time.Now(),
		Stages:    make(map[string]*StageState, len(stageIDs)),
		order:     stageIDs,
	}
	for _, id := range stageIDs {
		s.Stages[id] = &StageState{ID: id, Status: StageStatusPending}
	}
	return s
}

// Stage returns the state of stage id, creating it if needed
func (s *RunState) Stage(id string) *StageState {
	st, ok := s.Stages[id]
	if !ok {
		st = &StageState{ID: id, Status: StageStatusPending}
		s.Stages[id] = st
		s.order = append(s.order, id)
	}
	return st
}

// StageOrder returns stage IDs in execution order
func (s *RunState) StageOrder() []string {
	return append([]string(nil), s.order...)
}

// Complete marks the run as completed
func (s *RunState) Complete() {
	s.Status = RunStatusCompleted
	s.EndTime = time.Now()
}

// Fail marks the run as failed
func (s *RunState) Fail() {
	s.Status = RunStatusFailed
	s.EndTime = time.Now()
}

// Duration returns the elapsed time of the run
func (s *RunState) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
