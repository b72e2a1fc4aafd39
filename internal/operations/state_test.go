package operations

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"exoradio/pkg/contracts/domain"
)

func TestRunState(t *testing.T) {
	s := NewRunState("id", domain.ReportModeFull, StageLoad, StageNormalize)

	assert.Equal(t, RunStatusRunning, s.Status)
	assert.Equal(t, []string{StageLoad, StageNormalize}, s.StageOrder())
	assert.Equal(t, StageStatusPending, s.Stage(StageLoad).Status)

	extra := s.Stage("extra")
	assert.Equal(t, StageStatusPending, extra.Status)
	assert.Equal(t, []string{StageLoad, StageNormalize, "extra"}, s.StageOrder())

	s.Complete()
	assert.Equal(t, RunStatusCompleted, s.Status)
	assert.GreaterOrEqual(t, s.Duration(), time.Duration(0))
}

func TestStageState(t *testing.T) {
	st := &StageState{ID: StageFilter, Status: StageStatusPending}
	assert.Zero(t, st.Duration())

	st.Start()
	assert.Equal(t, StageStatusActive, st.Status)

	err := errors.New("bad")
	st.Fail(err)
	assert.Equal(t, StageStatusFailed, st.Status)
	assert.Equal(t, err, st.Error)
	assert.GreaterOrEqual(t, st.Duration(), time.Duration(0))
}
