package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMaxFlux(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected float64
	}{
		{"magnetic largest", Record{PhiMag: 5, PhiKin: 1, PhiCME: 2}, 5},
		{"kinetic largest", Record{PhiMag: 0, PhiKin: 3.5, PhiCME: 2}, 3.5},
		{"cme largest", Record{PhiMag: 0, PhiKin: 0, PhiCME: 2}, 2},
		{"all zero", Record{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.MaxFlux())
		})
	}
}

func TestParseReportMode(t *testing.T) {
	mode, err := ParseReportMode("filtered")
	require.NoError(t, err)
	assert.Equal(t, ReportModeFiltered, mode)
	assert.True(t, mode.Filters())

	mode, err = ParseReportMode("full")
	require.NoError(t, err)
	assert.Equal(t, ReportModeFull, mode)
	assert.False(t, mode.Filters())

	_, err = ParseReportMode("FULL")
	assert.Error(t, err)
}

func TestSelectionKept(t *testing.T) {
	s := Selection{Total: 3, AfterFc: 2, Rows: []RankedRecord{{No: 1}}}
	assert.Equal(t, 1, s.Kept())
}
