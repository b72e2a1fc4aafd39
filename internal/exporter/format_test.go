package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"exoradio/pkg/contracts/domain"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{13.4, "13.40"},
		{2.346, "2.35"},
		{1234.5678, "1234.57"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in))
	}
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, []string{"No", "Planet", "fc", "Phimag", "Phikin", "PhiCME"}, Headers(domain.ReportModeFiltered))
	assert.Equal(t, []string{"Planet", "fc", "Phimag", "Phikin", "PhiCME"}, Headers(domain.ReportModeFull))
}

func TestFormatRow(t *testing.T) {
	r := domain.RankedRecord{No: 4, Record: domain.Record{
		Row: 17, Planet: "A very long planet designation b", Fc: 3, PhiMag: 0.126, PhiKin: 10, PhiCME: 2.5,
	}}

	assert.Equal(t,
		[]string{"4", "A very long planet designation b", "3.00", "0.13", "10.00", "2.50"},
		FormatRow(domain.ReportModeFiltered, r))
	assert.Equal(t,
		[]string{"A very long planet designation b", "3.00", "0.13", "10.00", "2.50"},
		FormatRow(domain.ReportModeFull, r))
}
