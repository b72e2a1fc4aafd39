package domain

import "fmt"

// ReportMode names one of the two report deliverables.
type ReportMode string

const (
	// ReportModeFiltered keeps planets with fc above threshold and at least
	// one flux density above threshold, and numbers them from 1.
	ReportModeFiltered ReportMode = "filtered"
	// ReportModeFull dumps every planet without filtering.
	ReportModeFull ReportMode = "full"
)

// ParseReportMode converts a user-supplied string into a ReportMode.
func ParseReportMode(s string) (ReportMode, error) {
	switch ReportMode(s) {
	case ReportModeFiltered, ReportModeFull:
		return ReportMode(s), nil
	default:
		return "", fmt.Errorf("unknown report mode %q (want %q or %q)", s, ReportModeFiltered, ReportModeFull)
	}
}

// Filters reports whether the mode applies the threshold predicates.
func (m ReportMode) Filters() bool {
	return m == ReportModeFiltered
}

// String implements fmt.Stringer
func (m ReportMode) String() string {
	return string(m)
}
