package dataprocessing

import (
	"exoradio/pkg/contracts/domain"
)

// Selector defines how a mode turns normalized records into a Selection
type Selector interface {
	Select(records []domain.Record) domain.Selection
}

// FilterOptions configures the predicate filter
type FilterOptions struct {
	// FcThreshold is the exclusive lower bound on fc, MHz
	FcThreshold float64

	// FluxThreshold is the exclusive lower bound any one flux density must exceed, mJy
	FluxThreshold float64
}

// DefaultFilterOptions returns the thresholds of the published report
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		FcThreshold:   1,
		FluxThreshold: 1,
	}
}
