package dataprocessing

import (
	"exoradio/pkg/contracts/domain"
)

// PredicateFilter keeps planets above the frequency and flux thresholds
type PredicateFilter struct {
	opts FilterOptions
}

// NewPredicateFilter creates a filter with the given thresholds
func NewPredicateFilter(opts FilterOptions) *PredicateFilter {
	return &PredicateFilter{opts: opts}
}

// Select implements Selector
func (p *PredicateFilter) Select(records []domain.Record) domain.Selection {
	return Select(records, p.opts)
}

// Passthrough keeps every planet
type Passthrough struct{}

// Select implements Selector
func (Passthrough) Select(records []domain.Record) domain.Selection {
	return All(records)
}

// NewSelector returns the Selector for mode
func NewSelector(mode domain.ReportMode, opts FilterOptions) Selector {
	if mode.Filters() {
		return NewPredicateFilter(opts)
	}
	return Passthrough{}
}

// Select keeps records with Fc above the frequency threshold and at least
// one flux density above the flux threshold. Both comparisons are strict
// and source order is preserved.
func Select(records []domain.Record, opts FilterOptions) domain.Selection {
	byFc := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if r.Fc > opts.FcThreshold {
			byFc = append(byFc, r)
		}
	}

	kept := make([]domain.Record, 0, len(byFc))
	for _, r := range byFc {
		if r.PhiMag > opts.FluxThreshold || r.PhiKin > opts.FluxThreshold || r.PhiCME > opts.FluxThreshold {
			kept = append(kept, r)
		}
	}

	return domain.Selection{
		Total:   len(records),
		AfterFc: len(byFc),
		Rows:    Rank(kept),
	}
}

// All keeps every record in source order
func All(records []domain.Record) domain.Selection {
	return domain.Selection{
		Total:   len(records),
		AfterFc: len(records),
		Rows:    Rank(records),
	}
}

// Rank numbers records 1..n in the order given
func Rank(records []domain.Record) []domain.RankedRecord {
	ranked := make([]domain.RankedRecord, len(records))
	for i, r := range records {
		ranked[i] = domain.RankedRecord{No: i + 1, Record: r}
	}
	return ranked
}
