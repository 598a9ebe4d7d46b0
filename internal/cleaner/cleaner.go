// Package cleaner normalizes a loaded loan table, assesses its quality and
// derives the per-loan KPI and bucket columns. Bad data is counted, never
// rejected.
package cleaner

import (
	"github.com/KaramelBytes/loanlens-cli/internal/analysis"
	"github.com/KaramelBytes/loanlens-cli/internal/loans"
)

// Options tunes the bucketing and duplicate counting.
type Options struct {
	ScoreTiers    int
	AmountBuckets int
	Duplicates    DuplicateConvention
}

// DefaultOptions returns five score tiers, ten amount buckets and the
// default duplicate convention.
func DefaultOptions() Options {
	return Options{ScoreTiers: 5, AmountBuckets: 10, Duplicates: DefaultDuplicateConvention}
}

// Report summarizes the data-quality findings of one Clean call.
type Report struct {
	Rows                int
	Columns             int
	Missing             []analysis.ColumnSummary // sorted by missing share, descending
	Absent              []string
	Coerced             map[string]int
	Dates               []DateReport
	InvalidDateOrder    []int // sheet rows
	Duplicates          int
	DuplicateConvention DuplicateConvention
	Outliers            []analysis.OutlierResult
	Bins                Bins
}

// UnparsedDates is the total number of date cells that could not be parsed.
func (r Report) UnparsedDates() int {
	n := 0
	for _, d := range r.Dates {
		n += d.Unparsed
	}
	return n
}

// CoercedCells is the total number of non-date cells coerced to null.
func (r Report) CoercedCells() int {
	n := 0
	for _, c := range r.Coerced {
		n += c
	}
	return n
}

// Clean runs every cleaning step over t.Loans in place and returns the findings.
func Clean(t *loans.Table, opts Options) Report {
	if opts.ScoreTiers <= 0 {
		opts.ScoreTiers = DefaultOptions().ScoreTiers
	}
	if opts.AmountBuckets <= 0 {
		opts.AmountBuckets = DefaultOptions().AmountBuckets
	}
	ls := t.Loans
	rep := Report{
		Rows:                len(ls),
		Columns:             len(t.Header),
		Missing:             analysis.MissingByShare(t.Profile),
		Absent:              t.Absent,
		Coerced:             t.Coerced,
		DuplicateConvention: opts.Duplicates,
	}
	rep.Dates = NormalizeDates(ls)
	rep.InvalidDateOrder = InvalidDateOrder(ls)
	rep.Duplicates = CountDuplicates(ls, opts.Duplicates)
	rep.Outliers = Outliers(ls)

	Derive(ls)
	rep.Bins.Quartiles = AssignQuartiles(ls)
	rep.Bins.Tiers = AssignTiers(ls, opts.ScoreTiers)
	rep.Bins.Amounts = AssignAmountBuckets(ls, opts.AmountBuckets)
	return rep
}
