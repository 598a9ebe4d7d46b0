// Package pipeline runs one analysis pass: load, clean, aggregate.
package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/KaramelBytes/loanlens-cli/internal/aggregate"
	"github.com/KaramelBytes/loanlens-cli/internal/cleaner"
	"github.com/KaramelBytes/loanlens-cli/internal/loader"
	"github.com/KaramelBytes/loanlens-cli/internal/loans"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options configures an analysis run.
type Options struct {
	RunID       string // generated when empty
	Path        string
	Sheet       string
	Cleaner     cleaner.Options
	Denominator aggregate.Denominator
	TopStates   int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Path:        "CS.xlsx",
		Sheet:       "CLA",
		Cleaner:     cleaner.DefaultOptions(),
		Denominator: aggregate.DefaultDenominator,
		TopStates:   10,
	}
}

// Summary is everything the reporters and charts need from one run.
type Summary struct {
	RunID       string
	Source      string
	Sheet       string
	Started     time.Time
	Denominator aggregate.Denominator

	Quality   cleaner.Report
	Portfolio aggregate.Portfolio

	ByClient   []aggregate.Group
	ByQuartile []aggregate.Group
	ByTier     []aggregate.Group
	ByAmount   []aggregate.Group
	ByMonth    []aggregate.Group
	ByState    []aggregate.Group
	TopStates  []aggregate.Group

	Findings []Finding
	Loans    []loans.Loan
}

// Analyze loads opts.Path and summarizes it.
func Analyze(opts Options, log *logrus.Logger) (*Summary, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	entry := log.WithFields(logrus.Fields{"run_id": opts.RunID, "path": opts.Path, "sheet": opts.Sheet})
	entry.Info("loading loan dataset")
	tbl, err := loader.Load(opts.Path, opts.Sheet, loans.LoanSchema())
	if err != nil {
		return nil, err
	}
	entry.WithFields(logrus.Fields{"rows": len(tbl.Loans), "columns": len(tbl.Header)}).Info("dataset loaded")
	if len(tbl.Absent) > 0 {
		entry.WithField("columns", tbl.Absent).Warn("optional columns absent, reading them as null")
	}
	return Summarize(tbl, opts, log), nil
}

// Summarize cleans tbl in place and computes every aggregate.
func Summarize(tbl *loans.Table, opts Options, log *logrus.Logger) *Summary {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	s := &Summary{
		RunID:       opts.RunID,
		Source:      tbl.Source,
		Sheet:       tbl.Sheet,
		Started:     time.Now().UTC(),
		Denominator: opts.Denominator,
	}
	entry := log.WithField("run_id", s.RunID)
	entry.Debug("cleaning and deriving KPI columns")
	s.Quality = cleaner.Clean(tbl, opts.Cleaner)
	for _, d := range s.Quality.Dates {
		if d.Unparsed > 0 {
			entry.WithFields(logrus.Fields{"column": d.Column, "unparsed": d.Unparsed}).Warn("date cells could not be parsed")
		}
	}
	ls := tbl.Loans
	s.Loans = ls

	entry.Debug("aggregating cohorts")
	s.Portfolio = aggregate.Summarize(ls, opts.Denominator)
	s.ByClient = aggregate.By(ls, aggregate.ClientType())
	s.ByQuartile = aggregate.By(ls, aggregate.RiskQuartile(s.Quality.Bins.Quartiles))
	s.ByTier = aggregate.By(ls, aggregate.ScoreTier(s.Quality.Bins.Tiers))
	s.ByAmount = aggregate.By(ls, aggregate.AmountBucket(s.Quality.Bins.AmountLabels()))
	s.ByMonth = aggregate.By(ls, aggregate.Month())
	s.ByState = aggregate.By(ls, aggregate.State())
	s.TopStates = aggregate.TopByRate(s.ByState, s.RepaymentRate, opts.TopStates)
	s.Findings = Findings(s)
	return s
}

// RepaymentRate is a group's repayment rate under the run's convention.
func (s *Summary) RepaymentRate(g aggregate.Group) float64 { return g.RepaymentRate(s.Denominator) }

// DefaultRate is a group's default rate under the run's convention.
func (s *Summary) DefaultRate(g aggregate.Group) float64 { return g.DefaultRate(s.Denominator) }

// LoanAmounts returns the non-null loan amounts.
func (s *Summary) LoanAmounts() []float64 {
	out := make([]float64, 0, len(s.Loans))
	for i := range s.Loans {
		if v := s.Loans[i].LoanAmount; v != nil && !math.IsNaN(*v) {
			out = append(out, *v)
		}
	}
	return out
}

// ProfitLoss returns the non-null per-loan profit/loss values.
func (s *Summary) ProfitLoss() []float64 {
	out := make([]float64, 0, len(s.Loans))
	for i := range s.Loans {
		if v := s.Loans[i].Derived.ProfitLoss; v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Group looks up a group by key, reporting whether it exists.
func Group(groups []aggregate.Group, key string) (aggregate.Group, bool) {
	for _, g := range groups {
		if g.Key == key && !g.Missing {
			return g, true
		}
	}
	return aggregate.Group{}, false
}

func (s *Summary) String() string {
	return fmt.Sprintf("run %s: %d loans from %s", s.RunID, s.Portfolio.Loans, s.Source)
}
