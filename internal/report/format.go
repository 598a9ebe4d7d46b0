package report

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/loanlens-cli/internal/aggregate"
	"github.com/KaramelBytes/loanlens-cli/internal/pipeline"
)

func pct(v float64) string { return fmt.Sprintf("%.2f%%", v) }

func num(v float64) string { return fmt.Sprintf("%.2f", v) }

var groupHeader = []string{"Group", "Loans", "Repayment", "Default", "Avg amount", "Avg ROI", "Avg days delayed"}

func groupRows(s *pipeline.Summary, groups []aggregate.Group) [][]string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key,
			fmt.Sprintf("%d", g.Count),
			pct(s.RepaymentRate(g)),
			pct(s.DefaultRate(g)),
			num(g.MeanLoanAmount),
			pct(g.MeanROI),
			num(g.MeanDaysDelayed),
		})
	}
	return rows
}

var qualityHeader = []string{"Column", "Missing", "Missing %"}

func missingRows(s *pipeline.Summary) [][]string {
	rows := make([][]string, 0, len(s.Quality.Missing))
	for _, c := range s.Quality.Missing {
		rows = append(rows, []string{c.Name, fmt.Sprintf("%d", c.Missing), pct(c.MissingPct())})
	}
	return rows
}

var outlierHeader = []string{"Column", "Values", "Q1", "Q3", "IQR", "Outliers"}

func outlierRows(s *pipeline.Summary) [][]string {
	rows := make([][]string, 0, len(s.Quality.Outliers))
	for _, o := range s.Quality.Outliers {
		rows = append(rows, []string{o.Column, fmt.Sprintf("%d", o.N), num(o.Q1), num(o.Q3), num(o.IQR), fmt.Sprintf("%d", o.Count)})
	}
	return rows
}

// qualityLines are the scalar data-quality counts in display order.
func qualityLines(s *pipeline.Summary) []string {
	q := s.Quality
	lines := []string{
		fmt.Sprintf("Invalid date order (disbursed after first due date): %d", len(q.InvalidDateOrder)),
		fmt.Sprintf("Duplicate rows (%s): %d", q.DuplicateConvention, q.Duplicates),
		fmt.Sprintf("Unparsed date cells: %d", q.UnparsedDates()),
		fmt.Sprintf("Malformed cells read as null: %d", q.CoercedCells()),
	}
	if len(q.Coerced) > 0 {
		cols := make([]string, 0, len(q.Coerced))
		for c := range q.Coerced {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		for _, c := range cols {
			lines = append(lines, fmt.Sprintf("  %s: %d", c, q.Coerced[c]))
		}
	}
	for _, d := range q.Dates {
		if d.Unparsed > 0 {
			lines = append(lines, fmt.Sprintf("  %s (%s): %d unparsed", d.Column, d.Mode, d.Unparsed))
		}
	}
	if len(q.Absent) > 0 {
		lines = append(lines, fmt.Sprintf("Optional columns absent: %d", len(q.Absent)))
	}
	return lines
}

// portfolioLines are the headline KPIs, money in billions.
func portfolioLines(s *pipeline.Summary) []string {
	p := s.Portfolio
	return []string{
		fmt.Sprintf("Total loans: %d", p.Loans),
		fmt.Sprintf("Total lent: %sB", pipeline.Billions(p.TotalLent)),
		fmt.Sprintf("Total collected: %sB", pipeline.Billions(p.TotalCollected)),
		fmt.Sprintf("Net profit/loss: %sB", pipeline.Billions(p.NetProfit)),
		fmt.Sprintf("Repayment rate: %s", pct(p.RepaymentRate)),
		fmt.Sprintf("Default rate: %s", pct(p.DefaultRate)),
		fmt.Sprintf("First instalment paid on time: %s", pct(p.OnTimeRate)),
		fmt.Sprintf("Portfolio ROI: %s", pct(p.ROI)),
		fmt.Sprintf("Avg days delayed (previous loan): %s", num(p.MeanDaysDelayed)),
	}
}

type groupSection struct {
	section Section
	title   string
	groups  func(*pipeline.Summary) []aggregate.Group
}

var groupSections = []groupSection{
	{SectionClients, "Client Types", func(s *pipeline.Summary) []aggregate.Group { return s.ByClient }},
	{SectionQuartiles, "Risk Quartiles (returning clients)", func(s *pipeline.Summary) []aggregate.Group { return s.ByQuartile }},
	{SectionTiers, "Score Tiers", func(s *pipeline.Summary) []aggregate.Group { return s.ByTier }},
	{SectionStates, "Top States by Repayment Rate", func(s *pipeline.Summary) []aggregate.Group { return s.TopStates }},
	{SectionMonthly, "Monthly Trend (disbursement month)", func(s *pipeline.Summary) []aggregate.Group { return s.ByMonth }},
	{SectionAmounts, "Loan Amount Buckets", func(s *pipeline.Summary) []aggregate.Group { return s.ByAmount }},
}
