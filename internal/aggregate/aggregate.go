// Package aggregate groups cleaned loans by a cohort dimension and computes
// the per-group and portfolio-wide KPIs.
package aggregate

import (
	"sort"

	"github.com/KaramelBytes/loanlens-cli/internal/loans"
)

// Denominator selects which rows a status rate is divided by.
type Denominator int

const (
	// AllRows divides by every row of the group, null statuses included.
	AllRows Denominator = iota
	// NonNullRows divides by the rows with a known loan status.
	NonNullRows
)

// DefaultDenominator is the rate convention used by reports and charts.
const DefaultDenominator = AllRows

func (d Denominator) String() string {
	if d == NonNullRows {
		return "non-null rows"
	}
	return "all rows"
}

// MissingLabel names the group of rows whose key is null.
const MissingLabel = "(missing)"

// Rate returns matching/denominator in percent, 0 for an empty denominator.
func Rate(matching, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(matching) / float64(denominator) * 100
}

// Group is the aggregate of every loan sharing one dimension key.
type Group struct {
	Key     string
	Missing bool

	Count     int
	Repaid    int
	Defaulted int // loan_ongoing
	Known     int // non-null loan_status

	MeanLoanAmount  float64
	MeanROI         float64
	MeanDaysDelayed float64

	sumAmount float64
	nAmount   int
	sumROI    float64
	sumDelay  float64
}

func (g *Group) add(l *loans.Loan) {
	g.Count++
	switch l.Status() {
	case loans.StatusRepaid:
		g.Repaid++
	case loans.StatusOngoing:
		g.Defaulted++
	}
	if l.LoanStatus != nil {
		g.Known++
	}
	if l.LoanAmount != nil {
		g.sumAmount += *l.LoanAmount
		g.nAmount++
	}
	g.sumROI += l.Derived.ROI
	g.sumDelay += l.Derived.DaysDelayed
}

func (g *Group) finish() {
	if g.nAmount > 0 {
		g.MeanLoanAmount = g.sumAmount / float64(g.nAmount)
	}
	if g.Count > 0 {
		g.MeanROI = g.sumROI / float64(g.Count)
		g.MeanDaysDelayed = g.sumDelay / float64(g.Count)
	}
}

func (g Group) denominator(d Denominator) int {
	if d == NonNullRows {
		return g.Known
	}
	return g.Count
}

// RepaymentRate is the share of loan_repaid rows in percent.
func (g Group) RepaymentRate(d Denominator) float64 { return Rate(g.Repaid, g.denominator(d)) }

// DefaultRate is the share of loan_ongoing rows in percent.
func (g Group) DefaultRate(d Denominator) float64 { return Rate(g.Defaulted, g.denominator(d)) }

// By groups ls along dim. Groups come out in the dimension's natural order
// with the null-key group last. Every label of a bucketed dimension is
// emitted, empty or not.
func By(ls []loans.Loan, dim Dimension) []Group {
	index := map[string]*Group{}
	var order []*Group
	get := func(key string, missing bool) *Group {
		id := key
		if missing {
			id = "\x00missing"
		}
		if g, ok := index[id]; ok {
			return g
		}
		g := &Group{Key: key, Missing: missing}
		index[id] = g
		order = append(order, g)
		return g
	}
	for _, label := range dim.Labels {
		get(label, false)
	}
	for i := range ls {
		l := &ls[i]
		if dim.Scope != nil && !dim.Scope(l) {
			continue
		}
		key, ok := dim.Key(l)
		if !ok {
			get(MissingLabel, true).add(l)
			continue
		}
		get(key, false).add(l)
	}

	rank := make(map[string]int, len(dim.Labels))
	for i, label := range dim.Labels {
		rank[label] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Missing != b.Missing {
			return b.Missing
		}
		if dim.Labels != nil {
			return rank[a.Key] < rank[b.Key]
		}
		return a.Key < b.Key
	})
	out := make([]Group, len(order))
	for i, g := range order {
		g.finish()
		out[i] = *g
	}
	return out
}

// TopByRate returns the n groups with the highest rate, ties in their
// original order. n <= 0 keeps all groups.
func TopByRate(groups []Group, rate func(Group) float64, n int) []Group {
	ranked := make([]Group, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool { return rate(ranked[i]) > rate(ranked[j]) })
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
