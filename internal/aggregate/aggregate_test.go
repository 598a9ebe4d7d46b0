package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/KaramelBytes/loanlens-cli/internal/loans"
)

func str(s string) *string   { return &s }
func f64(v float64) *float64 { return &v }

func withStatus(status *string) loans.Loan {
	return loans.Loan{LoanStatus: status, Derived: loans.Derived{RiskQuartile: loans.NoBucket, ScoreTier: loans.NoBucket, AmountBucket: loans.NoBucket}}
}

func fiveRows() []loans.Loan {
	return []loans.Loan{
		withStatus(str(loans.StatusRepaid)),
		withStatus(str(loans.StatusRepaid)),
		withStatus(str(loans.StatusOngoing)),
		withStatus(str(loans.StatusOngoing)),
		withStatus(nil),
	}
}

func TestDenominatorConventions(t *testing.T) {
	ls := fiveRows()
	tests := []struct {
		d               Denominator
		repayment, dflt float64
	}{
		{AllRows, 40, 40},
		{NonNullRows, 50, 50},
	}
	for _, tt := range tests {
		p := Summarize(ls, tt.d)
		if p.RepaymentRate != tt.repayment || p.DefaultRate != tt.dflt {
			t.Fatalf("%s: repayment=%.2f default=%.2f", tt.d, p.RepaymentRate, p.DefaultRate)
		}
		g := By(ls, Dimension{Name: "all", Key: func(*loans.Loan) (string, bool) { return "all", true }})
		if len(g) != 1 || g[0].RepaymentRate(tt.d) != tt.repayment || g[0].DefaultRate(tt.d) != tt.dflt {
			t.Fatalf("%s: group rates %+v", tt.d, g)
		}
	}
	if DefaultDenominator != AllRows {
		t.Fatalf("default denominator changed")
	}
}

func TestRateOfEmptyGroupIsZero(t *testing.T) {
	if Rate(0, 0) != 0 {
		t.Fatalf("Rate(0,0) = %v", Rate(0, 0))
	}
	groups := By(nil, ScoreTier([]string{"Tier 1", "Tier 2"}))
	if len(groups) != 2 {
		t.Fatalf("empty buckets should still be emitted: %+v", groups)
	}
	for _, g := range groups {
		if g.Count != 0 || g.RepaymentRate(AllRows) != 0 || g.DefaultRate(NonNullRows) != 0 || g.MeanROI != 0 {
			t.Fatalf("empty group %+v", g)
		}
	}
	if p := Summarize(nil, AllRows); p.RepaymentRate != 0 || p.ROI != 0 || !p.TotalLent.IsZero() {
		t.Fatalf("empty portfolio %+v", p)
	}
}

func TestMonthlyGroupingIsChronological(t *testing.T) {
	dates := []time.Time{
		time.Date(2021, 2, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	ls := make([]loans.Loan, len(dates))
	for i := range dates {
		ls[i].Dates[loans.DisbursementDate] = &dates[i]
	}
	groups := By(ls, Month())
	if len(groups) != 2 || groups[0].Key != "2021-01" || groups[1].Key != "2021-02" {
		t.Fatalf("months = %+v", groups)
	}
	if groups[0].Count != 2 || groups[1].Count != 2 {
		t.Fatalf("month counts = %d %d", groups[0].Count, groups[1].Count)
	}
}

func TestNullKeyGroupSortsLast(t *testing.T) {
	ls := []loans.Loan{
		{ClientType: nil},
		{ClientType: str("returning")},
		{ClientType: str("new")},
		{ClientType: str("new")},
	}
	groups := By(ls, ClientType())
	want := []string{"new", "returning", MissingLabel}
	if len(groups) != len(want) {
		t.Fatalf("groups = %+v", groups)
	}
	for i, g := range groups {
		if g.Key != want[i] {
			t.Fatalf("group %d = %q, want %q", i, g.Key, want[i])
		}
	}
	if !groups[2].Missing || groups[0].Count != 2 {
		t.Fatalf("groups = %+v", groups)
	}
}

func TestRiskQuartileScopedToReturning(t *testing.T) {
	labels := []string{"Q1_Low", "Q2", "Q3", "Q4_High"}
	ls := []loans.Loan{
		{ClientType: str(loans.ClientNew), Derived: loans.Derived{RiskQuartile: loans.NoBucket}},
		{ClientType: str(loans.ClientReturning), Derived: loans.Derived{RiskQuartile: 3}},
		{ClientType: str(loans.ClientReturning), Derived: loans.Derived{RiskQuartile: loans.NoBucket}},
	}
	groups := By(ls, RiskQuartile(labels))
	if len(groups) != 5 {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[3].Key != "Q4_High" || groups[3].Count != 1 {
		t.Fatalf("Q4 = %+v", groups[3])
	}
	if !groups[4].Missing || groups[4].Count != 1 {
		t.Fatalf("missing group should only hold the unscored returning loan: %+v", groups[4])
	}
}

func TestTopByRateStableTies(t *testing.T) {
	groups := []Group{
		{Key: "Abuja", Count: 2, Repaid: 1},
		{Key: "Kano", Count: 1, Repaid: 1},
		{Key: "Lagos", Count: 4, Repaid: 2},
		{Key: "Oyo", Count: 4, Repaid: 0},
		{Key: MissingLabel, Missing: true, Count: 2, Repaid: 1},
	}
	rate := func(g Group) float64 { return g.RepaymentRate(AllRows) }
	top := TopByRate(groups, rate, 3)
	want := []string{"Kano", "Abuja", "Lagos"}
	for i, g := range top {
		if g.Key != want[i] {
			t.Fatalf("top[%d] = %s, want %s", i, g.Key, want[i])
		}
	}
	all := TopByRate(groups, rate, 0)
	if len(all) != 5 || all[3].Key != MissingLabel || all[4].Key != "Oyo" {
		t.Fatalf("null-key group should be ranked like any other: %+v", all)
	}
	if groups[0].Key != "Abuja" {
		t.Fatalf("input order must not change")
	}
}

func TestSummarizeMoneyAndMeans(t *testing.T) {
	ls := []loans.Loan{
		{LoanAmount: f64(0.1), TotalPaidAmount: f64(0.2), FirstInstalmentStatus: str("paid"), Derived: loans.Derived{ROI: 100, DaysDelayed: 2}},
		{LoanAmount: f64(0.2), TotalPaidAmount: f64(0.05), FirstInstalmentStatus: str("late"), Derived: loans.Derived{ROI: -75}},
		{LoanAmount: nil, FirstInstalmentStatus: nil},
	}
	p := Summarize(ls, AllRows)
	if p.TotalLent.String() != "0.3" || p.TotalCollected.String() != "0.25" || p.NetProfit.String() != "-0.05" {
		t.Fatalf("totals lent=%s collected=%s net=%s", p.TotalLent, p.TotalCollected, p.NetProfit)
	}
	if p.Profitable() {
		t.Fatalf("portfolio is at a loss")
	}
	if math.Abs(p.OnTimeRate-100.0/3) > 1e-9 {
		t.Fatalf("on-time rate = %v", p.OnTimeRate)
	}
	if Summarize(ls, NonNullRows).OnTimeRate != 50 {
		t.Fatalf("non-null on-time rate should ignore the null instalment")
	}
	if math.Abs(p.ROI-25.0/3) > 1e-9 || math.Abs(p.MeanDaysDelayed-2.0/3) > 1e-9 {
		t.Fatalf("roi=%v delay=%v", p.ROI, p.MeanDaysDelayed)
	}
}
