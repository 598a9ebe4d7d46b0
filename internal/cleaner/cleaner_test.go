package cleaner

import (
	"math"
	"testing"
	"time"

	"github.com/KaramelBytes/loanlens-cli/internal/loader"
	"github.com/KaramelBytes/loanlens-cli/internal/loans"
	"github.com/KaramelBytes/loanlens-cli/internal/testutil"
)

func f64(v float64) *float64 { return &v }
func str(s string) *string   { return &s }

func loadFixture(t *testing.T) *loans.Table {
	t.Helper()
	tbl, err := loader.Load(testutil.LoanWorkbook(t), "CLA", loans.LoanSchema())
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return tbl
}

func TestCleanFixture(t *testing.T) {
	tbl := loadFixture(t)
	rep := Clean(tbl, DefaultOptions())

	if rep.Rows != 6 || rep.Columns != len(testutil.LoanHeader) {
		t.Fatalf("rows/cols = %d/%d", rep.Rows, rep.Columns)
	}
	if len(rep.InvalidDateOrder) != 2 || rep.InvalidDateOrder[0] != 6 || rep.InvalidDateOrder[1] != 7 {
		t.Fatalf("invalid date order rows = %v, want [6 7]", rep.InvalidDateOrder)
	}
	if rep.Duplicates != 1 {
		t.Fatalf("duplicates = %d, want 1", rep.Duplicates)
	}
	if rep.UnparsedDates() != 0 {
		t.Fatalf("unparsed dates = %d", rep.UnparsedDates())
	}
	for _, o := range rep.Outliers {
		if o.Column == "loan_amount" && (o.N != 6 || o.Count != 0) {
			t.Fatalf("loan_amount outliers = %+v", o)
		}
	}

	ls := tbl.Loans
	if got := ls[0].Derived.ROI; !almostEqual(got, 15) {
		t.Fatalf("u1 roi = %v, want 15", got)
	}
	if got := *ls[2].Derived.ProfitLoss; got != -1200 {
		t.Fatalf("u3 profit/loss = %v", got)
	}
	wantQuartiles := []int{loans.NoBucket, 0, loans.NoBucket, 1, 2, 3}
	wantTiers := []int{0, 0, 4, 1, 4, 4}
	for i, l := range ls {
		if l.Derived.RiskQuartile != wantQuartiles[i] {
			t.Fatalf("row %d quartile = %d, want %d", l.Row, l.Derived.RiskQuartile, wantQuartiles[i])
		}
		if l.Derived.ScoreTier != wantTiers[i] {
			t.Fatalf("row %d tier = %d, want %d", l.Row, l.Derived.ScoreTier, wantTiers[i])
		}
	}
	if ls[0].Derived.AmountBucket != 1 || ls[4].Derived.AmountBucket != 0 || ls[3].Derived.AmountBucket != 9 {
		t.Fatalf("amount buckets = %d %d %d", ls[0].Derived.AmountBucket, ls[4].Derived.AmountBucket, ls[3].Derived.AmountBucket)
	}
	if len(rep.Bins.Tiers) != 5 || rep.Bins.Tiers[4] != "Tier 5" {
		t.Fatalf("tier labels = %v", rep.Bins.Tiers)
	}
	if labels := rep.Bins.AmountLabels(); len(labels) != 10 || labels[9] != "(2750.00, 3000.00]" {
		t.Fatalf("amount labels = %v", labels)
	}
}

func TestNormalizeDatesModes(t *testing.T) {
	ls := []loans.Loan{{}, {}, {}}
	ls[0].RawDates[loans.DisbursementDate] = "1609459200000"
	ls[1].RawDates[loans.DisbursementDate] = "44197"
	ls[2].RawDates[loans.DisbursementDate] = "-5"
	ls[0].RawDates[loans.FirstDueDate] = "2021-02-01"
	ls[1].RawDates[loans.FirstDueDate] = "1612137600000"
	ls[2].RawDates[loans.FirstDueDate] = "soon"

	reps := NormalizeDates(ls)
	byName := map[string]DateReport{}
	for _, r := range reps {
		byName[r.Column] = r
	}

	disb := byName["disbursement_date"]
	if disb.Mode != DateModeNumeric || disb.Parsed != 2 || disb.Unparsed != 1 {
		t.Fatalf("disbursement report = %+v", disb)
	}
	jan1 := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	if !ls[0].Dates[loans.DisbursementDate].Equal(jan1) || !ls[1].Dates[loans.DisbursementDate].Equal(jan1) {
		t.Fatalf("epoch ms and serial day should both decode to %v: %v %v", jan1, ls[0].Dates[0], ls[1].Dates[0])
	}
	if ls[2].Dates[loans.DisbursementDate] != nil {
		t.Fatalf("non-positive value should be null")
	}

	due := byName["first_due_date"]
	if due.Mode != DateModeText || due.Parsed != 1 || due.Unparsed != 2 {
		t.Fatalf("first due report = %+v", due)
	}
	if ls[0].RawDates[loans.FirstDueDate] != "2021-02-01" {
		t.Fatalf("raw cell must be kept")
	}
	if byName["max_loan_payment_date"].Mode != DateModeEmpty {
		t.Fatalf("all-null column should be empty mode")
	}
}

func TestMixedDateColumnParsesAsText(t *testing.T) {
	final := len(testutil.LoanHeader) - 1
	rows := [][]any{testutil.LoanHeader}
	for i, r := range testutil.LoanRows[:3] {
		row := append([]any(nil), r...)
		if i > 0 {
			row[final] = int64(1614556800000)
		}
		rows = append(rows, row)
	}
	path := testutil.WriteWorkbook(t, "mixed.xlsx", "CLA", rows)
	tbl, err := loader.Load(path, "CLA", loans.LoanSchema())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rep := Clean(tbl, DefaultOptions())

	var got DateReport
	for _, d := range rep.Dates {
		if d.Column == "loan_final_due_date" {
			got = d
		}
	}
	if got.Mode != DateModeText || got.Parsed != 1 || got.Unparsed != 2 {
		t.Fatalf("loan_final_due_date report = %+v, want text 1 parsed 2 unparsed", got)
	}
	if tbl.Loans[0].Dates[loans.LoanFinalDueDate] == nil {
		t.Fatalf("ISO cell should parse")
	}
	if tbl.Loans[1].Dates[loans.LoanFinalDueDate] != nil || tbl.Loans[2].Dates[loans.LoanFinalDueDate] != nil {
		t.Fatalf("numeric cells in a text column should stay null")
	}
	if rep.UnparsedDates() != 2 {
		t.Fatalf("unparsed dates = %d, want 2", rep.UnparsedDates())
	}
}

func TestCountDuplicatesConventions(t *testing.T) {
	mk := func(user string, amount float64, disb string) loans.Loan {
		l := loans.Loan{UserID: str(user), LoanAmount: f64(amount)}
		l.RawDates[loans.DisbursementDate] = disb
		return l
	}
	ls := []loans.Loan{
		mk("a", 100, "1"), mk("a", 100, "1"), mk("a", 100, "1"),
		mk("b", 100, "1"),
		{}, {},
	}
	tests := []struct {
		conv DuplicateConvention
		want int
	}{
		{ExcludeFirst, 3},
		{IncludeFirst, 5},
	}
	for _, tt := range tests {
		if got := CountDuplicates(ls, tt.conv); got != tt.want {
			t.Fatalf("%s: got %d, want %d", tt.conv, got, tt.want)
		}
	}
	if got := CountDuplicates(ls[:3], DefaultDuplicateConvention); got != 2 {
		t.Fatalf("three identical rows under default convention = %d, want 2", got)
	}
	if got := CountDuplicates(ls[:3], IncludeFirst); got != 3 {
		t.Fatalf("three identical rows including first = %d, want 3", got)
	}
}

func TestDeriveKPIs(t *testing.T) {
	ls := []loans.Loan{
		{LoanAmount: f64(0), TotalPaidAmount: f64(50), LoanStatus: str(loans.StatusRepaid)},
		{LoanAmount: f64(200), TotalPaidAmount: nil, PreviousLoanDaysDelayed: f64(4)},
		{LoanAmount: f64(200), TotalPaidAmount: f64(150), ClientType: str(loans.ClientReturning), RiskScoreNew: f64(0.9), RiskScoreReturning: f64(0.3)},
		{ClientType: str(loans.ClientNew), RiskScoreNew: f64(0.6), RiskScoreReturning: f64(0.1)},
	}
	Derive(ls)

	if d := ls[0].Derived; d.ROI != 0 || d.IsRepaid != 1 || *d.ProfitLoss != 50 {
		t.Fatalf("zero amount: %+v", d)
	}
	if d := ls[1].Derived; d.ProfitLoss != nil || d.ROI != 0 || d.DaysDelayed != 4 || d.IsRepaid != 0 {
		t.Fatalf("null paid: %+v", d)
	}
	if d := ls[2].Derived; d.ROI != -25 || *d.CombinedRiskScore != 0.3 {
		t.Fatalf("returning: roi=%v score=%v", d.ROI, *d.CombinedRiskScore)
	}
	if d := ls[3].Derived; *d.CombinedRiskScore != 0.6 || d.ScoreTier != loans.NoBucket {
		t.Fatalf("new client: %+v", d)
	}
}

func TestQuartileSizesDifferByAtMostOne(t *testing.T) {
	for n := 1; n <= 13; n++ {
		ls := make([]loans.Loan, n+2)
		for i := 0; i < n; i++ {
			ls[i] = loans.Loan{ClientType: str(loans.ClientReturning), RiskScoreReturning: f64(float64(i % 3))}
		}
		ls[n] = loans.Loan{ClientType: str(loans.ClientReturning)}
		ls[n+1] = loans.Loan{ClientType: str(loans.ClientNew), RiskScoreReturning: f64(1)}
		AssignQuartiles(ls)

		sizes := make([]int, 4)
		for i, l := range ls {
			b := l.Derived.RiskQuartile
			if i >= n {
				if b != loans.NoBucket {
					t.Fatalf("n=%d: row %d should not be bucketed", n, i)
				}
				continue
			}
			sizes[b]++
		}
		lo, hi := n, 0
		for _, s := range sizes {
			if n >= 4 && s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}
		if n >= 4 && hi-lo > 1 {
			t.Fatalf("n=%d: sizes %v", n, sizes)
		}
	}
}

func TestOutliersZeroVarianceAndNulls(t *testing.T) {
	ls := make([]loans.Loan, 8)
	for i := range ls {
		ls[i].LoanAmount = f64(500)
		ls[i].DeclaredIncome = f64(float64(10 + i))
	}
	ls[7].DeclaredIncome = f64(1e6)
	got := map[string]int{}
	for _, o := range Outliers(ls) {
		got[o.Column] = o.Count
	}
	if got["loan_amount"] != 0 {
		t.Fatalf("zero variance column has %d outliers", got["loan_amount"])
	}
	if got["disbursement_amount"] != 0 {
		t.Fatalf("all-null column has %d outliers", got["disbursement_amount"])
	}
	if got["declared_income"] != 1 {
		t.Fatalf("declared_income outliers = %d, want 1", got["declared_income"])
	}
}

func TestTiersConstantDomain(t *testing.T) {
	ls := []loans.Loan{
		{ClientType: str(loans.ClientNew), RiskScoreNew: f64(0.5)},
		{ClientType: str(loans.ClientNew), RiskScoreNew: f64(0.5)},
		{ClientType: str(loans.ClientNew)},
	}
	Derive(ls)
	labels := AssignTiers(ls, 5)
	if len(labels) != 5 {
		t.Fatalf("labels = %v", labels)
	}
	if ls[0].Derived.ScoreTier != ls[1].Derived.ScoreTier || ls[0].Derived.ScoreTier == loans.NoBucket {
		t.Fatalf("constant domain tiers = %d %d", ls[0].Derived.ScoreTier, ls[1].Derived.ScoreTier)
	}
	if ls[2].Derived.ScoreTier != loans.NoBucket {
		t.Fatalf("null score bucketed")
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
