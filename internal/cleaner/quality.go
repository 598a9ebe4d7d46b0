package cleaner

import (
	"math"

	"github.com/KaramelBytes/loanlens-cli/internal/analysis"
	"github.com/KaramelBytes/loanlens-cli/internal/loans"
)

// DuplicateConvention selects which rows of a duplicate set are counted.
type DuplicateConvention int

const (
	// ExcludeFirst counts the rows that repeat an earlier key.
	ExcludeFirst DuplicateConvention = iota
	// IncludeFirst counts every row of a key that occurs more than once.
	IncludeFirst
)

// DefaultDuplicateConvention is the convention reported by the CLI.
const DefaultDuplicateConvention = ExcludeFirst

func (c DuplicateConvention) String() string {
	if c == IncludeFirst {
		return "include-first"
	}
	return "exclude-first"
}

// OutlierColumns are the numeric columns screened with the IQR rule.
var OutlierColumns = []string{"loan_amount", "disbursement_amount", "declared_income", "previously_paid_loans"}

// InvalidDateOrder returns the sheet rows whose disbursement date is after
// the first due date. Rows missing either date are not counted.
func InvalidDateOrder(ls []loans.Loan) []int {
	var rows []int
	for i := range ls {
		d, due := ls[i].Dates[loans.DisbursementDate], ls[i].Dates[loans.FirstDueDate]
		if d != nil && due != nil && d.After(*due) {
			rows = append(rows, ls[i].Row)
		}
	}
	return rows
}

type dupKey struct {
	user     string
	userNull bool
	amount   float64
	amtNull  bool
	disbRaw  string
}

func keyOf(l *loans.Loan) dupKey {
	k := dupKey{userNull: l.UserID == nil, amtNull: l.LoanAmount == nil, disbRaw: l.RawDates[loans.DisbursementDate]}
	if l.UserID != nil {
		k.user = *l.UserID
	}
	if l.LoanAmount != nil {
		k.amount = *l.LoanAmount
	}
	return k
}

// CountDuplicates counts rows sharing (user_id, loan_amount, raw
// disbursement_date) under the given convention. Null key parts compare equal.
func CountDuplicates(ls []loans.Loan, conv DuplicateConvention) int {
	seen := make(map[dupKey]int, len(ls))
	for i := range ls {
		seen[keyOf(&ls[i])]++
	}
	n := 0
	for _, c := range seen {
		if c < 2 {
			continue
		}
		if conv == IncludeFirst {
			n += c
		} else {
			n += c - 1
		}
	}
	return n
}

// Outliers runs the IQR check over OutlierColumns.
func Outliers(ls []loans.Loan) []analysis.OutlierResult {
	out := make([]analysis.OutlierResult, 0, len(OutlierColumns))
	for _, col := range OutlierColumns {
		out = append(out, analysis.IQROutliers(col, numberColumn(ls, col)))
	}
	return out
}

// numberColumn extracts a numeric column with NaN for nulls.
func numberColumn(ls []loans.Loan, col string) []float64 {
	vals := make([]float64, len(ls))
	for i := range ls {
		vals[i] = valueOrNaN(numberField(&ls[i], col))
	}
	return vals
}

func numberField(l *loans.Loan, col string) *float64 {
	switch col {
	case "loan_amount":
		return l.LoanAmount
	case "disbursement_amount":
		return l.DisbursementAmount
	case "declared_income":
		return l.DeclaredIncome
	case "previously_paid_loans":
		return l.PreviouslyPaidLoans
	case "total_paid_amount":
		return l.TotalPaidAmount
	case "previous_loan_days_delayed":
		return l.PreviousLoanDaysDelayed
	case "risk_score_new":
		return l.RiskScoreNew
	case "risk_score_returning":
		return l.RiskScoreReturning
	}
	return nil
}

func valueOrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}
