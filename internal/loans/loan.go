package loans

import (
	"time"

	"github.com/KaramelBytes/loanlens-cli/internal/analysis"
)

// Loan status and categorical values the analysis keys on.
const (
	StatusRepaid  = "loan_repaid"
	StatusOngoing = "loan_ongoing"

	InstalmentPaid = "paid"

	ClientNew       = "new"
	ClientReturning = "returning"
)

// DateField indexes the date columns of a Loan.
type DateField int

const (
	DisbursementDate DateField = iota
	FirstDueDate
	OriginalFirstDueDate
	LoanFinalDueDate
	MaxLoanPaymentDate
	NumDateFields
)

var dateFieldNames = [NumDateFields]string{
	"disbursement_date",
	"first_due_date",
	"original_first_due_date",
	"loan_final_due_date",
	"max_loan_payment_date",
}

func (d DateField) String() string {
	if d < 0 || d >= NumDateFields {
		return "unknown"
	}
	return dateFieldNames[d]
}

// Loan is one row of the loan sheet plus the columns derived from it.
// Nil pointers are null cells.
type Loan struct {
	Row int // 1-based sheet row, header is row 1

	UserID                  *string
	LoanAmount              *float64
	DisbursementAmount      *float64
	DeclaredIncome          *float64
	TotalPaidAmount         *float64
	PreviouslyPaidLoans     *float64
	PreviousLoanDaysDelayed *float64
	RiskScoreNew            *float64
	RiskScoreReturning      *float64
	LoanStatus              *string
	FirstInstalmentStatus   *string
	ClientType              *string
	LocationState           *string

	// RawDates holds the cell text as read; Dates the normalized value.
	RawDates [NumDateFields]string
	Dates    [NumDateFields]*time.Time

	Derived Derived
}

// Bucket indexes are 0-based; NoBucket means the row was not binned.
const NoBucket = -1

// Derived holds the per-loan KPI columns computed by the cleaner.
type Derived struct {
	IsRepaid          int
	DaysDelayed       float64
	ProfitLoss        *float64
	ROI               float64
	CombinedRiskScore *float64
	RiskQuartile      int
	ScoreTier         int
	AmountBucket      int
}

// Status returns the loan status or "" when null.
func (l *Loan) Status() string { return deref(l.LoanStatus) }

// Client returns the client type or "" when null.
func (l *Loan) Client() string { return deref(l.ClientType) }

// IsReturning reports whether the loan belongs to a returning client.
func (l *Loan) IsReturning() bool { return l.Client() == ClientReturning }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Table is a loaded and schema-validated loan sheet.
type Table struct {
	Source  string
	Sheet   string
	Header  []string
	Loans   []Loan
	Absent  []string                 // optional schema columns not present in the sheet
	Coerced map[string]int           // non-null cells that could not be parsed, per column
	Profile []analysis.ColumnSummary // every sheet column, schema or not
}
