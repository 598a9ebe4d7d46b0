package loans

import (
	"strings"

	"github.com/KaramelBytes/loanlens-cli/internal/analysis"
)

// Kind is the expected type of a spreadsheet column.
type Kind int

const (
	Number Kind = iota
	Text
	Date
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	case Date:
		return "date"
	default:
		return "unknown"
	}
}

// Column binds a sheet column name to a Loan field.
type Column struct {
	Name     string
	Kind     Kind
	Required bool

	number func(*Loan) **float64
	text   func(*Loan) **string
	date   DateField
}

// Schema is the set of columns the loader expects in the loan sheet.
type Schema struct {
	Columns []Column
}

// LoanSchema returns the column contract of the loan-origination sheet.
func LoanSchema() Schema {
	return Schema{Columns: []Column{
		text("user_id", true, func(l *Loan) **string { return &l.UserID }),
		number("loan_amount", true, func(l *Loan) **float64 { return &l.LoanAmount }),
		number("total_paid_amount", true, func(l *Loan) **float64 { return &l.TotalPaidAmount }),
		text("loan_status", true, func(l *Loan) **string { return &l.LoanStatus }),
		text("client_type", true, func(l *Loan) **string { return &l.ClientType }),
		date("disbursement_date", true, DisbursementDate),
		date("first_due_date", true, FirstDueDate),

		number("disbursement_amount", false, func(l *Loan) **float64 { return &l.DisbursementAmount }),
		number("declared_income", false, func(l *Loan) **float64 { return &l.DeclaredIncome }),
		number("previously_paid_loans", false, func(l *Loan) **float64 { return &l.PreviouslyPaidLoans }),
		number("previous_loan_days_delayed", false, func(l *Loan) **float64 { return &l.PreviousLoanDaysDelayed }),
		number("risk_score_new", false, func(l *Loan) **float64 { return &l.RiskScoreNew }),
		number("risk_score_returning", false, func(l *Loan) **float64 { return &l.RiskScoreReturning }),
		text("first_instalment_status", false, func(l *Loan) **string { return &l.FirstInstalmentStatus }),
		text("location_state", false, func(l *Loan) **string { return &l.LocationState }),
		date("original_first_due_date", false, OriginalFirstDueDate),
		date("loan_final_due_date", false, LoanFinalDueDate),
		date("max_loan_payment_date", false, MaxLoanPaymentDate),
	}}
}

func number(name string, required bool, f func(*Loan) **float64) Column {
	return Column{Name: name, Kind: Number, Required: required, number: f}
}

func text(name string, required bool, f func(*Loan) **string) Column {
	return Column{Name: name, Kind: Text, Required: required, text: f}
}

func date(name string, required bool, d DateField) Column {
	return Column{Name: name, Kind: Date, Required: required, date: d}
}

// Assign stores a raw cell into the bound Loan field. Null cells leave the
// field nil. It reports false when a non-null cell could not be coerced.
func (c Column) Assign(l *Loan, raw string) bool {
	v := strings.TrimSpace(raw)
	if analysis.IsNull(v) {
		return true
	}
	switch c.Kind {
	case Number:
		x, ok := analysis.ParseNumber(v)
		if !ok {
			return false
		}
		*c.number(l) = &x
	case Text:
		*c.text(l) = &v
	case Date:
		// Dates are kept raw here; the cleaner decides the encoding per column.
		l.RawDates[c.date] = v
	}
	return true
}

// Index maps normalized header names to their position.
func Index(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeName(h)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks the header and cell contents against the schema once.
// It returns the optional columns that are absent, and a *SchemaError
// listing every missing required column and every mistyped column.
func (s Schema) Validate(header []string, rows [][]string) (absent []string, err error) {
	idx := Index(header)
	var serr SchemaError
	for _, c := range s.Columns {
		j, ok := idx[c.Name]
		if !ok {
			if c.Required {
				serr.Missing = append(serr.Missing, c.Name)
			} else {
				absent = append(absent, c.Name)
			}
			continue
		}
		if c.Kind == Text {
			continue
		}
		nonNull, parsed := 0, 0
		for _, row := range rows {
			if j >= len(row) || analysis.IsNull(row[j]) {
				continue
			}
			nonNull++
			if c.accepts(row[j]) {
				parsed++
				break
			}
		}
		if nonNull > 0 && parsed == 0 {
			serr.Mistyped = append(serr.Mistyped, ColumnMismatch{Column: c.Name, Expected: c.Kind, NonNull: nonNull})
		}
	}
	if len(serr.Missing) > 0 || len(serr.Mistyped) > 0 {
		return absent, &serr
	}
	return absent, nil
}

func (c Column) accepts(raw string) bool {
	if _, ok := analysis.ParseNumber(raw); ok {
		return true
	}
	if c.Kind == Date {
		_, ok := analysis.ParseTime(raw)
		return ok
	}
	return false
}
