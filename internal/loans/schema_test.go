package loans

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidateListsEveryProblem(t *testing.T) {
	header := []string{"user_id", "loan_amount", "loan_status", "disbursement_date", "risk_score_new"}
	rows := [][]string{
		{"1", "n/a", "loan_repaid", "yesterday", "0.4"},
		{"2", "abc", "loan_ongoing", "tomorrow", "0.5"},
	}
	absent, err := LoanSchema().Validate(header, rows)
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	wantMissing := []string{"total_paid_amount", "client_type", "first_due_date"}
	if strings.Join(serr.Missing, ",") != strings.Join(wantMissing, ",") {
		t.Fatalf("missing = %v, want %v", serr.Missing, wantMissing)
	}
	if len(serr.Mistyped) != 2 {
		t.Fatalf("mistyped = %+v, want loan_amount and disbursement_date", serr.Mistyped)
	}
	if serr.Mistyped[0].Column != "loan_amount" || serr.Mistyped[0].Expected != Number || serr.Mistyped[0].NonNull != 1 {
		t.Fatalf("mistyped[0] = %+v", serr.Mistyped[0])
	}
	if serr.Mistyped[1].Column != "disbursement_date" || serr.Mistyped[1].Expected != Date {
		t.Fatalf("mistyped[1] = %+v", serr.Mistyped[1])
	}
	for _, frag := range []string{"missing columns: total_paid_amount, client_type, first_due_date", "column loan_amount: expected number"} {
		if !strings.Contains(err.Error(), frag) {
			t.Fatalf("error %q missing %q", err.Error(), frag)
		}
	}
	if len(absent) == 0 || absent[0] != "disbursement_amount" {
		t.Fatalf("absent optional columns = %v", absent)
	}
}

func TestValidateAcceptsEpochDatesAndCaseInsensitiveHeader(t *testing.T) {
	header := []string{"User_ID", " loan_amount ", "total_paid_amount", "loan_status", "client_type", "disbursement_date", "first_due_date"}
	rows := [][]string{
		{"1", "500", "600", "loan_repaid", "new", "1609459200000", "2021-02-01"},
	}
	absent, err := LoanSchema().Validate(header, rows)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(absent) != 11 {
		t.Fatalf("absent = %d columns, want 11: %v", len(absent), absent)
	}
}

func TestColumnAssign(t *testing.T) {
	schema := LoanSchema()
	cols := map[string]Column{}
	for _, c := range schema.Columns {
		cols[c.Name] = c
	}
	var l Loan
	if !cols["loan_amount"].Assign(&l, "1,500") || l.LoanAmount == nil || *l.LoanAmount != 1500 {
		t.Fatalf("loan_amount not assigned: %+v", l.LoanAmount)
	}
	if cols["declared_income"].Assign(&l, "lots") {
		t.Fatalf("garbage number must report coercion")
	}
	if l.DeclaredIncome != nil {
		t.Fatalf("garbage number must stay null")
	}
	if !cols["client_type"].Assign(&l, " returning ") || !l.IsReturning() {
		t.Fatalf("client_type = %q", l.Client())
	}
	if !cols["loan_status"].Assign(&l, "NaN") || l.LoanStatus != nil {
		t.Fatalf("null token must leave status nil")
	}
	if !cols["first_due_date"].Assign(&l, "2021-02-01") || l.RawDates[FirstDueDate] != "2021-02-01" {
		t.Fatalf("raw date = %q", l.RawDates[FirstDueDate])
	}
}

func TestDataSourceErrorUnwrap(t *testing.T) {
	base := errors.New("no such file")
	err := fmt.Errorf("load: %w", &DataSourceError{Path: "CS.xlsx", Sheet: "CLA", Err: base})
	var dse *DataSourceError
	if !errors.As(err, &dse) || dse.Sheet != "CLA" {
		t.Fatalf("errors.As failed: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("errors.Is must reach the wrapped cause")
	}
	if !strings.Contains(err.Error(), `sheet "CLA"`) {
		t.Fatalf("message = %q", err.Error())
	}
}
