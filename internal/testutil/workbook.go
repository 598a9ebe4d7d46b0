// Package testutil builds spreadsheet fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// LoanHeader is the full loan sheet header in a realistic column order.
var LoanHeader = []any{
	"user_id", "loan_amount", "disbursement_amount", "declared_income", "total_paid_amount",
	"loan_status", "first_instalment_status", "client_type", "location_state",
	"risk_score_new", "risk_score_returning", "previously_paid_loans", "previous_loan_days_delayed",
	"disbursement_date", "first_due_date", "loan_final_due_date",
}

// LoanRows is a small portfolio: dates are epoch milliseconds like the
// production export. loan_final_due_date holds a single ISO text cell, so
// that column is parsed as text.
var LoanRows = [][]any{
	{"u1", 1000, 1000, 50000, 1150, "loan_repaid", "paid", "new", "Lagos", 0.20, nil, 0, nil, int64(1609459200000), int64(1612137600000), "2021-03-01"},
	{"u2", 2000, 1950, 80000, 2300, "loan_repaid", "paid", "returning", "Lagos", nil, 0.10, 3, 2, int64(1609545600000), int64(1612224000000), nil},
	{"u3", 1500, 1500, 40000, 300, "loan_ongoing", "late", "new", "Kano", 0.70, nil, 0, nil, int64(1612137600000), int64(1614556800000), nil},
	{"u4", 3000, 3000, 120000, 3450, "loan_repaid", "paid", "returning", "Abuja", nil, 0.35, 5, 0, int64(1612224000000), int64(1614643200000), nil},
	{"u5", 500, 500, 20000, 0, "loan_ongoing", "late", "returning", "Kano", nil, 0.80, 1, 12, int64(1612310400000), int64(1609459200000), nil},
	{"u5", 500, 500, 20000, 0, "loan_ongoing", "late", "returning", "Kano", nil, 0.80, 1, 12, int64(1612310400000), int64(1609459200000), nil},
}

// WriteWorkbook writes rows (header first) into sheet of a new workbook under
// t.TempDir() and returns its path. Nil cells are left empty.
func WriteWorkbook(t *testing.T, name, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, row := range rows {
		cells := make([]any, len(row))
		copy(cells, row)
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// LoanWorkbook writes the LoanHeader/LoanRows fixture as sheet CLA.
func LoanWorkbook(t *testing.T) string {
	t.Helper()
	rows := append([][]any{LoanHeader}, LoanRows...)
	return WriteWorkbook(t, "CS.xlsx", "CLA", rows)
}
