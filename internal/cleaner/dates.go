package cleaner

import (
	"math"
	"time"

	"github.com/KaramelBytes/loanlens-cli/internal/analysis"
	"github.com/KaramelBytes/loanlens-cli/internal/loans"
	"github.com/xuri/excelize/v2"
)

// Date column encodings detected by NormalizeDates.
const (
	DateModeNumeric = "numeric"
	DateModeText    = "text"
	DateModeEmpty   = "empty"
)

// epochMillisFloor separates epoch milliseconds from spreadsheet serial days.
// 1e8 ms is 1970-01-02, while serial 1e8 lies far beyond year 9999.
const epochMillisFloor = 1e8

// DateReport describes how one date column was normalized.
type DateReport struct {
	Column   string
	Mode     string
	Parsed   int
	Unparsed int
}

// NormalizeDates parses the raw date cells of every loan into Loan.Dates.
// The encoding is decided once per column: when every non-null cell is a
// plain number the column is numeric (epoch milliseconds, or serial days for
// small values), otherwise cells are parsed as text. Cells that do not parse
// stay nil and are counted.
func NormalizeDates(ls []loans.Loan) []DateReport {
	reports := make([]DateReport, 0, loans.NumDateFields)
	for f := loans.DateField(0); f < loans.NumDateFields; f++ {
		rep := DateReport{Column: f.String(), Mode: detectMode(ls, f)}
		for i := range ls {
			raw := ls[i].RawDates[f]
			ls[i].Dates[f] = nil
			if raw == "" {
				continue
			}
			var (
				t  time.Time
				ok bool
			)
			if rep.Mode == DateModeNumeric {
				t, ok = decodeNumericDate(raw)
			} else {
				t, ok = analysis.ParseTime(raw)
			}
			if !ok {
				rep.Unparsed++
				continue
			}
			ls[i].Dates[f] = &t
			rep.Parsed++
		}
		reports = append(reports, rep)
	}
	return reports
}

func detectMode(ls []loans.Loan, f loans.DateField) string {
	seen := false
	for i := range ls {
		raw := ls[i].RawDates[f]
		if raw == "" {
			continue
		}
		seen = true
		if _, ok := analysis.ParsePlainNumber(raw); !ok {
			return DateModeText
		}
	}
	if !seen {
		return DateModeEmpty
	}
	return DateModeNumeric
}

func decodeNumericDate(raw string) (time.Time, bool) {
	v, ok := analysis.ParsePlainNumber(raw)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return time.Time{}, false
	}
	if v >= epochMillisFloor {
		return time.UnixMilli(int64(v)).UTC(), true
	}
	t, err := excelize.ExcelDateToTime(v, false)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
