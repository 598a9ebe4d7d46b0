package analysis

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// nullTokens are cell values read as missing, in addition to blank cells.
var nullTokens = map[string]struct{}{
	"na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {}, "-": {}, "#n/a": {},
}

// IsNull reports whether a raw cell value should be treated as missing.
func IsNull(s string) bool {
	v := strings.TrimSpace(s)
	if v == "" {
		return true
	}
	_, ok := nullTokens[strings.ToLower(v)]
	return ok
}

// ParseNumber parses a numeric cell. Decimal and thousands separators are
// auto-detected, so "1.000,5", "1,000.5" and "1000.5" all parse to 1000.5.
// A trailing or leading currency/percent sign is ignored.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(strings.Trim(raw, "%$€£ "))
	if raw == "" {
		return 0, false
	}
	// Fast path: plain float (also covers scientific notation).
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, finite(f)
	}
	var dec rune
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0:
		if cpos > dpos {
			dec = ','
		} else {
			dec = '.'
		}
	case cpos >= 0:
		// "1,000" is a thousands group, "0,5" and "0,500" are decimal commas.
		lead := strings.TrimPrefix(raw, "-")
		if len(raw)-cpos-1 == 3 && !strings.HasPrefix(lead, "0,") {
			dec = '.'
		} else {
			dec = ','
		}
	default:
		dec = '.'
	}
	for _, sep := range []rune{',', '.', ' '} {
		if sep != dec {
			raw = strings.ReplaceAll(raw, string(sep), "")
		}
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, finite(f)
}

// ParsePlainNumber accepts only a plain decimal or scientific literal.
// Date columns use it to decide whether a column holds numeric timestamps.
func ParsePlainNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, finite(f)
}

// finite rejects the "inf" and "nan" spellings strconv accepts.
func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"02/01/2006",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
}

// ParseTime parses a textual date with one of the supported ISO-like layouts.
// Results are in UTC.
func ParseTime(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
