package analysis

import (
	"sort"
	"strings"
)

// Column kinds inferred by Profile.
const (
	KindNumeric     = "numeric"
	KindDatetime    = "datetime"
	KindCategorical = "categorical"
	KindUnknown     = "unknown"
)

// ColumnSummary captures the inferred type and statistics of one sheet column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|datetime|categorical|unknown
	NonNull int
	Missing int
	Unique  int
	Stats   NumSummary
	// Categorical top values
	TopValues []CategoryCount
}

// MissingPct is the share of missing cells in percent.
func (c ColumnSummary) MissingPct() float64 {
	total := c.NonNull + c.Missing
	if total == 0 {
		return 0
	}
	return float64(c.Missing) * 100.0 / float64(total)
}

// CategoryCount is one distinct value of a categorical column and its frequency.
type CategoryCount struct {
	Value string
	Count int
}

// Profile computes a ColumnSummary for every header column over rows.
// Short rows are padded with missing cells.
func Profile(header []string, rows [][]string) []ColumnSummary {
	type colAcc struct {
		name   string
		nonNil int
		miss   int
		num    NumSummary
		numCnt int
		dtCnt  int
		txtCnt int
		cats   map[string]int
	}
	cols := make([]*colAcc, len(header))
	for i, h := range header {
		cols[i] = &colAcc{name: strings.TrimSpace(h), cats: make(map[string]int)}
	}
	for _, row := range rows {
		for j, c := range cols {
			v := ""
			if j < len(row) {
				v = strings.TrimSpace(row[j])
			}
			if IsNull(v) {
				c.miss++
				continue
			}
			c.nonNil++
			if x, ok := ParseNumber(v); ok {
				c.numCnt++
				c.num.Add(x)
				continue
			}
			if _, ok := ParseTime(v); ok {
				c.dtCnt++
				continue
			}
			c.txtCnt++
			if len(c.cats) <= 10000 && len(v) <= 64 { // guard memory
				c.cats[v]++
			}
		}
	}

	out := make([]ColumnSummary, 0, len(cols))
	for _, c := range cols {
		s := ColumnSummary{Name: c.name, NonNull: c.nonNil, Missing: c.miss, Kind: KindUnknown}
		switch {
		case c.numCnt > 0 && c.numCnt >= c.dtCnt && c.numCnt >= c.txtCnt:
			s.Kind = KindNumeric
			s.Stats = c.num
		case c.dtCnt > 0 && c.dtCnt >= c.txtCnt:
			s.Kind = KindDatetime
		case len(c.cats) > 0:
			s.Kind = KindCategorical
			tops := make([]CategoryCount, 0, len(c.cats))
			for k, v := range c.cats {
				tops = append(tops, CategoryCount{Value: k, Count: v})
			}
			sort.Slice(tops, func(i, j int) bool {
				if tops[i].Count == tops[j].Count {
					return tops[i].Value < tops[j].Value
				}
				return tops[i].Count > tops[j].Count
			})
			if len(tops) > 8 {
				tops = tops[:8]
			}
			s.TopValues = tops
			s.Unique = len(c.cats)
		}
		out = append(out, s)
	}
	return out
}

// MissingByShare returns the columns with at least one missing cell, sorted by
// missing percentage descending (ties by name).
func MissingByShare(cols []ColumnSummary) []ColumnSummary {
	var out []ColumnSummary
	for _, c := range cols {
		if c.Missing > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].MissingPct(), out[j].MissingPct()
		if pi == pj {
			return out[i].Name < out[j].Name
		}
		return pi > pj
	})
	return out
}
