package analysis

import (
	"math"
	"sort"
)

// NumSummary is a running summary of a numeric series (Welford update).
type NumSummary struct {
	Count          int
	Min, Max, Mean float64
	m2             float64
}

// Add folds x into the summary. NaN values are ignored.
func (s *NumSummary) Add(x float64) {
	if math.IsNaN(x) {
		return
	}
	if s.Count == 0 {
		s.Min, s.Max = x, x
	}
	s.Count++
	if x < s.Min {
		s.Min = x
	}
	if x > s.Max {
		s.Max = x
	}
	delta := x - s.Mean
	s.Mean += delta / float64(s.Count)
	s.m2 += delta * (x - s.Mean)
}

// Std returns the sample standard deviation, 0 for fewer than two values.
func (s NumSummary) Std() float64 {
	if s.Count < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.Count-1))
}

// Summarize builds a NumSummary over vals, skipping NaN.
func Summarize(vals []float64) NumSummary {
	var s NumSummary
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Mean returns the arithmetic mean of the non-NaN values, 0 when there are none.
func Mean(vals []float64) float64 {
	return Summarize(vals).Mean
}

// Quantile returns the q-quantile of sorted values using linear interpolation
// between closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// dropNaN returns a sorted copy of vals without NaN entries.
func dropNaN(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// IQRFactor scales the interquartile range into outlier fences.
const IQRFactor = 1.5

// OutlierResult is the outcome of an IQR fence check over one column.
type OutlierResult struct {
	Column string
	N      int // non-null values inspected
	Q1, Q3 float64
	IQR    float64
	Lower  float64
	Upper  float64
	Count  int
}

// IQROutliers counts values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR].
// NaN values are skipped. An empty series or a zero IQR yields no outliers.
func IQROutliers(column string, vals []float64) OutlierResult {
	res := OutlierResult{Column: column}
	sorted := dropNaN(vals)
	res.N = len(sorted)
	if res.N == 0 {
		return res
	}
	res.Q1 = Quantile(sorted, 0.25)
	res.Q3 = Quantile(sorted, 0.75)
	res.IQR = res.Q3 - res.Q1
	res.Lower = res.Q1 - IQRFactor*res.IQR
	res.Upper = res.Q3 + IQRFactor*res.IQR
	if res.IQR == 0 {
		return res
	}
	for _, v := range sorted {
		if v < res.Lower || v > res.Upper {
			res.Count++
		}
	}
	return res
}
