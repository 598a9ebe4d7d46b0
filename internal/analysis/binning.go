package analysis

import (
	"fmt"
	"math"
	"sort"
)

// NoBucket marks a value that was not assigned to any bucket (NaN input).
const NoBucket = -1

// RankBuckets splits the non-NaN values into k equal-frequency buckets by
// rank. Ties are ordered by input position, so bucket sizes never differ by
// more than one. The result holds a bucket index per input, NoBucket for NaN.
func RankBuckets(vals []float64, k int) []int {
	out := make([]int, len(vals))
	idx := make([]int, 0, len(vals))
	for i, v := range vals {
		out[i] = NoBucket
		if !math.IsNaN(v) {
			idx = append(idx, i)
		}
	}
	if k <= 0 || len(idx) == 0 {
		return out
	}
	sort.SliceStable(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })
	n := len(idx)
	for rank, i := range idx {
		out[i] = rank * k / n
	}
	return out
}

// Interval is a right-closed bucket (Lo, Hi].
type Interval struct {
	Lo, Hi float64
}

// Label renders the interval with the given number of decimals, e.g. "(100.00, 200.00]".
func (iv Interval) Label(prec int) string {
	return fmt.Sprintf("(%.*f, %.*f]", prec, iv.Lo, prec, iv.Hi)
}

// widenFactor extends the outermost edge so the minimum lands inside the first bucket.
const widenFactor = 0.001

// EqualWidthEdges returns k+1 edges spanning the non-NaN domain of vals.
// The lowest edge is pushed down by 0.1% of the range; a constant domain is
// widened by 0.1% of its magnitude on both sides. ok is false when there is
// nothing to bucket.
func EqualWidthEdges(vals []float64, k int) (edges []float64, ok bool) {
	if k <= 0 {
		return nil, false
	}
	s := Summarize(vals)
	if s.Count == 0 {
		return nil, false
	}
	lo, hi := s.Min, s.Max
	if lo == hi {
		pad := widenFactor * math.Abs(lo)
		if lo == 0 {
			pad = widenFactor
		}
		lo -= pad
		hi += pad
	}
	edges = make([]float64, k+1)
	step := (hi - lo) / float64(k)
	for i := range edges {
		edges[i] = lo + step*float64(i)
	}
	edges[k] = hi
	if s.Min != s.Max {
		edges[0] -= (hi - lo) * widenFactor
	}
	return edges, true
}

// EqualWidthBuckets assigns each value to one of k equal-width right-closed
// buckets. NaN inputs get NoBucket. The returned intervals describe the buckets.
func EqualWidthBuckets(vals []float64, k int) ([]int, []Interval) {
	out := make([]int, len(vals))
	for i := range out {
		out[i] = NoBucket
	}
	edges, ok := EqualWidthEdges(vals, k)
	if !ok {
		return out, nil
	}
	ivs := make([]Interval, k)
	for i := 0; i < k; i++ {
		ivs[i] = Interval{Lo: edges[i], Hi: edges[i+1]}
	}
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		for b := 1; b <= k; b++ {
			if v <= edges[b] {
				out[i] = b - 1
				break
			}
		}
	}
	return out, ivs
}
