package cleaner

import (
	"fmt"

	"github.com/KaramelBytes/loanlens-cli/internal/analysis"
	"github.com/KaramelBytes/loanlens-cli/internal/loans"
)

// QuartileLabels name the risk quartiles of returning customers, lowest risk first.
var QuartileLabels = []string{"Q1_Low", "Q2", "Q3", "Q4_High"}

// Bins holds the labels of every bucketed dimension, indexed by bucket.
type Bins struct {
	Quartiles []string
	Tiers     []string
	Amounts   []analysis.Interval
}

// AmountLabels renders the amount bucket intervals.
func (b Bins) AmountLabels() []string {
	labels := make([]string, len(b.Amounts))
	for i, iv := range b.Amounts {
		labels[i] = iv.Label(2)
	}
	return labels
}

// AssignQuartiles buckets returning customers by risk_score_returning into
// four equal-frequency quartiles. Other rows and null scores get no bucket.
func AssignQuartiles(ls []loans.Loan) []string {
	vals := make([]float64, len(ls))
	for i := range ls {
		if ls[i].IsReturning() {
			vals[i] = valueOrNaN(ls[i].RiskScoreReturning)
		} else {
			vals[i] = valueOrNaN(nil)
		}
	}
	for i, b := range analysis.RankBuckets(vals, len(QuartileLabels)) {
		ls[i].Derived.RiskQuartile = b
	}
	return QuartileLabels
}

// AssignTiers buckets combined_risk_score into k equal-width tiers.
func AssignTiers(ls []loans.Loan, k int) []string {
	vals := make([]float64, len(ls))
	for i := range ls {
		vals[i] = valueOrNaN(ls[i].Derived.CombinedRiskScore)
	}
	idx, ivs := analysis.EqualWidthBuckets(vals, k)
	for i, b := range idx {
		ls[i].Derived.ScoreTier = b
	}
	labels := make([]string, len(ivs))
	for i := range labels {
		labels[i] = fmt.Sprintf("Tier %d", i+1)
	}
	return labels
}

// AssignAmountBuckets buckets loan_amount into k equal-width intervals.
func AssignAmountBuckets(ls []loans.Loan, k int) []analysis.Interval {
	idx, ivs := analysis.EqualWidthBuckets(numberColumn(ls, "loan_amount"), k)
	for i, b := range idx {
		ls[i].Derived.AmountBucket = b
	}
	return ivs
}
