package aggregate

import "github.com/KaramelBytes/loanlens-cli/internal/loans"

// Dimension describes how loans are keyed for grouping.
type Dimension struct {
	Name string
	// Key returns the group label of a loan; ok is false for a null key.
	Key func(*loans.Loan) (label string, ok bool)
	// Labels fixes the bucket set and its order. Nil means lexical order
	// over the keys that occur.
	Labels []string
	// Scope restricts the loans considered; nil admits every loan.
	Scope func(*loans.Loan) bool
}

func textKey(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func bucketKey(labels []string, b int) (string, bool) {
	if b < 0 || b >= len(labels) {
		return "", false
	}
	return labels[b], true
}

// ClientType groups by client_type.
func ClientType() Dimension {
	return Dimension{Name: "client type", Key: func(l *loans.Loan) (string, bool) { return textKey(l.ClientType) }}
}

// State groups by location_state.
func State() Dimension {
	return Dimension{Name: "state", Key: func(l *loans.Loan) (string, bool) { return textKey(l.LocationState) }}
}

// Month groups by disbursement month, formatted YYYY-MM so that lexical
// order is chronological.
func Month() Dimension {
	return Dimension{Name: "disbursement month", Key: func(l *loans.Loan) (string, bool) {
		d := l.Dates[loans.DisbursementDate]
		if d == nil {
			return "", false
		}
		return d.Format("2006-01"), true
	}}
}

// RiskQuartile groups returning customers by risk quartile.
func RiskQuartile(labels []string) Dimension {
	return Dimension{
		Name:   "risk quartile",
		Labels: labels,
		Key:    func(l *loans.Loan) (string, bool) { return bucketKey(labels, l.Derived.RiskQuartile) },
		Scope:  (*loans.Loan).IsReturning,
	}
}

// ScoreTier groups by combined risk score tier.
func ScoreTier(labels []string) Dimension {
	return Dimension{
		Name:   "score tier",
		Labels: labels,
		Key:    func(l *loans.Loan) (string, bool) { return bucketKey(labels, l.Derived.ScoreTier) },
	}
}

// AmountBucket groups by loan amount bucket.
func AmountBucket(labels []string) Dimension {
	return Dimension{
		Name:   "loan amount",
		Labels: labels,
		Key:    func(l *loans.Loan) (string, bool) { return bucketKey(labels, l.Derived.AmountBucket) },
	}
}
