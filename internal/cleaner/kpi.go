package cleaner

import "github.com/KaramelBytes/loanlens-cli/internal/loans"

// Derive computes the per-loan KPI columns. Each value depends only on its
// own row; bucket fields are reset to NoBucket for the binning step.
func Derive(ls []loans.Loan) {
	for i := range ls {
		ls[i].Derived = deriveOne(&ls[i])
	}
}

func deriveOne(l *loans.Loan) loans.Derived {
	d := loans.Derived{
		RiskQuartile: loans.NoBucket,
		ScoreTier:    loans.NoBucket,
		AmountBucket: loans.NoBucket,
	}
	if l.Status() == loans.StatusRepaid {
		d.IsRepaid = 1
	}
	if l.PreviousLoanDaysDelayed != nil {
		d.DaysDelayed = *l.PreviousLoanDaysDelayed
	}
	if l.TotalPaidAmount != nil && l.LoanAmount != nil {
		pl := *l.TotalPaidAmount - *l.LoanAmount
		d.ProfitLoss = &pl
		if *l.LoanAmount != 0 {
			d.ROI = pl / *l.LoanAmount * 100
		}
	}
	if l.IsReturning() {
		d.CombinedRiskScore = copyFloat(l.RiskScoreReturning)
	} else {
		d.CombinedRiskScore = copyFloat(l.RiskScoreNew)
	}
	return d
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
