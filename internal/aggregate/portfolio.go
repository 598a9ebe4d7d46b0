package aggregate

import (
	"github.com/KaramelBytes/loanlens-cli/internal/loans"
	"github.com/shopspring/decimal"
)

// Portfolio holds the portfolio-wide KPIs. Money totals are exact decimal sums.
type Portfolio struct {
	Loans          int
	TotalLent      decimal.Decimal
	TotalCollected decimal.Decimal
	NetProfit      decimal.Decimal

	RepaymentRate   float64
	DefaultRate     float64
	OnTimeRate      float64 // first instalment paid
	ROI             float64 // mean per-loan ROI
	MeanDaysDelayed float64
}

// Summarize computes the portfolio KPIs of ls under the denominator convention.
func Summarize(ls []loans.Loan, d Denominator) Portfolio {
	p := Portfolio{Loans: len(ls), TotalLent: decimal.Zero, TotalCollected: decimal.Zero}
	var repaid, ongoing, knownStatus, onTime, knownInstalment int
	var sumROI, sumDelay float64
	for i := range ls {
		l := &ls[i]
		if l.LoanAmount != nil {
			p.TotalLent = p.TotalLent.Add(decimal.NewFromFloat(*l.LoanAmount))
		}
		if l.TotalPaidAmount != nil {
			p.TotalCollected = p.TotalCollected.Add(decimal.NewFromFloat(*l.TotalPaidAmount))
		}
		switch l.Status() {
		case loans.StatusRepaid:
			repaid++
		case loans.StatusOngoing:
			ongoing++
		}
		if l.LoanStatus != nil {
			knownStatus++
		}
		if l.FirstInstalmentStatus != nil {
			knownInstalment++
			if *l.FirstInstalmentStatus == loans.InstalmentPaid {
				onTime++
			}
		}
		sumROI += l.Derived.ROI
		sumDelay += l.Derived.DaysDelayed
	}
	p.NetProfit = p.TotalCollected.Sub(p.TotalLent)

	statusDen, instalmentDen := p.Loans, p.Loans
	if d == NonNullRows {
		statusDen, instalmentDen = knownStatus, knownInstalment
	}
	p.RepaymentRate = Rate(repaid, statusDen)
	p.DefaultRate = Rate(ongoing, statusDen)
	p.OnTimeRate = Rate(onTime, instalmentDen)
	if p.Loans > 0 {
		p.ROI = sumROI / float64(p.Loans)
		p.MeanDaysDelayed = sumDelay / float64(p.Loans)
	}
	return p
}

// Profitable reports whether collections exceed the amount lent.
func (p Portfolio) Profitable() bool { return p.NetProfit.IsPositive() }
