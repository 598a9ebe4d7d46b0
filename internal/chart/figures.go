package chart

import (
	"github.com/KaramelBytes/loanlens-cli/internal/aggregate"
	"github.com/KaramelBytes/loanlens-cli/internal/pipeline"
	"github.com/sirupsen/logrus"
)

// Dashboard lays out the risk dashboard: default and repayment rates by
// cohort, loan sizes, top states and the monthly trend.
func Dashboard(s *pipeline.Summary, opts Options, log *logrus.Logger) *Figure {
	f := NewFigure("dashboard", 2, 3, opts, log)

	labels, vals := series(s.ByClient, s.DefaultRate)
	f.Place(0, 0, BarPanel("default_by_client_type", "Default Rate by Client Type", "Default rate (%)", labels, vals, crimson))

	f.Place(0, 1, HistPanel("loan_amount_distribution", "Loan Amount Distribution", "Loan amount", s.LoanAmounts(), opts.HistogramBins, steelBlue))

	labels, vals = series(s.ByQuartile, s.RepaymentRate)
	f.Place(0, 2, BarPanel("repayment_by_risk_quartile", "Repayment Rate by Risk Quartile", "Repayment rate (%)", labels, vals, seaGreen))

	labels, vals = series(s.TopStates, s.RepaymentRate)
	f.Place(1, 0, BarPanel("top_states", "Top States by Repayment Rate", "Repayment rate (%)", labels, vals, steelBlue))

	labels, vals = series(s.ByMonth, s.RepaymentRate)
	f.Place(1, 1, LinePanel("monthly_trend", "Monthly Repayment Trend", "Repayment rate (%)", labels, vals, darkOrange))

	labels, vals = series(s.ByAmount, s.DefaultRate)
	f.Place(1, 2, BarPanel("default_by_amount", "Default Rate by Loan Amount", "Default rate (%)", labels, vals, crimson))
	return f
}

// Portfolio lays out the comprehensive portfolio analysis.
func Portfolio(s *pipeline.Summary, opts Options, log *logrus.Logger) *Figure {
	f := NewFigure("portfolio", 2, 3, opts, log)

	labels, vals := series(s.ByClient, s.RepaymentRate)
	f.Place(0, 0, BarPanel("repayment_by_client_type", "Repayment Rate by Client Type", "Repayment rate (%)", labels, vals, seaGreen))

	labels, vals = series(s.ByClient, func(g aggregate.Group) float64 { return g.MeanROI })
	f.Place(0, 1, BarPanel("roi_by_client_type", "ROI by Client Type", "Mean ROI (%)", labels, vals, darkOrange))

	f.Place(0, 2, HistPanel("loan_amount_distribution", "Loan Amount Distribution", "Loan amount", s.LoanAmounts(), opts.HistogramBins, steelBlue))

	labels, vals = series(s.ByTier, s.RepaymentRate)
	f.Place(1, 0, BarPanel("repayment_by_score_tier", "Repayment Rate by Score Tier", "Repayment rate (%)", labels, vals, seaGreen))

	labels, vals = series(s.ByMonth, s.RepaymentRate)
	f.Place(1, 1, LinePanel("monthly_repayment", "Monthly Repayment Rate", "Repayment rate (%)", labels, vals, steelBlue))

	f.Place(1, 2, HistPanel("profit_loss_distribution", "Profit/Loss Distribution", "Profit/loss", s.ProfitLoss(), opts.HistogramBins, slateGray))
	return f
}
