package pipeline

import (
	"fmt"

	"github.com/KaramelBytes/loanlens-cli/internal/aggregate"
	"github.com/KaramelBytes/loanlens-cli/internal/loans"
)

// Finding is one closing observation drawn from the summary.
type Finding struct {
	Topic string
	Text  string
}

// Findings compares cohorts to produce the key findings section.
// Observations whose inputs are empty are left out.
func Findings(s *Summary) []Finding {
	var out []Finding
	p := s.Portfolio
	if p.Loans > 0 {
		net := Billions(p.NetProfit)
		if p.Profitable() {
			out = append(out, Finding{"profitability", fmt.Sprintf("The portfolio is profitable: net %sB on %d loans.", net, p.Loans)})
		} else {
			out = append(out, Finding{"profitability", fmt.Sprintf("The portfolio is not profitable: net %sB on %d loans.", net, p.Loans)})
		}
	}

	newG, okNew := Group(s.ByClient, loans.ClientNew)
	retG, okRet := Group(s.ByClient, loans.ClientReturning)
	if okNew && okRet && newG.Count > 0 && retG.Count > 0 {
		nd, rd := s.DefaultRate(newG), s.DefaultRate(retG)
		cmp := "the same as"
		switch {
		case nd > rd:
			cmp = "higher than"
		case nd < rd:
			cmp = "lower than"
		}
		out = append(out, Finding{"client type", fmt.Sprintf("New clients default at %.2f%%, %s returning clients at %.2f%%.", nd, cmp, rd)})
	}

	if trend, ok := monotonic(nonEmpty(s.ByTier), s.RepaymentRate); ok {
		out = append(out, Finding{"score tiers", fmt.Sprintf("Repayment rate %s across score tiers.", trend)})
	}

	if amounts := nonEmpty(s.ByAmount); len(amounts) >= 2 {
		small, large := amounts[0], amounts[len(amounts)-1]
		out = append(out, Finding{"loan size", fmt.Sprintf("Smallest loans %s default at %.2f%%, largest loans %s at %.2f%%.",
			small.Key, s.DefaultRate(small), large.Key, s.DefaultRate(large))})
	}
	return out
}

func nonEmpty(groups []aggregate.Group) []aggregate.Group {
	var out []aggregate.Group
	for _, g := range groups {
		if g.Count > 0 && !g.Missing {
			out = append(out, g)
		}
	}
	return out
}

func monotonic(groups []aggregate.Group, rate func(aggregate.Group) float64) (string, bool) {
	if len(groups) < 2 {
		return "", false
	}
	up, down := true, true
	for i := 1; i < len(groups); i++ {
		a, b := rate(groups[i-1]), rate(groups[i])
		if b < a {
			up = false
		}
		if b > a {
			down = false
		}
	}
	switch {
	case up && down:
		return "is flat", true
	case up:
		return "rises steadily", true
	case down:
		return "falls steadily", true
	default:
		return "does not move steadily", true
	}
}
