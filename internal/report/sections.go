// Package report renders an analysis summary as console text or Markdown.
package report

// Section selects a block of the report.
type Section uint

const (
	SectionDataset Section = 1 << iota
	SectionQuality
	SectionPortfolio
	SectionClients
	SectionQuartiles
	SectionTiers
	SectionStates
	SectionMonthly
	SectionAmounts
	SectionFindings
)

// Section sets printed by each command.
const (
	AllSections       = SectionDataset | SectionQuality | SectionPortfolio | SectionClients | SectionQuartiles | SectionTiers | SectionStates | SectionMonthly | SectionAmounts | SectionFindings
	DashboardSections = SectionDataset | SectionQuality | SectionClients | SectionQuartiles | SectionStates | SectionMonthly | SectionAmounts
	PortfolioSections = SectionDataset | SectionPortfolio | SectionClients | SectionTiers | SectionMonthly | SectionFindings
	QualitySections   = SectionDataset | SectionQuality
)

// Has reports whether every bit of o is set in s.
func (s Section) Has(o Section) bool { return s&o == o }
