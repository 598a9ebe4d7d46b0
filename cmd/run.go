package cmd

import "github.com/spf13/cobra"

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Full report plus the dashboard and portfolio charts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalysis(runMode),
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [file]",
	Short: "Data-quality and risk report with the dashboard chart",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalysis(dashboardMode),
}

var portfolioCmd = &cobra.Command{
	Use:   "portfolio [file]",
	Short: "Portfolio KPI report with the comprehensive analysis chart",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalysis(portfolioMode),
}

var qualityCmd = &cobra.Command{
	Use:   "quality [file]",
	Short: "Data-quality report only (no charts)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalysis(qualityMode),
}

func init() {
	for _, c := range []*cobra.Command{runCmd, dashboardCmd, portfolioCmd} {
		addReportFlags(c, true)
		rootCmd.AddCommand(c)
	}
	addReportFlags(qualityCmd, false)
	rootCmd.AddCommand(qualityCmd)
}
