package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/loanlens-cli/internal/aggregate"
	"github.com/KaramelBytes/loanlens-cli/internal/chart"
	"github.com/KaramelBytes/loanlens-cli/internal/cleaner"
	cfgpkg "github.com/KaramelBytes/loanlens-cli/internal/config"
	"github.com/KaramelBytes/loanlens-cli/internal/pipeline"
	"github.com/KaramelBytes/loanlens-cli/internal/report"
	"github.com/KaramelBytes/loanlens-cli/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Report flags, shared by every analysis command (override config if set)
var (
	flagSheet        string
	flagDashboardOut string
	flagPortfolioOut string
	flagOutput       string
	flagNoCharts     bool
	flagQuiet        bool
)

type mode struct {
	sections  report.Section
	dashboard bool
	portfolio bool
}

var (
	runMode       = mode{sections: report.AllSections, dashboard: true, portfolio: true}
	dashboardMode = mode{sections: report.DashboardSections, dashboard: true}
	portfolioMode = mode{sections: report.PortfolioSections, portfolio: true}
	qualityMode   = mode{sections: report.QualitySections}
)

func addReportFlags(cmd *cobra.Command, charts bool) {
	cmd.Flags().StringVar(&flagSheet, "sheet", "", "sheet to read (default from config: CLA)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "optional path to write the summary (Markdown)")
	cmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "do not print the console report")
	if !charts {
		return
	}
	cmd.Flags().StringVar(&flagDashboardOut, "dashboard-out", "", "dashboard PNG path (default from config)")
	cmd.Flags().StringVar(&flagPortfolioOut, "portfolio-out", "", "portfolio PNG path (default from config)")
	cmd.Flags().BoolVar(&flagNoCharts, "no-charts", false, "skip rendering the PNG charts")
}

func runAnalysis(m mode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		eff := *c
		f := cmd.Flags()
		if len(args) == 1 {
			eff.InputFile = args[0]
		}
		if f.Changed("sheet") && flagSheet != "" {
			eff.Sheet = flagSheet
		}
		if f.Changed("dashboard-out") && flagDashboardOut != "" {
			eff.DashboardPNG = flagDashboardOut
		}
		if f.Changed("portfolio-out") && flagPortfolioOut != "" {
			eff.PortfolioPNG = flagPortfolioOut
		}
		if flagQuiet && !debug {
			logger.SetLevel(logrus.WarnLevel)
		}

		s, err := pipeline.Analyze(pipelineOptions(&eff), logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if !flagQuiet {
			console := report.NewConsole(out)
			console.Print(s, m.sections)
			if err := console.Err(); err != nil {
				logger.WithError(err).Warn("console report incomplete")
			}
		}
		if flagOutput != "" {
			if err := utils.SafeWriteFile(flagOutput, []byte(report.Markdown(s, m.sections))); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote summary to %s\n", flagOutput)
		}
		if flagNoCharts {
			return nil
		}

		opts := chartOptions(&eff)
		type target struct {
			fig  *chart.Figure
			path string
		}
		var targets []target
		if m.dashboard {
			targets = append(targets, target{chart.Dashboard(s, opts, logger), eff.DashboardPNG})
		}
		if m.portfolio {
			targets = append(targets, target{chart.Portfolio(s, opts, logger), eff.PortfolioPNG})
		}
		// Every figure is attempted even when an earlier one fails.
		var errs []error
		for _, t := range targets {
			if err := saveFigure(out, t.fig, t.path); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

// saveFigure renders f to path. A figure with no renderable panel is
// reported and skipped; only write failures are returned.
func saveFigure(out io.Writer, f *chart.Figure, path string) error {
	skipped, err := f.Save(path)
	switch {
	case errors.Is(err, chart.ErrNoPanels):
		logger.WithFields(logrus.Fields{"figure": f.Name, "skipped": skipped}).Warn("no chart written")
		fmt.Fprintf(out, "! Skipped %s: no renderable panels\n", f.Name)
		return nil
	case err != nil:
		return fmt.Errorf("render %s: %w", f.Name, err)
	}
	if len(skipped) > 0 {
		fmt.Fprintf(out, "✓ Saved %s to %s (%d panel(s) skipped)\n", f.Name, path, len(skipped))
		return nil
	}
	fmt.Fprintf(out, "✓ Saved %s to %s\n", f.Name, path)
	return nil
}

func pipelineOptions(c *cfgpkg.Global) pipeline.Options {
	return pipeline.Options{
		Path:  c.InputFile,
		Sheet: c.Sheet,
		Cleaner: cleaner.Options{
			ScoreTiers:    c.ScoreTiers,
			AmountBuckets: c.AmountBuckets,
			Duplicates:    cleaner.DefaultDuplicateConvention,
		},
		Denominator: aggregate.DefaultDenominator,
		TopStates:   c.TopStates,
	}
}

func chartOptions(c *cfgpkg.Global) chart.Options {
	return chart.Options{
		WidthIn:       c.FigureWidthIn,
		HeightIn:      c.FigureHeightIn,
		DPI:           c.DPI,
		HistogramBins: c.HistogramBins,
	}
}
