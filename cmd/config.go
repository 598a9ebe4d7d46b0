package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/loanlens-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set LoanLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, k := range cfgpkg.Keys {
			fmt.Fprintf(out, "%s: %s\n", k, configValue(c, k))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		next := *c
		switch key {
		case "input_file":
			next.InputFile = val
		case "sheet":
			next.Sheet = val
		case "dashboard_png":
			next.DashboardPNG = val
		case "portfolio_png":
			next.PortfolioPNG = val
		case "dpi", "histogram_bins", "amount_buckets", "score_tiers", "top_states":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			*intField(&next, key) = i
		case "figure_width_in", "figure_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for %s: %v", key, val)
			}
			if key == "figure_width_in" {
				next.FigureWidthIn = f
			} else {
				next.FigureHeightIn = f
			}
		case "log_level":
			next.LogLevel = strings.ToLower(val)
		case "log_format":
			next.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s (known: %s)", key, strings.Join(cfgpkg.Keys, ", "))
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func intField(c *cfgpkg.Global, key string) *int {
	switch key {
	case "dpi":
		return &c.DPI
	case "histogram_bins":
		return &c.HistogramBins
	case "amount_buckets":
		return &c.AmountBuckets
	case "score_tiers":
		return &c.ScoreTiers
	default:
		return &c.TopStates
	}
}

func configValue(c *cfgpkg.Global, key string) string {
	switch key {
	case "input_file":
		return c.InputFile
	case "sheet":
		return c.Sheet
	case "dashboard_png":
		return c.DashboardPNG
	case "portfolio_png":
		return c.PortfolioPNG
	case "dpi", "histogram_bins", "amount_buckets", "score_tiers", "top_states":
		return strconv.Itoa(*intField(c, key))
	case "figure_width_in":
		return strconv.FormatFloat(c.FigureWidthIn, 'g', -1, 64)
	case "figure_height_in":
		return strconv.FormatFloat(c.FigureHeightIn, 'g', -1, 64)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	}
	return ""
}
