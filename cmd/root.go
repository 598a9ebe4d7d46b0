package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/loanlens-cli/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "loanlens [file]",
	Short: "LoanLens: loan portfolio analysis from a spreadsheet",
	Long: `LoanLens loads a loan-origination spreadsheet, checks its data quality, computes
portfolio KPIs and cohort aggregates, prints a console report and renders a risk
dashboard and a comprehensive portfolio chart grid as PNG files.

Without a subcommand it behaves like "loanlens run".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalysis(runMode),
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.loanlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text | json (overrides config)")
	addReportFlags(rootCmd, true)
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal here: analysis commands report it when they need the config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		configureLogger(nil)
		return
	}
	cfg = c
	configureLogger(cfg)
}

func configureLogger(c *cfgpkg.Global) {
	level, format := "info", "text"
	if c != nil {
		level, format = c.LogLevel, c.LogFormat
	}
	if rootCmd.PersistentFlags().Changed("log-format") && logFormat != "" {
		format = logFormat
	}
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if debug {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)
	logger.SetOutput(os.Stderr)
}

// effectiveConfig returns the loaded configuration, retrying the load so
// that a broken config file surfaces as a command error.
func effectiveConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}
