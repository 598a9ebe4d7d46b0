package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	InputFile    string `mapstructure:"input_file" yaml:"input_file"`
	Sheet        string `mapstructure:"sheet" yaml:"sheet"`
	DashboardPNG string `mapstructure:"dashboard_png" yaml:"dashboard_png"`
	PortfolioPNG string `mapstructure:"portfolio_png" yaml:"portfolio_png"`

	// Chart rendering
	DPI            int     `mapstructure:"dpi" yaml:"dpi"`
	FigureWidthIn  float64 `mapstructure:"figure_width_in" yaml:"figure_width_in"`
	FigureHeightIn float64 `mapstructure:"figure_height_in" yaml:"figure_height_in"`
	HistogramBins  int     `mapstructure:"histogram_bins" yaml:"histogram_bins"`

	// Bucketing
	AmountBuckets int `mapstructure:"amount_buckets" yaml:"amount_buckets"`
	ScoreTiers    int `mapstructure:"score_tiers" yaml:"score_tiers"`
	TopStates     int `mapstructure:"top_states" yaml:"top_states"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the configuration keys accepted by `config set`.
var Keys = []string{
	"input_file", "sheet", "dashboard_png", "portfolio_png",
	"dpi", "figure_width_in", "figure_height_in", "histogram_bins",
	"amount_buckets", "score_tiers", "top_states",
	"log_level", "log_format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input_file", "CS.xlsx")
	v.SetDefault("sheet", "CLA")
	v.SetDefault("dashboard_png", "loan_analysis_dashboard.png")
	v.SetDefault("portfolio_png", "comprehensive_analysis.png")
	// Chart defaults
	v.SetDefault("dpi", 300)
	v.SetDefault("figure_width_in", 15.0)
	v.SetDefault("figure_height_in", 10.0)
	v.SetDefault("histogram_bins", 50)
	// Bucketing defaults
	v.SetDefault("amount_buckets", 10)
	v.SetDefault("score_tiers", 5)
	v.SetDefault("top_states", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// DefaultPath returns ~/.loanlens/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".loanlens", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.loanlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("LOANLENS")
	v.AutomaticEnv()
	setDefaults(v)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".loanlens"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing file is optional; a malformed one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the analysis cannot run with.
func (c *Global) Validate() error {
	switch {
	case c.DPI <= 0:
		return fmt.Errorf("config: dpi must be positive, got %d", c.DPI)
	case c.FigureWidthIn <= 0 || c.FigureHeightIn <= 0:
		return fmt.Errorf("config: figure size must be positive, got %gx%g in", c.FigureWidthIn, c.FigureHeightIn)
	case c.HistogramBins <= 0:
		return fmt.Errorf("config: histogram_bins must be positive, got %d", c.HistogramBins)
	case c.AmountBuckets <= 0:
		return fmt.Errorf("config: amount_buckets must be positive, got %d", c.AmountBuckets)
	case c.ScoreTiers <= 0:
		return fmt.Errorf("config: score_tiers must be positive, got %d", c.ScoreTiers)
	case c.TopStates <= 0:
		return fmt.Errorf("config: top_states must be positive, got %d", c.TopStates)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
