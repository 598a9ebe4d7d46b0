package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.InputFile != "CS.xlsx" || c.Sheet != "CLA" {
		t.Fatalf("input = %s/%s", c.InputFile, c.Sheet)
	}
	if c.DashboardPNG != "loan_analysis_dashboard.png" || c.PortfolioPNG != "comprehensive_analysis.png" {
		t.Fatalf("outputs = %s, %s", c.DashboardPNG, c.PortfolioPNG)
	}
	if c.DPI != 300 || c.FigureWidthIn != 15 || c.FigureHeightIn != 10 || c.HistogramBins != 50 {
		t.Fatalf("chart defaults = %+v", c)
	}
	if c.AmountBuckets != 10 || c.ScoreTiers != 5 || c.TopStates != 10 {
		t.Fatalf("bucket defaults = %+v", c)
	}
}

func TestSaveLoadRoundTripAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	c.Sheet = "Loans"
	c.DPI = 150
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Sheet != "Loans" || got.DPI != 150 {
		t.Fatalf("reloaded = %+v", got)
	}

	t.Setenv("LOANLENS_SHEET", "FromEnv")
	got, err = Load(path)
	if err != nil {
		t.Fatalf("reload with env: %v", err)
	}
	if got.Sheet != "FromEnv" {
		t.Fatalf("env should override file, got %s", got.Sheet)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"dpi", "dpi: 0\n", "dpi must be positive"},
		{"bins", "histogram_bins: -1\n", "histogram_bins"},
		{"format", "log_format: xml\n", "log_format"},
		{"malformed", "dpi: [\n", "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
