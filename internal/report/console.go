package report

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/loanlens-cli/internal/pipeline"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// Console prints summaries as colored headings and tables.
type Console struct {
	out     *errWriter
	heading *color.Color
	title   *color.Color
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		out:     &errWriter{w: w},
		heading: color.New(color.FgYellow),
		title:   color.New(color.FgCyan, color.Bold),
	}
}

// Err returns the first write error, if any.
func (c *Console) Err() error { return c.out.err }

// Print writes the selected sections of s.
func (c *Console) Print(s *pipeline.Summary, sections Section) {
	if sections.Has(SectionDataset) {
		c.title.Fprintln(c.out, "\n=== Loan Portfolio Analysis ===")
		fmt.Fprintf(c.out, "File: %s (sheet %s)\n", s.Source, s.Sheet)
		fmt.Fprintf(c.out, "Rows: %d  Columns: %d\n", s.Quality.Rows, s.Quality.Columns)
		fmt.Fprintf(c.out, "Run: %s\n", s.RunID)
	}
	if sections.Has(SectionQuality) {
		c.section("Data Quality")
		for _, l := range qualityLines(s) {
			fmt.Fprintln(c.out, l)
		}
		if rows := missingRows(s); len(rows) > 0 {
			c.table(qualityHeader, rows)
		} else {
			fmt.Fprintln(c.out, "No missing values.")
		}
		c.section("Outliers (IQR)")
		c.table(outlierHeader, outlierRows(s))
	}
	if sections.Has(SectionPortfolio) {
		c.section("Portfolio Performance")
		for _, l := range portfolioLines(s) {
			fmt.Fprintln(c.out, l)
		}
	}
	for _, gs := range groupSections {
		if !sections.Has(gs.section) {
			continue
		}
		c.section(gs.title)
		groups := gs.groups(s)
		if len(groups) == 0 {
			fmt.Fprintln(c.out, "No data.")
			continue
		}
		c.table(groupHeader, groupRows(s, groups))
	}
	if sections.Has(SectionFindings) && len(s.Findings) > 0 {
		c.section("Key Findings")
		for _, f := range s.Findings {
			fmt.Fprintf(c.out, "- %s\n", f.Text)
		}
	}
}

func (c *Console) section(name string) {
	c.heading.Fprintf(c.out, "\n%s\n", name)
}

func (c *Console) table(header []string, rows [][]string) {
	t := tablewriter.NewWriter(c.out)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.AppendBulk(rows)
	t.Render()
}
