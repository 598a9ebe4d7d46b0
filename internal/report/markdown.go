package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/loanlens-cli/internal/pipeline"
)

// Markdown renders the selected sections of s as a Markdown document.
func Markdown(s *pipeline.Summary, sections Section) string {
	var b strings.Builder
	b.WriteString("[LOAN PORTFOLIO SUMMARY]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", s.Source))
	b.WriteString(fmt.Sprintf("Sheet: %s\n", s.Sheet))
	b.WriteString(fmt.Sprintf("Run: %s\n", s.RunID))
	b.WriteString(fmt.Sprintf("Generated: %s\n", s.Started.Format("2006-01-02 15:04:05 UTC")))
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Quality.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", s.Quality.Columns))
	b.WriteString(fmt.Sprintf("Rates over: %s\n\n", s.Denominator))

	if sections.Has(SectionQuality) {
		b.WriteString("[DATA QUALITY]\n")
		for _, l := range qualityLines(s) {
			b.WriteString("- " + strings.TrimLeft(l, " ") + "\n")
		}
		b.WriteString("\n")
		if rows := missingRows(s); len(rows) > 0 {
			writeTable(&b, qualityHeader, rows)
		}
		b.WriteString("[OUTLIERS]\n")
		writeTable(&b, outlierHeader, outlierRows(s))
	}
	if sections.Has(SectionPortfolio) {
		b.WriteString("[PORTFOLIO PERFORMANCE]\n")
		for _, l := range portfolioLines(s) {
			b.WriteString("- " + l + "\n")
		}
		b.WriteString("\n")
	}
	for _, gs := range groupSections {
		if !sections.Has(gs.section) {
			continue
		}
		b.WriteString("[" + strings.ToUpper(gs.title) + "]\n")
		groups := gs.groups(s)
		if len(groups) == 0 {
			b.WriteString("No data.\n\n")
			continue
		}
		writeTable(&b, groupHeader, groupRows(s, groups))
	}
	if sections.Has(SectionFindings) && len(s.Findings) > 0 {
		b.WriteString("[KEY FINDINGS]\n")
		for _, f := range s.Findings {
			b.WriteString("- " + f.Text + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(header)) + "\n")
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = strings.ReplaceAll(c, "|", "\\|")
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}
