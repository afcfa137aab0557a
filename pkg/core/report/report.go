// Package report renders scenario results as markdown tables, with optional
// HTML conversion for sharing.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"barrier_tea/pkg/core/tea"
)

// Markdown renders the scenario as a markdown document: headline totals, the
// per-technology production cost table, the per-technology annual cost table,
// and one-time capital costs.
func Markdown(title string, s *tea.Scenario) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# TEA scenario: %s\n\n", title)
	fmt.Fprintf(&b, "- Total production cost (USD): %.4f\n", s.TotalCost)
	fmt.Fprintf(&b, "- End-of-life cost (USD): %.4f\n", s.TotalEOLCost)
	fmt.Fprintf(&b, "- Virgin production (lbs): %.4f\n", s.VirginProduction)
	fmt.Fprintf(&b, "- Final landfill (lbs): %.4f\n\n", s.FinalLandfill)

	b.WriteString("## Production cost by technology\n\n")
	b.WriteString("| Technology | Production Cost (USD) |\n|---|---|\n")
	for _, row := range s.ProcessProductionCosts {
		fmt.Fprintf(&b, "| %s | %.4f |\n", row.Technology, row.Cost)
	}
	b.WriteString("\n")

	b.WriteString("## Annual cost by technology and category\n\n")
	b.WriteString("| Technology | Category | Annual Cost (USD) |\n|---|---|---|\n")
	for _, row := range s.ProcessAnnualCosts {
		fmt.Fprintf(&b, "| %s | %s | %.4f |\n", row.Technology, row.Category, row.Value)
	}
	b.WriteString("\n")

	b.WriteString("## One-time costs\n\n")
	b.WriteString("| Technology | Category | Cost (USD) |\n|---|---|---|\n")
	for _, t := range s.ValueChain {
		for _, line := range t.OneTimeCosts {
			fmt.Fprintf(&b, "| %s | %s | %.4f |\n", t.Name, line.Category, line.Value)
		}
	}

	return b.String()
}

// HTML renders the scenario markdown through goldmark. The Table extension
// is required for the pipe tables Markdown emits.
func HTML(title string, s *tea.Scenario) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(title, s)), &buf); err != nil {
		return nil, fmt.Errorf("report: render html: %w", err)
	}
	return buf.Bytes(), nil
}
