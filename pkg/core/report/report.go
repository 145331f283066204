// Package report renders valuation results for people: Markdown, plain text,
// HTML and indented JSON.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"business_valuation/pkg/core/industry"
	"business_valuation/pkg/core/valuation"
)

// Format names accepted by Render.
const (
	FormatJSON     = "json"
	FormatMarkdown = "md"
	FormatText     = "text"
	FormatHTML     = "html"
)

// Report is everything a rendered document shows. ID is optional.
type Report struct {
	ID     string                    `json:"id,omitempty"`
	Input  valuation.ValuationInput  `json:"input"`
	Output valuation.ValuationOutput `json:"output"`
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ContentType returns the HTTP content type for format.
func ContentType(format string) string {
	switch canonical(format) {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render dispatches on format. An empty format means JSON.
func Render(r Report, format string) ([]byte, error) {
	switch canonical(format) {
	case FormatJSON:
		return RenderJSON(r)
	case FormatMarkdown:
		return []byte(RenderMarkdown(r)), nil
	case FormatText:
		return []byte(RenderText(r)), nil
	case FormatHTML:
		return RenderHTML(r)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

func canonical(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
		return FormatJSON
	case "markdown":
		return FormatMarkdown
	case "txt":
		return FormatText
	default:
		return f
	}
}

// RenderJSON returns the report as indented JSON.
func RenderJSON(r Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// RenderHTML converts the Markdown rendering to an HTML fragment.
func RenderHTML(r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(RenderMarkdown(r)), &buf); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderMarkdown renders the report as a GitHub-flavored Markdown document.
func RenderMarkdown(r Report) string {
	out := r.Output
	var b strings.Builder

	fmt.Fprintf(&b, "# Valuation: %s\n\n", title(r))
	if r.ID != "" {
		fmt.Fprintf(&b, "_Report %s_\n\n", r.ID)
	}

	b.WriteString("## Valuation Range\n\n")
	b.WriteString("| Low | Mid | High |\n|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n\n",
		valuation.FormatCurrency(out.ValuationRange.Low),
		valuation.FormatCurrency(out.ValuationRange.Mid),
		valuation.FormatCurrency(out.ValuationRange.High))

	fmt.Fprintf(&b, "**Deal quality:** %d / 100 (grade %s)\n\n", out.DealQualityScore, out.Grade)
	if out.DealQuality.Summary != "" {
		b.WriteString(out.DealQuality.Summary + "\n\n")
	}

	if m := out.Mispricing; m != nil {
		b.WriteString("## Asking Price\n\n")
		fmt.Fprintf(&b, "**%s** (%s)\n\n", m.Label, strings.ReplaceAll(string(m.Recommendation), "_", " "))
		b.WriteString(m.Analysis + "\n\n")
	}

	b.WriteString("## Multiples\n\n")
	b.WriteString("| Method | Low | Mid | High |\n|---|---:|---:|---:|\n")
	for _, row := range multipleRows(out.MultiplesUsed) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", row.label,
			valuation.FormatMultiple(row.r.Low),
			valuation.FormatMultiple(row.r.Mid),
			valuation.FormatMultiple(row.r.High))
	}
	b.WriteString("\n")

	n := out.Normalization
	b.WriteString("## Normalized Earnings\n\n")
	fmt.Fprintf(&b, "- SDE: %s\n", valuation.FormatCurrency(n.NormalizedSDE))
	fmt.Fprintf(&b, "- EBITDA: %s\n", valuation.FormatCurrency(n.NormalizedEBITDA))
	fmt.Fprintf(&b, "- Owner salary: %s", valuation.FormatCurrency(n.Adjustments.OwnerSalary))
	if n.Adjustments.OwnerSalaryEstimated {
		b.WriteString(" (estimated)")
	}
	b.WriteString("\n\n")

	if len(out.RiskAssessment.Adjustments) > 0 {
		b.WriteString("## Risk Adjustments\n\n")
		b.WriteString("| Factor | Impact | Severity | Detail |\n|---|---:|---|---|\n")
		for _, a := range out.RiskAssessment.Adjustments {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				a.Factor, valuation.FormatSignedMultiple(a.Impact), a.Severity, escapeCell(a.Description))
		}
		fmt.Fprintf(&b, "\nNet multiple change: %s\n\n",
			valuation.FormatSignedMultiple(out.RiskAssessment.NetMultipleChange))
	}

	writeList(&b, "## Key Strengths", out.KeyStrengths)
	writeList(&b, "## Red Flags", out.RedFlags)
	writeList(&b, "## Negotiation Recommendations", out.NegotiationRecommendations)

	b.WriteString("## Methodology\n\n")
	b.WriteString(out.Methodology + "\n")
	return b.String()
}

// RenderText renders the report as plain text for terminals.
func RenderText(r Report) string {
	out := r.Output
	var b strings.Builder

	heading := "VALUATION: " + strings.ToUpper(title(r))
	b.WriteString(heading + "\n")
	b.WriteString(strings.Repeat("=", len(heading)) + "\n\n")

	fmt.Fprintf(&b, "Range:         %s - %s (mid %s)\n",
		valuation.FormatCurrency(out.ValuationRange.Low),
		valuation.FormatCurrency(out.ValuationRange.High),
		valuation.FormatCurrency(out.ValuationRange.Mid))
	fmt.Fprintf(&b, "Method:        %s\n", strings.ToUpper(string(out.MultiplesUsed.Primary)))
	fmt.Fprintf(&b, "Deal quality:  %d/100 (%s)\n", out.DealQualityScore, out.Grade)
	if m := out.Mispricing; m != nil {
		fmt.Fprintf(&b, "Asking price:  %s, %s\n", valuation.FormatCurrency(m.AskingPrice), m.Label)
	}
	b.WriteString("\n")

	for _, row := range multipleRows(out.MultiplesUsed) {
		fmt.Fprintf(&b, "%-9s %s / %s / %s\n", row.label+":",
			valuation.FormatMultiple(row.r.Low),
			valuation.FormatMultiple(row.r.Mid),
			valuation.FormatMultiple(row.r.High))
	}
	b.WriteString("\n")

	writeTextList(&b, "Strengths", out.KeyStrengths)
	writeTextList(&b, "Red flags", out.RedFlags)
	writeTextList(&b, "Negotiation", out.NegotiationRecommendations)

	b.WriteString(out.Methodology + "\n")
	return b.String()
}

func title(r Report) string {
	if name := r.Output.IndustryData.IndustryName; name != "" {
		return name
	}
	if r.Input.Industry != "" {
		return r.Input.Industry
	}
	return "Business"
}

type multipleRow struct {
	label string
	r     industry.MultipleRange
}

// multipleRows lists the primary family first.
func multipleRows(m valuation.MultiplesUsed) []multipleRow {
	rows := []multipleRow{{"SDE", m.SDE}, {"EBITDA", m.EBITDA}, {"Revenue", m.Revenue}}
	for i, method := range []valuation.Method{valuation.MethodSDE, valuation.MethodEBITDA, valuation.MethodRevenue} {
		if method == m.Primary {
			primary := rows[i]
			primary.label += " (primary)"
			rows = append([]multipleRow{primary}, append(rows[:i:i], rows[i+1:]...)...)
			break
		}
	}
	return rows
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading + "\n\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")
}

func writeTextList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading + ":\n")
	for _, item := range items {
		b.WriteString("  * " + item + "\n")
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
