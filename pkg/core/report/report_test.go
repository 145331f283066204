package report

import (
	"encoding/json"
	"strings"
	"testing"

	"business_valuation/pkg/core/industry"
	"business_valuation/pkg/core/valuation"
)

func sampleReport() Report {
	in := valuation.ValuationInput{
		Industry:              "hvac",
		SDE:                   valuation.Float(200_000),
		AskingPrice:           valuation.Float(750_000),
		CustomerConcentration: valuation.Float(0.35),
		OwnerHoursPerWeek:     valuation.Float(45),
	}
	engine := valuation.NewEngine(industry.Default(), valuation.WithReferenceYear(2026))
	return Report{ID: "rep-1", Input: in, Output: engine.Calculate(in)}
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleReport())

	for _, want := range []string{
		"# Valuation: HVAC Services",
		"_Report rep-1_",
		"| Low | Mid | High |",
		"| SDE (primary) |",
		"## Risk Adjustments",
		"customer_concentration",
		"## Asking Price",
		"## Methodology",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Index(md, "SDE (primary)") > strings.Index(md, "| EBITDA |") {
		t.Error("primary method should be listed first")
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(sampleReport())
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	s := string(html)
	if !strings.Contains(s, "<h1>Valuation: HVAC Services</h1>") {
		t.Errorf("missing heading in html: %.200s", s)
	}
	if !strings.Contains(s, "<table>") {
		t.Error("expected GFM tables to render as <table>")
	}
}

func TestRenderText(t *testing.T) {
	txt := RenderText(sampleReport())
	if !strings.HasPrefix(txt, "VALUATION: HVAC SERVICES\n====") {
		t.Errorf("unexpected heading: %.60s", txt)
	}
	if !strings.Contains(txt, "Method:        SDE") {
		t.Error("missing method line")
	}
	if strings.Contains(txt, "|") {
		t.Error("plain text should not contain table markup")
	}
}

func TestRenderJSON(t *testing.T) {
	r := sampleReport()
	data, err := RenderJSON(r)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Output.ValuationRange != r.Output.ValuationRange {
		t.Errorf("range = %+v, want %+v", decoded.Output.ValuationRange, r.Output.ValuationRange)
	}
	if !strings.Contains(string(data), "\n  \"id\": \"rep-1\"") {
		t.Error("expected indented output")
	}
}

func TestRenderFormats(t *testing.T) {
	r := sampleReport()
	for _, format := range []string{"", "json", "md", "markdown", "text", "txt", "html", "HTML"} {
		if _, err := Render(r, format); err != nil {
			t.Errorf("Render(%q): %v", format, err)
		}
	}
	if _, err := Render(r, "pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if got := ContentType(FormatHTML); got != "text/html; charset=utf-8" {
		t.Errorf("ContentType(html) = %q", got)
	}
}
