package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"business_valuation/pkg/core/config"
	"business_valuation/pkg/core/report"
	"business_valuation/pkg/core/valuation"
)

// execute runs the CLI against an isolated store directory.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(config.EnvDatabaseURL, "")
	if os.Getenv(config.EnvStoreDir) == "" {
		t.Setenv(config.EnvStoreDir, t.TempDir())
	}

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestQuickCommand(t *testing.T) {
	out, _, err := execute(t, "", "quick", "--revenue", "1000000", "--industry", "Heating and Air")
	if err != nil {
		t.Fatalf("quick failed: %v", err)
	}
	for _, want := range []string{"HVAC Services", "$375,000", "$450,000", "$600,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestQuickCommandJSON(t *testing.T) {
	out, _, err := execute(t, "", "quick", "--revenue", "1000000", "--industry", "hvac", "--format", "json")
	if err != nil {
		t.Fatalf("quick failed: %v", err)
	}
	var resp struct {
		Industry       string                   `json:"industry"`
		ValuationRange valuation.ValuationRange `json:"valuationRange"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if resp.Industry != "hvac" || resp.ValuationRange.Mid != 450_000 {
		t.Errorf("Expected hvac mid 450000, got %s %v", resp.Industry, resp.ValuationRange.Mid)
	}
}

func TestQuickRejectsNegativeRevenue(t *testing.T) {
	if _, _, err := execute(t, "", "quick", "--revenue", "-5", "--industry", "hvac"); err == nil {
		t.Error("Expected error for negative revenue")
	}
}

func TestValueCommandHjson(t *testing.T) {
	path := writeFile(t, "deal.hjson", `{
  # seller-provided figures
  industry: hvac
  sde: 200000
  askingPrice: 750000
}`)

	out, _, err := execute(t, "", "value", "--input", path, "--format", "json")
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	var rep report.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rep.Output.IndustryData.IndustryKey != "hvac" {
		t.Errorf("Expected industry hvac, got %s", rep.Output.IndustryData.IndustryKey)
	}
	if rep.Output.MultiplesUsed.Primary != valuation.MethodSDE {
		t.Errorf("Expected SDE method, got %s", rep.Output.MultiplesUsed.Primary)
	}
	if rep.Output.Mispricing == nil {
		t.Error("Expected mispricing analysis for a listing with an asking price")
	}
	if rep.ID != "" {
		t.Errorf("Expected no id without --save, got %s", rep.ID)
	}
}

func TestValueCommandStdin(t *testing.T) {
	// Trailing comma is repaired by the lenient decoder.
	out, _, err := execute(t, `{"industry": "plumbing", "sde": 150000,}`, "value", "--input", "-")
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if !strings.HasPrefix(out, "VALUATION: PLUMBING SERVICES") {
		t.Errorf("Expected text report heading, got:\n%.80s", out)
	}
}

func TestValueSaveThenReport(t *testing.T) {
	t.Setenv(config.EnvStoreDir, t.TempDir())
	path := writeFile(t, "deal.json", `{"industry":"hvac","sde":200000}`)

	out, stderr, err := execute(t, "", "value", "--input", path, "--save", "--format", "json")
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	var saved report.Report
	if err := json.Unmarshal([]byte(out), &saved); err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" {
		t.Fatal("Expected saved report to carry an id")
	}
	if !strings.Contains(stderr, "saved "+saved.ID) {
		t.Errorf("Expected save notice on stderr, got %q", stderr)
	}

	md, _, err := execute(t, "", "report", saved.ID, "--format", "md")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(md, "# Valuation: HVAC Services") || !strings.Contains(md, saved.ID) {
		t.Errorf("unexpected markdown report:\n%s", md)
	}
}

func TestReportCommandErrors(t *testing.T) {
	if _, _, err := execute(t, "", "report", "not-a-uuid"); err == nil {
		t.Error("Expected error for invalid id")
	}
	if _, _, err := execute(t, "", "report", "6f1c2b8e-0000-4000-8000-000000000000"); err == nil {
		t.Error("Expected error for unknown id")
	}
	if _, _, err := execute(t, "", "report"); err == nil {
		t.Error("Expected error without an id")
	}
}

func TestIndustriesCommand(t *testing.T) {
	out, _, err := execute(t, "", "industries")
	if err != nil {
		t.Fatalf("industries failed: %v", err)
	}
	for _, want := range []string{"KEY", "hvac", "HVAC Services", "2.50-4.00x", "plumbing"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

const listingHTML = `<html><body>
<h1>Established Plumbing Company</h1>
<dl>
  <dt>Asking Price:</dt><dd>$600,000</dd>
  <dt>Gross Revenue:</dt><dd>$1.2M</dd>
  <dt>Cash Flow:</dt><dd>$240K</dd>
</dl>
</body></html>`

func TestListingCommandFromFile(t *testing.T) {
	path := writeFile(t, "listing.html", listingHTML)

	out, stderr, err := execute(t, "", "listing", "--file", path, "--industry", "plumbing")
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if !strings.HasPrefix(out, "VALUATION: PLUMBING SERVICES") {
		t.Errorf("unexpected report:\n%.120s", out)
	}
	if !strings.Contains(stderr, "listing: Established Plumbing Company") {
		t.Errorf("Expected listing title on stderr, got %q", stderr)
	}
}

func TestListingCommandFlags(t *testing.T) {
	if _, _, err := execute(t, "", "listing"); err == nil {
		t.Error("Expected error when neither --url nor --file is given")
	}
	if _, _, err := execute(t, "", "listing", "--url", "http://x", "--file", "y"); err == nil {
		t.Error("Expected error when both --url and --file are given")
	}

	empty := writeFile(t, "empty.html", "<html><body><p>Nothing here</p></body></html>")
	if _, _, err := execute(t, "", "listing", "--file", empty); err == nil {
		t.Error("Expected error for listing without financials")
	}
}

func TestBatchCommand(t *testing.T) {
	path := writeFile(t, "batch.json", `{"inputs": [
		{"industry": "hvac", "sde": 100000},
		{"industry": "plumbing", "sde": 200000},
		{"industry": "hvac", "sde": 300000}
	]}`)

	out, _, err := execute(t, "", "batch", "--input", path, "--concurrency", "2", "--format", "json")
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	var outputs []valuation.ValuationOutput
	if err := json.Unmarshal([]byte(out), &outputs); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(outputs) != 3 {
		t.Fatalf("Expected 3 outputs, got %d", len(outputs))
	}
	want := []string{"hvac", "plumbing", "hvac"}
	for i, o := range outputs {
		if o.IndustryData.IndustryKey != want[i] {
			t.Errorf("output %d: expected %s, got %s", i, want[i], o.IndustryData.IndustryKey)
		}
	}
	if outputs[0].ValuationRange.Mid >= outputs[2].ValuationRange.Mid {
		t.Error("Expected results to keep input order")
	}
}

func TestBatchCommandTable(t *testing.T) {
	path := writeFile(t, "batch.json", `[{"industry": "hvac", "sde": 100000}]`)
	out, _, err := execute(t, "", "batch", "--input", path)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if !strings.Contains(out, "INDUSTRY") || !strings.Contains(out, "hvac") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestUnknownFormat(t *testing.T) {
	path := writeFile(t, "deal.json", `{"industry":"hvac","sde":200000}`)
	if _, _, err := execute(t, "", "value", "--input", path, "--format", "pdf"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
