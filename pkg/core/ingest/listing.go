// Package ingest turns business-for-sale listing pages into valuation inputs.
package ingest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"business_valuation/pkg/core/valuation"
)

// ErrNoFinancials is returned when a listing has no recognizable money figure
// (revenue, cash flow, SDE, EBITDA or asking price).
var ErrNoFinancials = errors.New("listing contains no financial figures")

// ListingImport is the result of parsing one listing page.
type ListingImport struct {
	Title     string                   `json:"title,omitempty"`
	SourceURL string                   `json:"sourceUrl,omitempty"`
	Input     valuation.ValuationInput `json:"input"`
	// Fields maps each recognized field to the raw text it was read from.
	Fields   map[string]string `json:"fields"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Field names used in ListingImport.Fields.
const (
	FieldAskingPrice = "askingPrice"
	FieldRevenue     = "revenue"
	FieldCashFlow    = "cashFlow"
	FieldSDE         = "sde"
	FieldEBITDA      = "ebitda"
	FieldInventory   = "inventory"
	FieldFFE         = "ffe"
	FieldEstablished = "yearEstablished"
	FieldEmployees   = "employees"
	FieldMonthlyRent = "leaseMonthlyRent"
	FieldIndustry    = "industry"
)

// labelRules maps label phrases to fields. Checked in order; more specific
// phrases come before generic ones.
var labelRules = []struct {
	phrase string
	field  string
}{
	{"ebitda", FieldEBITDA},
	{"seller's discretionary earnings", FieldSDE},
	{"sellers discretionary earnings", FieldSDE},
	{"discretionary earnings", FieldSDE},
	{"sde", FieldSDE},
	{"cash flow", FieldCashFlow},
	{"cashflow", FieldCashFlow},
	{"asking price", FieldAskingPrice},
	{"list price", FieldAskingPrice},
	{"price", FieldAskingPrice},
	{"gross revenue", FieldRevenue},
	{"gross sales", FieldRevenue},
	{"annual revenue", FieldRevenue},
	{"revenue", FieldRevenue},
	{"sales", FieldRevenue},
	{"inventory", FieldInventory},
	{"ff&e", FieldFFE},
	{"ffe", FieldFFE},
	{"furniture fixtures", FieldFFE},
	{"furniture fixtures & equipment", FieldFFE},
	{"year established", FieldEstablished},
	{"established", FieldEstablished},
	{"founded", FieldEstablished},
	{"employees", FieldEmployees},
	{"staff", FieldEmployees},
	{"monthly rent", FieldMonthlyRent},
	{"rent", FieldMonthlyRent},
	{"industry", FieldIndustry},
	{"business type", FieldIndustry},
	{"category", FieldIndustry},
}

var (
	moneyPattern = regexp.MustCompile(`(?i)\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(k|m|mm|b|thousand|million|billion)?\b`)
	yearPattern  = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)
	intPattern   = regexp.MustCompile(`\d[\d,]*`)
	labelClean   = strings.NewReplacer(":", " ", "*", " ", "(", " ", ")", " ", ",", " ", "/", " ", "-", " ", ".", " ")
)

// ParseListingHTML extracts listing figures from label/value pairs found in
// definition lists, table rows and "Label: value" list items or paragraphs.
// industryHint, when non-empty, overrides any industry found on the page.
func ParseListingHTML(html string, industryHint string) (*ListingImport, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing html: %w", err)
	}

	imp := &ListingImport{Fields: map[string]string{}}
	imp.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	if imp.Title == "" {
		imp.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		imp.apply(dt.Text(), dt.NextFiltered("dd").Text())
	})
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		if cells.Length() >= 2 {
			imp.apply(cells.Eq(0).Text(), cells.Eq(1).Text())
		}
	})
	doc.Find("li, p").Each(func(_ int, s *goquery.Selection) {
		// Only leaf-level text; nested lists are visited on their own.
		if s.Find("li, p").Length() > 0 {
			return
		}
		label, value, ok := strings.Cut(s.Text(), ":")
		if ok {
			imp.apply(label, value)
		}
	})

	switch {
	case strings.TrimSpace(industryHint) != "":
		imp.Input.Industry = strings.TrimSpace(industryHint)
	case imp.Fields[FieldIndustry] != "":
		imp.Input.Industry = imp.Fields[FieldIndustry]
	default:
		imp.Input.Industry = imp.Title
		imp.Warnings = append(imp.Warnings, "industry not found on page; using listing title")
	}

	if !imp.hasFinancials() {
		return imp, ErrNoFinancials
	}
	return imp, nil
}

// apply records value under the field its label maps to. The first value
// seen for a field wins.
func (imp *ListingImport) apply(rawLabel, rawValue string) {
	field := matchLabel(rawLabel)
	value := strings.Join(strings.Fields(rawValue), " ")
	if field == "" || value == "" {
		return
	}
	if _, seen := imp.Fields[field]; seen {
		return
	}

	in := &imp.Input
	switch field {
	case FieldIndustry:
		imp.Fields[field] = value
		return
	case FieldEstablished:
		m := yearPattern.FindString(value)
		if m == "" {
			return
		}
		year, _ := strconv.Atoi(m)
		in.YearEstablished = valuation.Int(year)
	case FieldEmployees:
		m := intPattern.FindString(value)
		if m == "" {
			return
		}
		n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
		if err != nil {
			return
		}
		in.Employees = valuation.Int(n)
	default:
		amount, ok := ParseMoney(value)
		if !ok {
			return
		}
		target := map[string]**float64{
			FieldAskingPrice: &in.AskingPrice,
			FieldRevenue:     &in.Revenue,
			FieldCashFlow:    &in.CashFlow,
			FieldSDE:         &in.SDE,
			FieldEBITDA:      &in.EBITDA,
			FieldInventory:   &in.Inventory,
			FieldFFE:         &in.FFE,
			FieldMonthlyRent: &in.LeaseMonthlyRent,
		}[field]
		*target = valuation.Float(amount)
	}
	imp.Fields[field] = value
}

func (imp *ListingImport) hasFinancials() bool {
	in := imp.Input
	return in.Revenue != nil || in.CashFlow != nil || in.SDE != nil || in.EBITDA != nil || in.AskingPrice != nil
}

func matchLabel(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	if label == "" || len(label) > 60 {
		return ""
	}
	padded := " " + strings.Join(strings.Fields(labelClean.Replace(label)), " ") + " "
	for _, r := range labelRules {
		if strings.Contains(padded, " "+r.phrase+" ") {
			return r.field
		}
	}
	return ""
}

// ParseMoney reads amounts such as "$1,250,000", "$1.2M", "450K" or
// "2.5 million". Text without a number ("N/A", "Not Disclosed",
// "Included in price") reports false.
func ParseMoney(s string) (float64, bool) {
	m := moneyPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "k", "thousand":
		v *= 1_000
	case "m", "mm", "million":
		v *= 1_000_000
	case "b", "billion":
		v *= 1_000_000_000
	}
	return v, true
}
