package valuation

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"business_valuation/pkg/core/industry"
)

func newTestEngine() *Engine {
	return NewEngine(industry.Default(), WithReferenceYear(testYear))
}

func TestHVACScenario(t *testing.T) {
	out := newTestEngine().Calculate(ValuationInput{
		Industry:          "hvac",
		SDE:               Float(200_000),
		OwnerHoursPerWeek: Float(45),
	})

	if out.MultiplesUsed.Primary != MethodSDE {
		t.Errorf("Expected SDE method, got %s", out.MultiplesUsed.Primary)
	}
	if out.RiskAssessment.NetMultipleChange != 0 {
		t.Errorf("Expected neutral risk, got %v", out.RiskAssessment.NetMultipleChange)
	}
	if out.ValuationRange.Low != 500_000 || out.ValuationRange.Mid != 600_000 || out.ValuationRange.High != 800_000 {
		t.Errorf("Expected 500000/600000/800000, got %+v", out.ValuationRange)
	}
	if out.IndustryData.IndustryKey != "hvac" {
		t.Errorf("industry = %s", out.IndustryData.IndustryKey)
	}
	if out.Mispricing != nil {
		t.Error("Expected no mispricing without asking price")
	}
}

func TestSaaSScenario(t *testing.T) {
	out := newTestEngine().Calculate(ValuationInput{
		Industry:    "saas",
		Revenue:     Float(1_000_000),
		EBITDA:      Float(250_000),
		AskingPrice: Float(1_000_000),
	})

	// Revenue is below the EBITDA threshold, so earnings derived from EBITDA
	// are valued on the SDE band. Owner salary for $1M revenue is $125k.
	if out.MultiplesUsed.Primary != MethodSDE {
		t.Fatalf("Expected SDE method, got %s", out.MultiplesUsed.Primary)
	}
	if out.Normalization.NormalizedSDE != 375_000 {
		t.Errorf("Expected SDE 375000, got %v", out.Normalization.NormalizedSDE)
	}
	if out.ValuationRange.Mid != 1_500_000 {
		t.Errorf("Expected mid 1500000, got %v", out.ValuationRange.Mid)
	}
	if out.Mispricing == nil {
		t.Fatal("Expected mispricing analysis")
	}
	if out.Mispricing.Recommendation != RecommendStrongBuy || out.Mispricing.Label != "Significantly Underpriced" {
		t.Errorf("Expected strong_buy, got %s (%s)", out.Mispricing.Recommendation, out.Mispricing.Label)
	}
}

func TestLargeBusinessUsesEBITDA(t *testing.T) {
	out := newTestEngine().Calculate(ValuationInput{
		Industry: "hvac",
		Revenue:  Float(3_000_000),
		EBITDA:   Float(400_000),
	})
	if out.MultiplesUsed.Primary != MethodEBITDA {
		t.Fatalf("Expected EBITDA method, got %s", out.MultiplesUsed.Primary)
	}
	if out.ValuationRange.Mid != 1_800_000 {
		t.Errorf("Expected mid 1800000 (400k x 4.5), got %v", out.ValuationRange.Mid)
	}
}

func TestNoFinancialsScenario(t *testing.T) {
	out := newTestEngine().Calculate(ValuationInput{Industry: "retail_general"})

	if out.Normalization.NormalizedSDE != 0 {
		t.Errorf("Expected SDE 0, got %v", out.Normalization.NormalizedSDE)
	}
	if out.Normalization.NormalizedEBITDA != -EstimateOwnerSalary(0) {
		t.Errorf("Expected EBITDA %v, got %v", -EstimateOwnerSalary(0), out.Normalization.NormalizedEBITDA)
	}
	if out.ValuationRange != (ValuationRange{}) {
		t.Errorf("Expected zero range, got %+v", out.ValuationRange)
	}

	withAssets := newTestEngine().Calculate(ValuationInput{Industry: "retail_general", Inventory: Float(40_000), FFE: Float(15_000)})
	if withAssets.ValuationRange != (ValuationRange{Low: 55_000, Mid: 55_000, High: 55_000}) {
		t.Errorf("Expected tangible assets only, got %+v", withAssets.ValuationRange)
	}
}

func TestUnknownIndustryFallsBack(t *testing.T) {
	out := newTestEngine().Calculate(ValuationInput{Industry: "nonexistent-xyz"})
	if out.IndustryData.IndustryKey != industry.FallbackKey {
		t.Errorf("Expected fallback, got %s", out.IndustryData.IndustryKey)
	}
	if out.Methodology == "" {
		t.Error("Expected methodology text")
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	in := ValuationInput{
		Industry:              "Residential HVAC installer",
		Revenue:               Float(1_800_000),
		SDE:                   Float(420_000),
		AskingPrice:           Float(1_350_000),
		Inventory:             Float(60_000),
		FFE:                   Float(85_000),
		YearEstablished:       Int(2008),
		Employees:             Int(14),
		CustomerConcentration: Float(0.18),
		RevenueGrowthTrend:    TrendIncreasing,
		RevenueGrowthRate:     Float(0.08),
		OwnerHoursPerWeek:     Float(50),
		RecurringRevenuePct:   Float(0.35),
		LeaseYearsRemaining:   Float(4),
		LeaseMonthlyRent:      Float(9_500),
		Addbacks:              []Addback{{Description: "Owner truck", Amount: 14_000}},
	}
	e := newTestEngine()
	first, second := e.Calculate(in), e.Calculate(in)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("outputs differ (-first +second):\n%s", diff)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatal("serialized outputs differ")
	}
}

func TestRangeOrderedForAllIndustries(t *testing.T) {
	e := newTestEngine()
	inputs := []ValuationInput{
		{},
		{SDE: Float(150_000)},
		{Revenue: Float(5_000_000), EBITDA: Float(600_000)},
		{Revenue: Float(400_000)},
		{Revenue: Float(900_000), CashFlow: Float(10_000), OwnerSalary: Float(200_000)},
		{
			SDE: Float(80_000), CustomerConcentration: Float(0.9), OwnerHoursPerWeek: Float(80),
			LeaseYearsRemaining: Float(0.2), Employees: Int(1), YearEstablished: Int(testYear),
		},
		{
			SDE: Float(500_000), RecurringRevenuePct: Float(0.9), RevenueGrowthTrend: TrendIncreasing,
			RevenueGrowthRate: Float(0.4), OwnerHoursPerWeek: Float(5), Employees: Int(60),
		},
	}
	for _, entry := range industry.Default().Entries() {
		for i, in := range inputs {
			in.Industry = entry.IndustryKey
			out := e.Calculate(in)
			r := out.ValuationRange
			if !(r.Low <= r.Mid && r.Mid <= r.High) {
				t.Errorf("%s input %d: range out of order %+v", entry.IndustryKey, i, r)
			}
			if n := out.RiskAssessment.NetMultipleChange; n < -1 || n > 1 {
				t.Errorf("%s input %d: net change %v outside [-1,1]", entry.IndustryKey, i, n)
			}
			if out.DealQualityScore < 0 || out.DealQualityScore > 100 {
				t.Errorf("%s input %d: score %d outside [0,100]", entry.IndustryKey, i, out.DealQualityScore)
			}
			if math.IsNaN(r.Mid) || math.IsInf(r.Mid, 0) {
				t.Errorf("%s input %d: non-finite mid", entry.IndustryKey, i)
			}
		}
	}
}

func TestCalculateToleratesOutOfRangeInput(t *testing.T) {
	tests := []struct {
		name string
		in   ValuationInput
	}{
		{"concentration above one", ValuationInput{SDE: Float(200_000), CustomerConcentration: Float(1.7)}},
		{"negative recurring revenue", ValuationInput{SDE: Float(200_000), RecurringRevenuePct: Float(-3)}},
		{"negative money fields", ValuationInput{
			Revenue: Float(-1_000_000), SDE: Float(-200_000), EBITDA: Float(-50_000),
			CashFlow: Float(-10), AskingPrice: Float(-400_000), Inventory: Float(-1), FFE: Float(-1),
		}},
		{"negative employees", ValuationInput{SDE: Float(150_000), Employees: Int(-4)}},
		{"future establishment year", ValuationInput{SDE: Float(150_000), YearEstablished: Int(3000)}},
		{"unknown growth trend", ValuationInput{SDE: Float(150_000), RevenueGrowthTrend: "sideways", RevenueGrowthRate: Float(-9)}},
		{"negative add-back", ValuationInput{
			SDE: Float(100_000), AskingPrice: Float(300_000),
			Addbacks: []Addback{{Description: "reversal", Amount: -500_000}},
		}},
		{"negative hours and lease", ValuationInput{
			SDE: Float(100_000), OwnerHoursPerWeek: Float(-20), LeaseYearsRemaining: Float(-2), OwnerSalary: Float(-5),
		}},
		{"enormous figures", ValuationInput{SDE: Float(1e300), AskingPrice: Float(1e300)}},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Industry = "hvac"
			out := e.Calculate(tt.in)

			r := out.ValuationRange
			for _, v := range []float64{r.Low, r.Mid, r.High} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("non-finite range %+v", r)
				}
			}
			if !(r.Low <= r.Mid && r.Mid <= r.High) {
				t.Errorf("range out of order %+v", r)
			}
			if out.DealQualityScore < 0 || out.DealQualityScore > 100 {
				t.Errorf("score %d outside [0,100]", out.DealQualityScore)
			}
			if m := out.Mispricing; m != nil && (math.IsNaN(m.DifferencePercent) || math.IsInf(m.DifferencePercent, 0)) {
				t.Errorf("non-finite mispricing percent %v", m.DifferencePercent)
			}
			if strings.Contains(out.Methodology, "$-") {
				t.Errorf("malformed currency in methodology: %s", out.Methodology)
			}
			if _, err := json.Marshal(out); err != nil {
				t.Errorf("output does not marshal: %v", err)
			}
		})
	}
}

func TestOutputSlicesNeverNil(t *testing.T) {
	out := newTestEngine().Calculate(ValuationInput{Industry: "hvac"})
	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	s := string(raw)
	for _, key := range []string{`"keyStrengths":[`, `"redFlags":[`, `"negotiationRecommendations":[`, `"adjustments":[`} {
		if !strings.Contains(s, key) {
			t.Errorf("Expected %s in JSON output", key)
		}
	}
	if strings.Contains(s, `"mispricing"`) {
		t.Error("mispricing should be omitted without an asking price")
	}
}

func TestConcentrationNarrative(t *testing.T) {
	out := newTestEngine().Calculate(ValuationInput{
		Industry:              "hvac",
		SDE:                   Float(200_000),
		CustomerConcentration: Float(0.65),
		AskingPrice:           Float(900_000),
	})
	if len(out.RedFlags) == 0 || !strings.HasPrefix(out.RedFlags[0], "Critical: ") {
		t.Errorf("Expected critical concentration flag first, got %v", out.RedFlags)
	}
	var earnout bool
	for _, tip := range out.NegotiationRecommendations {
		if strings.Contains(tip, "earnout") {
			earnout = true
		}
	}
	if !earnout {
		t.Errorf("Expected an earnout recommendation, got %v", out.NegotiationRecommendations)
	}
	if !strings.Contains(out.Methodology, "adjusted multiples by -0.50x") {
		t.Errorf("methodology should report the risk delta: %s", out.Methodology)
	}
}

func TestQuickEstimate(t *testing.T) {
	rng := newTestEngine().QuickEstimate(1_000_000, "hvac")
	if rng.Low != 375_000 || rng.Mid != 450_000 || rng.High != 600_000 {
		t.Errorf("Expected 375000/450000/600000, got %+v", rng)
	}
	if got := QuickEstimate(1_000_000, "unknown-thing"); got.Mid != 375_000 {
		t.Errorf("fallback quick estimate mid = %v, want 375000", got.Mid)
	}
}

func TestPackageLevelCalculateUsesDefaultCatalog(t *testing.T) {
	out := CalculateValuation(ValuationInput{Industry: "hvac", SDE: Float(100_000)})
	if out.ValuationRange.Mid != 300_000 {
		t.Errorf("Expected mid 300000, got %v", out.ValuationRange.Mid)
	}
}
