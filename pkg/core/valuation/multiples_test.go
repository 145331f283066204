package valuation

import (
	"math"
	"testing"

	"business_valuation/pkg/core/industry"
)

func approxRange(t *testing.T, name string, got industry.MultipleRange, low, mid, high float64) {
	t.Helper()
	if math.Abs(got.Low-low) > 1e-9 || math.Abs(got.Mid-mid) > 1e-9 || math.Abs(got.High-high) > 1e-9 {
		t.Errorf("%s = %.4f/%.4f/%.4f, want %.4f/%.4f/%.4f", name, got.Low, got.Mid, got.High, low, mid, high)
	}
}

func TestAdjustMultiples(t *testing.T) {
	hvac := industry.Lookup("hvac")

	m := AdjustMultiples(hvac, 0)
	approxRange(t, "sde", m.SDE, 2.5, 3.0, 4.0)
	approxRange(t, "ebitda", m.EBITDA, 3.5, 4.5, 6.0)
	approxRange(t, "revenue", m.Revenue, 0.4, 0.6, 0.9)

	m = AdjustMultiples(hvac, -1)
	approxRange(t, "sde -1", m.SDE, 1.5, 2.0, 3.0)
	approxRange(t, "ebitda -1", m.EBITDA, 2.5, 3.5, 5.0)
	approxRange(t, "revenue -1", m.Revenue, 0.2, 0.4, 0.7)

	m = AdjustMultiples(hvac, 0.5)
	approxRange(t, "revenue +0.5", m.Revenue, 0.5, 0.7, 1.0)
}

func TestAdjustMultiplesFloors(t *testing.T) {
	thin := industry.MultipleData{
		SDE:     industry.MultipleRange{Low: 1.0, Mid: 1.2, High: 1.4},
		EBITDA:  industry.MultipleRange{Low: 1.2, Mid: 1.4, High: 2.0},
		Revenue: industry.MultipleRange{Low: 0.1, Mid: 0.2, High: 0.3},
	}
	m := AdjustMultiples(thin, -1)
	approxRange(t, "sde", m.SDE, 0.5, 0.5, 0.5)
	approxRange(t, "ebitda", m.EBITDA, 0.5, 0.5, 1.0)
	approxRange(t, "revenue", m.Revenue, 0.1, 0.2, 0.3)

	for _, r := range []industry.MultipleRange{m.SDE, m.EBITDA, m.Revenue} {
		if !r.Ordered() {
			t.Errorf("floored band lost ordering: %+v", r)
		}
	}
}

func TestSelectMethod(t *testing.T) {
	tests := []struct {
		name string
		in   ValuationInput
		want Method
	}{
		{"large with ebitda", ValuationInput{Revenue: Float(2_000_000), EBITDA: Float(300_000)}, MethodEBITDA},
		{"large with sde only", ValuationInput{Revenue: Float(3_000_000), SDE: Float(400_000)}, MethodSDE},
		{"small with ebitda", ValuationInput{Revenue: Float(1_000_000), EBITDA: Float(250_000)}, MethodSDE},
		{"cash flow", ValuationInput{CashFlow: Float(90_000)}, MethodSDE},
		{"revenue only", ValuationInput{Revenue: Float(500_000)}, MethodRevenue},
		{"nothing", ValuationInput{}, MethodRevenue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectMethod(tt.in, Normalize(tt.in)); got != tt.want {
				t.Errorf("SelectMethod = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCalculateRange(t *testing.T) {
	m := AdjustMultiples(industry.Lookup("hvac"), 0)
	in := ValuationInput{SDE: Float(200_000), Inventory: Float(30_000), FFE: Float(20_000)}

	rng := CalculateRange(MethodSDE, Normalize(in), in, m)
	if rng.Low != 550_000 || rng.Mid != 650_000 || rng.High != 850_000 {
		t.Errorf("Expected 550000/650000/850000, got %+v", rng)
	}
}

func TestCalculateRangeFloorsNegativeMetric(t *testing.T) {
	m := AdjustMultiples(industry.Lookup("hvac"), 0)
	norm := NormalizationResult{NormalizedSDE: 40_000, NormalizedEBITDA: -60_000}
	in := ValuationInput{Inventory: Float(10_000)}

	rng := CalculateRange(MethodEBITDA, norm, in, m)
	if rng.Low != 10_000 || rng.Mid != 10_000 || rng.High != 10_000 {
		t.Errorf("Expected tangible assets only, got %+v", rng)
	}
}

func TestCalculateRangeRevenueMethod(t *testing.T) {
	m := AdjustMultiples(industry.Lookup("hvac"), 0)
	in := ValuationInput{Revenue: Float(1_000_000)}

	rng := CalculateRange(MethodRevenue, Normalize(in), in, m)
	if rng.Low != 400_000 || rng.Mid != 600_000 || rng.High != 900_000 {
		t.Errorf("Expected 400000/600000/900000, got %+v", rng)
	}
}
