package valuation

import (
	"math"

	"business_valuation/pkg/core/industry"
)

const (
	// MinEarningsMultiple floors every adjusted SDE and EBITDA multiple.
	MinEarningsMultiple = 0.5

	// RevenueRiskSensitivity is the share of the risk delta applied to revenue multiples.
	RevenueRiskSensitivity = 0.2

	// EBITDAMethodRevenueThreshold is the revenue at which EBITDA becomes the primary method.
	EBITDAMethodRevenueThreshold = 2_000_000
)

// Revenue multiple floors for the low, mid and high bands.
var revenueFloors = industry.MultipleRange{Low: 0.1, Mid: 0.2, High: 0.3}

// AdjustMultiples shifts all three multiple families of an industry entry by
// delta. SDE and EBITDA bands move by the full delta; revenue bands move by
// RevenueRiskSensitivity of it. Floors keep every multiple positive.
func AdjustMultiples(data industry.MultipleData, delta float64) MultiplesUsed {
	earnings := func(r industry.MultipleRange) industry.MultipleRange {
		return industry.MultipleRange{
			Low:  math.Max(MinEarningsMultiple, r.Low+delta),
			Mid:  math.Max(MinEarningsMultiple, r.Mid+delta),
			High: math.Max(MinEarningsMultiple, r.High+delta),
		}
	}
	revDelta := delta * RevenueRiskSensitivity
	return MultiplesUsed{
		SDE:    earnings(data.SDE),
		EBITDA: earnings(data.EBITDA),
		Revenue: industry.MultipleRange{
			Low:  math.Max(revenueFloors.Low, data.Revenue.Low+revDelta),
			Mid:  math.Max(revenueFloors.Mid, data.Revenue.Mid+revDelta),
			High: math.Max(revenueFloors.High, data.Revenue.High+revDelta),
		},
	}
}

// SelectMethod picks the primary valuation method.
//
//	EBITDA  if revenue >= 2,000,000 and a positive EBITDA was reported
//	SDE     if earnings came from SDE, EBITDA or cash flow data
//	Revenue otherwise
func SelectMethod(in ValuationInput, norm NormalizationResult) Method {
	if valueOf(in.Revenue) >= EBITDAMethodRevenueThreshold && valueOf(in.EBITDA) > 0 {
		return MethodEBITDA
	}
	switch norm.Adjustments.Source {
	case SourceSDE, SourceEBITDA, SourceCashFlow:
		return MethodSDE
	}
	return MethodRevenue
}

// CalculateRange applies the chosen method's band to its metric and adds
// tangible assets (inventory and FF&E) to each point.
//
// FORMULA: value = round(max(0, metric) × multiple) + inventory + ffe
//
// The metric is floored at zero so that low <= mid <= high survives a
// negative normalized EBITDA.
func CalculateRange(method Method, norm NormalizationResult, in ValuationInput, m MultiplesUsed) ValuationRange {
	var (
		metric float64
		band   industry.MultipleRange
	)
	switch method {
	case MethodEBITDA:
		metric, band = norm.NormalizedEBITDA, m.EBITDA
	case MethodRevenue:
		metric, band = valueOf(in.Revenue), m.Revenue
	default:
		metric, band = norm.NormalizedSDE, m.SDE
	}
	metric = math.Max(0, metric)
	assets := valueOf(in.Inventory) + valueOf(in.FFE)

	return ValuationRange{
		Low:  math.Round(metric*band.Low) + assets,
		Mid:  math.Round(metric*band.Mid) + assets,
		High: math.Round(metric*band.High) + assets,
	}
}
