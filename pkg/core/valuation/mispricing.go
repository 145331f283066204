package valuation

import "fmt"

// mispricingBands are checked in order; the first band whose ceiling is
// >= the percent difference applies. The last band has no ceiling.
var mispricingBands = []struct {
	percentAtMost  float64
	label          string
	recommendation Recommendation
	analysis       string
}{
	{-20, "Significantly Underpriced", RecommendStrongBuy,
		"The asking price is well below the estimated value. Confirm the financials hold up in diligence; if they do, this is a strong opportunity."},
	{-10, "Underpriced", RecommendBuy,
		"The asking price is below the estimated value, leaving a margin of safety for the buyer."},
	{-5, "Slightly Underpriced", RecommendBuy,
		"The asking price is modestly below the estimated value."},
	{5, "Fairly Priced", RecommendFair,
		"The asking price is in line with the estimated value."},
	{10, "Slightly Overpriced", RecommendFair,
		"The asking price is slightly above the estimated value; there is room to negotiate toward the mid valuation."},
	{20, "Overpriced", RecommendOverpriced,
		"The asking price is meaningfully above the estimated value. Negotiate down or request seller financing to bridge the gap."},
}

var mispricingCeiling = struct {
	label          string
	recommendation Recommendation
	analysis       string
}{
	"Significantly Overpriced", RecommendAvoid,
	"The asking price is far above what the earnings support. Walk away unless the seller can justify the premium.",
}

// AnalyzeMispricing compares an asking price to the mid valuation. It
// returns nil when no asking price was supplied; a zero price is analyzed.
func AnalyzeMispricing(askingPrice *float64, rng ValuationRange) *MispricingAnalysis {
	if askingPrice == nil {
		return nil
	}
	ask := *askingPrice
	diff := ask - rng.Mid

	var percent float64
	switch {
	case rng.Mid > 0:
		percent = diff / rng.Mid * 100
	case ask > 0:
		percent = 100
	}

	res := &MispricingAnalysis{
		AskingPrice:       ask,
		EstimatedValue:    rng.Mid,
		DifferenceAmount:  diff,
		DifferencePercent: percent,
		Label:             mispricingCeiling.label,
		Recommendation:    mispricingCeiling.recommendation,
	}
	analysis := mispricingCeiling.analysis
	for _, b := range mispricingBands {
		if percent <= b.percentAtMost {
			res.Label, res.Recommendation, analysis = b.label, b.recommendation, b.analysis
			break
		}
	}
	res.Analysis = fmt.Sprintf("Asking %s vs. estimated %s (%+.1f%%). %s",
		FormatCurrency(ask), FormatCurrency(rng.Mid), percent, analysis)
	return res
}
