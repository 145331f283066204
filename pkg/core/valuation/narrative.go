package valuation

import (
	"fmt"
	"strings"

	"business_valuation/pkg/core/industry"
)

// NarrativeInput carries the stage results the narrative is templated from.
type NarrativeInput struct {
	Input         ValuationInput
	Industry      industry.MultipleData
	Normalization NormalizationResult
	Risk          RiskAssessment
	Multiples     MultiplesUsed
	Range         ValuationRange
	DealQuality   DealQualityResult
	Mispricing    *MispricingAnalysis
}

var methodNames = map[Method]string{
	MethodSDE:     "SDE multiple",
	MethodEBITDA:  "EBITDA multiple",
	MethodRevenue: "revenue multiple",
}

// BuildMethodology explains, in order, how the range was produced.
func BuildMethodology(n NarrativeInput) string {
	method := n.Multiples.Primary
	var band industry.MultipleRange
	switch method {
	case MethodEBITDA:
		band = n.Multiples.EBITDA
	case MethodRevenue:
		band = n.Multiples.Revenue
	default:
		band = n.Multiples.SDE
	}

	parts := []string{
		fmt.Sprintf("Valued as %s using the %s method.", n.Industry.IndustryName, methodNames[method]),
		n.Normalization.Explanation,
	}
	if len(n.Risk.Adjustments) > 0 {
		s := fmt.Sprintf("%d risk factor(s) adjusted multiples by %s",
			len(n.Risk.Adjustments), FormatSignedMultiple(n.Risk.NetMultipleChange))
		if n.Risk.NetMultipleChange != n.Risk.TotalAdjustment {
			s += fmt.Sprintf(" (capped from %s)", FormatSignedMultiple(n.Risk.TotalAdjustment))
		}
		parts = append(parts, s+".")
	} else {
		parts = append(parts, "No risk adjustments applied to industry multiples.")
	}
	parts = append(parts, fmt.Sprintf("Applied %s bands of %s / %s / %s.",
		methodNames[method], FormatMultiple(band.Low), FormatMultiple(band.Mid), FormatMultiple(band.High)))
	if assets := valueOf(n.Input.Inventory) + valueOf(n.Input.FFE); assets > 0 {
		parts = append(parts, fmt.Sprintf("Added %s of tangible assets (inventory and FF&E) to each value.", FormatCurrency(assets)))
	}
	return strings.Join(parts, " ")
}

// BuildStrengths lists positive risk factors, then strong deal quality
// sub-scores, then favorable pricing.
func BuildStrengths(n NarrativeInput) []string {
	out := []string{}
	for _, a := range n.Risk.Adjustments {
		if a.Severity == SeverityPositive {
			out = append(out, a.Description)
		}
	}
	for _, s := range n.DealQuality.Breakdown.ordered() {
		if s.score >= strengthThreshold {
			out = append(out, fmt.Sprintf("Strong %s score (%.0f/100)", s.label, s.score))
		}
	}
	if m := n.Mispricing; m != nil && (m.Recommendation == RecommendStrongBuy || m.Recommendation == RecommendBuy) {
		out = append(out, fmt.Sprintf("Asking price is %.1f%% below estimated value", -m.DifferencePercent))
	}
	return out
}

// BuildRedFlags lists critical and negative risk factors, then weak deal
// quality sub-scores, then unfavorable pricing.
func BuildRedFlags(n NarrativeInput) []string {
	out := []string{}
	for _, a := range n.Risk.Adjustments {
		switch a.Severity {
		case SeverityCritical:
			out = append(out, "Critical: "+a.Description)
		case SeverityNegative:
			out = append(out, a.Description)
		}
	}
	for _, s := range n.DealQuality.Breakdown.ordered() {
		if s.score < concernThreshold {
			out = append(out, fmt.Sprintf("Weak %s score (%.0f/100)", s.label, s.score))
		}
	}
	if n.Normalization.NormalizedEBITDA < 0 {
		out = append(out, fmt.Sprintf("Normalized EBITDA is negative (%s) after owner salary", FormatCurrency(n.Normalization.NormalizedEBITDA)))
	}
	if m := n.Mispricing; m != nil && (m.Recommendation == RecommendOverpriced || m.Recommendation == RecommendAvoid) {
		out = append(out, fmt.Sprintf("Asking price is %.1f%% above estimated value", m.DifferencePercent))
	}
	return out
}

// BuildNegotiationTips suggests negotiation points driven by the risk
// factors found and the asking price position.
func BuildNegotiationTips(n NarrativeInput) []string {
	out := []string{}
	for _, a := range n.Risk.Adjustments {
		if a.Severity != SeverityCritical && a.Severity != SeverityNegative {
			continue
		}
		switch a.Factor {
		case FactorCustomerConcentration:
			out = append(out, "Tie part of the price to customer retention through an earnout or seller note.")
		case FactorRevenueGrowth:
			out = append(out, "Request monthly revenue for the last 24 months and price off trailing performance, not the seller's projections.")
		case FactorOwnerDependency:
			out = append(out, "Negotiate an extended transition period with the seller to transfer relationships and know-how.")
		case FactorLeaseRisk:
			out = append(out, "Make the deal contingent on a new or assignable lease with at least five years of term.")
		case FactorBusinessAge:
			out = append(out, "Limited history: ask for seller financing to share the risk of unproven earnings.")
		case FactorStaffingDepth:
			out = append(out, "Budget for a key hire and include employment agreements with existing staff.")
		case FactorOccupancyCost:
			out = append(out, "Approach the landlord about rent terms before closing; occupancy cost is high for this revenue.")
		}
	}

	if len(n.Input.Addbacks) > 0 || valueOf(n.Input.DiscretionaryExpenses) > 0 {
		out = append(out, "Verify every add-back against bank statements and tax returns before accepting the normalized earnings.")
	}

	if m := n.Mispricing; m != nil {
		switch m.Recommendation {
		case RecommendStrongBuy, RecommendBuy:
			out = append(out, "Pricing is favorable; move quickly but keep standard diligence contingencies.")
		case RecommendFair:
			if m.DifferencePercent > 0 {
				out = append(out, fmt.Sprintf("Open near the mid valuation of %s.", FormatCurrency(n.Range.Mid)))
			} else {
				out = append(out, "Price is fair; focus negotiation on terms such as transition support and working capital.")
			}
		case RecommendOverpriced, RecommendAvoid:
			out = append(out, fmt.Sprintf("Counter between %s and %s, supported by the risk factors identified.",
				FormatCurrency(n.Range.Low), FormatCurrency(n.Range.Mid)))
		}
	} else {
		out = append(out, fmt.Sprintf("No asking price provided; a reasonable offer range is %s to %s.",
			FormatCurrency(n.Range.Low), FormatCurrency(n.Range.Mid)))
	}
	return out
}
