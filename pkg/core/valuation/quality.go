package valuation

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Deal quality weights. They must sum to 1.0.
const (
	WeightPricingFairness      = 0.25
	WeightFinancialTrajectory  = 0.20
	WeightConcentrationRisk    = 0.15
	WeightOperationalRisk      = 0.15
	WeightDocumentationQuality = 0.10
	WeightValuationAlignment   = 0.15
)

// documentationFieldCount is the denominator of the documentation score.
const documentationFieldCount = 15

const (
	strengthThreshold = 80
	concernThreshold  = 50
)

// pricingBands maps asking/mid ratio ceilings to a pricing score.
var pricingBands = []struct {
	ratioAtMost float64
	score       float64
}{
	{0.80, 100},
	{0.90, 95},
	{0.95, 90},
	{1.00, 85},
	{1.05, 75},
	{1.10, 65},
	{1.15, 55},
	{1.25, 40},
	{1.50, 20},
}

// subScore is one named breakdown entry, in fixed breakdown order.
type subScore struct {
	label string
	score float64
}

func (b DealQualityBreakdown) ordered() []subScore {
	return []subScore{
		{"pricing fairness", b.PricingFairness},
		{"financial trajectory", b.FinancialTrajectory},
		{"customer concentration", b.ConcentrationRisk},
		{"operational risk", b.OperationalRisk},
		{"documentation quality", b.DocumentationQuality},
		{"valuation alignment", b.ValuationAlignment},
	}
}

// ScoreDealQuality rates the deal 0..100 from six weighted sub-scores.
// referenceYear resolves business age for the operational sub-score.
func ScoreDealQuality(in ValuationInput, rng ValuationRange, referenceYear int) DealQualityResult {
	b := DealQualityBreakdown{
		PricingFairness:      scorePricing(in.AskingPrice, rng),
		FinancialTrajectory:  scoreTrajectory(in),
		ConcentrationRisk:    scoreConcentration(in.CustomerConcentration),
		OperationalRisk:      scoreOperational(in, referenceYear),
		DocumentationQuality: scoreDocumentation(in),
		ValuationAlignment:   scoreAlignment(in.AskingPrice, rng),
	}
	return composeDealQuality(b)
}

func composeDealQuality(b DealQualityBreakdown) DealQualityResult {
	weighted := b.PricingFairness*WeightPricingFairness +
		b.FinancialTrajectory*WeightFinancialTrajectory +
		b.ConcentrationRisk*WeightConcentrationRisk +
		b.OperationalRisk*WeightOperationalRisk +
		b.DocumentationQuality*WeightDocumentationQuality +
		b.ValuationAlignment*WeightValuationAlignment

	score := int(clamp(math.Round(weighted), 0, 100))
	grade := GradeFor(score)
	return DealQualityResult{
		Score:     score,
		Breakdown: b,
		Grade:     grade,
		Summary:   summarizeDealQuality(grade, b),
	}
}

// GradeFor maps a 0..100 score to a letter grade.
func GradeFor(score int) Grade {
	switch {
	case score >= 85:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 55:
		return GradeC
	case score >= 40:
		return GradeD
	default:
		return GradeF
	}
}

func scorePricing(ask *float64, rng ValuationRange) float64 {
	if ask == nil || rng.Mid <= 0 {
		return 50
	}
	ratio := *ask / rng.Mid
	for _, b := range pricingBands {
		if ratio <= b.ratioAtMost {
			return b.score
		}
	}
	return math.Max(0, 20-(ratio-1.5)*40)
}

func scoreTrajectory(in ValuationInput) float64 {
	rate := valueOf(in.RevenueGrowthRate)
	var score float64
	switch in.RevenueGrowthTrend {
	case TrendIncreasing:
		switch {
		case rate >= 0.2:
			score = 90
		case rate >= 0.1:
			score = 80
		default:
			score = 70
		}
	case TrendStable:
		score = 60
	case TrendDeclining:
		switch {
		case rate <= -0.2:
			score = 15
		case rate <= -0.1:
			score = 30
		default:
			score = 40
		}
	default:
		score = 50
	}
	score += math.Min(10, math.Max(0, valueOf(in.RecurringRevenuePct)*10))
	return clamp(score, 0, 100)
}

func scoreConcentration(c *float64) float64 {
	if c == nil {
		return 60
	}
	switch {
	case *c > 0.5:
		return 15
	case *c > 0.3:
		return 40
	case *c > 0.2:
		return 60
	case *c > 0.1:
		return 80
	default:
		return 95
	}
}

// scoreOperational starts at 70 and moves with owner hours, lease term,
// staffing and age.
func scoreOperational(in ValuationInput, referenceYear int) float64 {
	score := 70.0
	if in.OwnerHoursPerWeek != nil {
		switch h := *in.OwnerHoursPerWeek; {
		case h > 60:
			score -= 25
		case h > 50:
			score -= 15
		case h < 20:
			score += 15
		case h < 40:
			score += 5
		}
	}
	if in.LeaseYearsRemaining != nil {
		switch y := *in.LeaseYearsRemaining; {
		case y < 1:
			score -= 20
		case y < 3:
			score -= 10
		case y >= 5:
			score += 10
		}
	}
	if in.Employees != nil {
		switch n := *in.Employees; {
		case n <= 1:
			score -= 15
		case n >= 10:
			score += 10
		}
	}
	if in.YearEstablished != nil {
		switch age := referenceYear - *in.YearEstablished; {
		case age < 2:
			score -= 15
		case age >= 10:
			score += 10
		}
	}
	return clamp(score, 0, 100)
}

func scoreDocumentation(in ValuationInput) float64 {
	full := []bool{
		in.Revenue != nil,
		in.SDE != nil,
		in.EBITDA != nil,
		in.CashFlow != nil,
		in.AskingPrice != nil,
		in.YearEstablished != nil,
		in.Employees != nil,
		in.CustomerConcentration != nil,
		in.RevenueGrowthTrend != "",
		in.OwnerHoursPerWeek != nil,
		in.RecurringRevenuePct != nil,
		in.LeaseYearsRemaining != nil,
		in.LeaseMonthlyRent != nil,
		len(in.Addbacks) > 0,
	}
	var count float64
	for _, ok := range full {
		if ok {
			count++
		}
	}
	if in.Inventory != nil {
		count += 0.5
	}
	if in.FFE != nil {
		count += 0.5
	}
	return clamp(count/documentationFieldCount*100, 0, 100)
}

func scoreAlignment(ask *float64, rng ValuationRange) float64 {
	if ask == nil || rng.High <= 0 {
		return 50
	}
	switch a := *ask; {
	case a <= rng.Low:
		return 95
	case a <= rng.Mid:
		return 85
	case a <= rng.High:
		return 65
	case a <= rng.High*1.25:
		return 35
	default:
		return 10
	}
}

var gradeHeadlines = map[Grade]string{
	GradeA: "Excellent deal quality.",
	GradeB: "Good deal quality.",
	GradeC: "Average deal quality.",
	GradeD: "Below-average deal quality.",
	GradeF: "Poor deal quality.",
}

func summarizeDealQuality(grade Grade, b DealQualityBreakdown) string {
	maxStrengths, maxConcerns := 1, 2
	if grade == GradeA || grade == GradeB {
		maxStrengths, maxConcerns = 2, 1
	}

	var strengths, concerns []subScore
	for _, s := range b.ordered() {
		switch {
		case s.score >= strengthThreshold:
			strengths = append(strengths, s)
		case s.score < concernThreshold:
			concerns = append(concerns, s)
		}
	}
	// Stable sorts keep breakdown order for ties.
	sort.SliceStable(strengths, func(i, j int) bool { return strengths[i].score > strengths[j].score })
	sort.SliceStable(concerns, func(i, j int) bool { return concerns[i].score < concerns[j].score })

	parts := []string{fmt.Sprintf("Grade %s: %s", grade, gradeHeadlines[grade])}
	if len(strengths) > 0 {
		parts = append(parts, "Strengths: "+joinLabels(strengths, maxStrengths)+".")
	}
	if len(concerns) > 0 {
		parts = append(parts, "Concerns: "+joinLabels(concerns, maxConcerns)+".")
	}
	return strings.Join(parts, " ")
}

func joinLabels(scores []subScore, limit int) string {
	if len(scores) > limit {
		scores = scores[:limit]
	}
	labels := make([]string, len(scores))
	for i, s := range scores {
		labels[i] = s.label
	}
	return strings.Join(labels, " and ")
}
