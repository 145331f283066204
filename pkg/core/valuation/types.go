// Package valuation implements the small-business valuation pipeline:
// normalization, risk adjustment, multiple selection, deal quality scoring,
// mispricing analysis and narrative generation.
//
// Every stage is a pure function of its inputs. The only shared state is the
// read-only industry catalog.
package valuation

import "business_valuation/pkg/core/industry"

// GrowthTrend is the seller-reported direction of revenue.
type GrowthTrend string

const (
	TrendIncreasing GrowthTrend = "increasing"
	TrendStable     GrowthTrend = "stable"
	TrendDeclining  GrowthTrend = "declining"
)

// Addback is a discretionary or non-recurring expense added back to earnings.
type Addback struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ValuationInput is the raw, often incomplete, description of a business.
// Only Industry is required; nil means "not provided". Fractions are 0..1.
// Range tags are for the caller's validation layer; the engine does not enforce them.
type ValuationInput struct {
	Industry string `json:"industry" validate:"required"`

	Revenue     *float64 `json:"revenue,omitempty" validate:"omitempty,gte=0"`
	SDE         *float64 `json:"sde,omitempty" validate:"omitempty,gte=0"`
	EBITDA      *float64 `json:"ebitda,omitempty" validate:"omitempty,gte=0"`
	CashFlow    *float64 `json:"cashFlow,omitempty" validate:"omitempty,gte=0"`
	AskingPrice *float64 `json:"askingPrice,omitempty" validate:"omitempty,gte=0"`
	Inventory   *float64 `json:"inventory,omitempty" validate:"omitempty,gte=0"`
	FFE         *float64 `json:"ffe,omitempty" validate:"omitempty,gte=0"`

	YearEstablished *int `json:"yearEstablished,omitempty" validate:"omitempty,gte=1800"`
	Employees       *int `json:"employees,omitempty" validate:"omitempty,gte=0"`

	CustomerConcentration *float64    `json:"customerConcentration,omitempty" validate:"omitempty,gte=0,lte=1"`
	RevenueGrowthTrend    GrowthTrend `json:"revenueGrowthTrend,omitempty" validate:"omitempty,oneof=increasing stable declining"`
	RevenueGrowthRate     *float64    `json:"revenueGrowthRate,omitempty"`

	OwnerHoursPerWeek *float64 `json:"ownerHoursPerWeek,omitempty" validate:"omitempty,gte=0,lte=168"`
	OwnerSalary       *float64 `json:"ownerSalary,omitempty" validate:"omitempty,gte=0"`

	RecurringRevenuePct *float64 `json:"recurringRevenuePct,omitempty" validate:"omitempty,gte=0,lte=1"`

	LeaseYearsRemaining *float64 `json:"leaseYearsRemaining,omitempty" validate:"omitempty,gte=0"`
	LeaseMonthlyRent    *float64 `json:"leaseMonthlyRent,omitempty" validate:"omitempty,gte=0"`

	Addbacks              []Addback `json:"addbacks,omitempty"`
	DiscretionaryExpenses *float64  `json:"discretionaryExpenses,omitempty" validate:"omitempty,gte=0"`
}

// Float returns a pointer to v, for building inputs.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building inputs.
func Int(v int) *int { return &v }

func valueOf(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// EarningsSource names the top-level normalization branch that fired.
type EarningsSource string

const (
	SourceSDE             EarningsSource = "sde"
	SourceEBITDA          EarningsSource = "ebitda"
	SourceCashFlow        EarningsSource = "cash_flow"
	SourceRevenueEstimate EarningsSource = "revenue_estimate"
	SourceNone            EarningsSource = "none"
)

// NormalizationAdjustments breaks down how normalized earnings were built.
type NormalizationAdjustments struct {
	Source                EarningsSource `json:"source"`
	OwnerSalary           float64        `json:"ownerSalary"`
	OwnerSalaryEstimated  bool           `json:"ownerSalaryEstimated"`
	AddbacksTotal         float64        `json:"addbacksTotal"`
	DiscretionaryExpenses float64        `json:"discretionaryExpenses"`
}

// NormalizationResult is the single normalized SDE and EBITDA for a business.
// NormalizedEBITDA may be negative.
type NormalizationResult struct {
	NormalizedSDE    float64                  `json:"normalizedSde"`
	NormalizedEBITDA float64                  `json:"normalizedEbitda"`
	Adjustments      NormalizationAdjustments `json:"adjustments"`
	Explanation      string                   `json:"explanation"`
}

// Severity of a risk adjustment.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityNeutral  Severity = "neutral"
	SeverityNegative Severity = "negative"
	SeverityCritical Severity = "critical"
)

// RiskAdjustment is one detected risk signal and its effect on the multiple.
type RiskAdjustment struct {
	Factor      string   `json:"factor"`
	Description string   `json:"description"`
	Impact      float64  `json:"impact"`
	Severity    Severity `json:"severity"`
}

// RiskAssessment is the ordered list of adjustments and their net effect.
type RiskAssessment struct {
	Adjustments       []RiskAdjustment `json:"adjustments"`
	TotalAdjustment   float64          `json:"totalAdjustment"`
	NetMultipleChange float64          `json:"netMultipleChange"`
}

// Method is the primary valuation approach.
type Method string

const (
	MethodSDE     Method = "sde"
	MethodEBITDA  Method = "ebitda"
	MethodRevenue Method = "revenue"
)

// MultiplesUsed are the risk-adjusted multiple bands for all three families.
type MultiplesUsed struct {
	SDE     industry.MultipleRange `json:"sde"`
	EBITDA  industry.MultipleRange `json:"ebitda"`
	Revenue industry.MultipleRange `json:"revenue"`
	Primary Method                 `json:"primary"`
}

// ValuationRange is a low/mid/high value in currency units.
type ValuationRange struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// Grade is the letter grade of a deal quality score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// DealQualityBreakdown holds the six 0..100 sub-scores.
type DealQualityBreakdown struct {
	PricingFairness      float64 `json:"pricingFairness"`
	FinancialTrajectory  float64 `json:"financialTrajectory"`
	ConcentrationRisk    float64 `json:"concentrationRisk"`
	OperationalRisk      float64 `json:"operationalRisk"`
	DocumentationQuality float64 `json:"documentationQuality"`
	ValuationAlignment   float64 `json:"valuationAlignment"`
}

// DealQualityResult is the composite score, its breakdown and a summary.
type DealQualityResult struct {
	Score     int                  `json:"score"`
	Breakdown DealQualityBreakdown `json:"breakdown"`
	Grade     Grade                `json:"grade"`
	Summary   string               `json:"summary"`
}

// Recommendation is the buy-side verdict on an asking price.
type Recommendation string

const (
	RecommendStrongBuy  Recommendation = "strong_buy"
	RecommendBuy        Recommendation = "buy"
	RecommendFair       Recommendation = "fair"
	RecommendOverpriced Recommendation = "overpriced"
	RecommendAvoid      Recommendation = "avoid"
)

// MispricingAnalysis compares an asking price to the mid valuation.
type MispricingAnalysis struct {
	AskingPrice       float64        `json:"askingPrice"`
	EstimatedValue    float64        `json:"estimatedValue"`
	DifferenceAmount  float64        `json:"differenceAmount"`
	DifferencePercent float64        `json:"differencePercent"`
	Label             string         `json:"label"`
	Recommendation    Recommendation `json:"recommendation"`
	Analysis          string         `json:"analysis"`
}

// ValuationOutput aggregates every stage's result. It has no identity.
type ValuationOutput struct {
	ValuationRange             ValuationRange        `json:"valuationRange"`
	MultiplesUsed              MultiplesUsed         `json:"multiplesUsed"`
	Normalization              NormalizationResult   `json:"normalization"`
	RiskAssessment             RiskAssessment        `json:"riskAssessment"`
	DealQualityScore           int                   `json:"dealQualityScore"`
	Grade                      Grade                 `json:"grade"`
	DealQuality                DealQualityResult     `json:"dealQuality"`
	Mispricing                 *MispricingAnalysis   `json:"mispricing,omitempty"`
	Methodology                string                `json:"methodology"`
	KeyStrengths               []string              `json:"keyStrengths"`
	RedFlags                   []string              `json:"redFlags"`
	NegotiationRecommendations []string              `json:"negotiationRecommendations"`
	IndustryData               industry.MultipleData `json:"industryData"`
}
