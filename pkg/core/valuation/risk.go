package valuation

import (
	"fmt"
	"math"
)

// MaxNetMultipleChange bounds the combined risk effect in either direction.
const MaxNetMultipleChange = 1.0

// Stable factor identifiers, in evaluation order.
const (
	FactorCustomerConcentration = "customer_concentration"
	FactorRevenueGrowth         = "revenue_growth"
	FactorOwnerDependency       = "owner_dependency"
	FactorRecurringRevenue      = "recurring_revenue"
	FactorLeaseRisk             = "lease_risk"
	FactorBusinessAge           = "business_age"
	FactorStaffingDepth         = "staffing_depth"
	FactorOccupancyCost         = "occupancy_cost"
)

// AssessRisk inspects the business-risk attributes of in and returns one
// adjustment per detected signal, in a fixed factor order, plus the clamped
// net change to apply to multiples. referenceYear is used to compute the
// company's age.
func AssessRisk(in ValuationInput, referenceYear int) RiskAssessment {
	checks := []func() (RiskAdjustment, bool){
		func() (RiskAdjustment, bool) { return assessConcentration(in) },
		func() (RiskAdjustment, bool) { return assessGrowth(in) },
		func() (RiskAdjustment, bool) { return assessOwnerHours(in) },
		func() (RiskAdjustment, bool) { return assessRecurringRevenue(in) },
		func() (RiskAdjustment, bool) { return assessLease(in) },
		func() (RiskAdjustment, bool) { return assessAge(in, referenceYear) },
		func() (RiskAdjustment, bool) { return assessStaffing(in) },
		func() (RiskAdjustment, bool) { return assessOccupancy(in) },
	}

	res := RiskAssessment{Adjustments: []RiskAdjustment{}}
	for _, check := range checks {
		adj, ok := check()
		if !ok {
			continue
		}
		res.Adjustments = append(res.Adjustments, adj)
		res.TotalAdjustment += adj.Impact
	}
	res.NetMultipleChange = clamp(res.TotalAdjustment, -MaxNetMultipleChange, MaxNetMultipleChange)
	return res
}

func assessConcentration(in ValuationInput) (RiskAdjustment, bool) {
	if in.CustomerConcentration == nil {
		return RiskAdjustment{}, false
	}
	c := *in.CustomerConcentration
	adj := RiskAdjustment{Factor: FactorCustomerConcentration}
	switch {
	case c > 0.5:
		adj.Severity, adj.Impact = SeverityCritical, -0.5
		adj.Description = fmt.Sprintf("Largest customer is %s of revenue; loss of that account would be severe", FormatPercent(c))
	case c > 0.3:
		adj.Severity, adj.Impact = SeverityNegative, -0.25
		adj.Description = fmt.Sprintf("High customer concentration: largest customer is %s of revenue", FormatPercent(c))
	case c > 0.2:
		adj.Severity, adj.Impact = SeverityNeutral, -0.1
		adj.Description = fmt.Sprintf("Moderate customer concentration (%s from largest customer)", FormatPercent(c))
	default:
		adj.Severity, adj.Impact = SeverityPositive, 0.1
		adj.Description = fmt.Sprintf("Diversified customer base (largest customer %s of revenue)", FormatPercent(c))
	}
	return adj, true
}

func assessGrowth(in ValuationInput) (RiskAdjustment, bool) {
	rate := valueOf(in.RevenueGrowthRate)
	adj := RiskAdjustment{Factor: FactorRevenueGrowth}
	switch in.RevenueGrowthTrend {
	case TrendIncreasing:
		adj.Severity = SeverityPositive
		switch {
		case rate > 0.2:
			adj.Impact = 0.3
			adj.Description = fmt.Sprintf("Strong revenue growth of %s per year", FormatPercent(rate))
		case rate > 0.1:
			adj.Impact = 0.2
			adj.Description = fmt.Sprintf("Solid revenue growth of %s per year", FormatPercent(rate))
		default:
			adj.Impact = 0.1
			adj.Description = "Revenue is growing modestly"
		}
	case TrendStable:
		adj.Severity, adj.Impact = SeverityNeutral, 0
		adj.Description = "Revenue is stable year over year"
	case TrendDeclining:
		switch {
		case rate < -0.2:
			adj.Severity, adj.Impact = SeverityCritical, -0.5
			adj.Description = fmt.Sprintf("Revenue declining sharply (%s per year)", FormatPercent(rate))
		case rate < -0.1:
			adj.Severity, adj.Impact = SeverityNegative, -0.3
			adj.Description = fmt.Sprintf("Revenue declining (%s per year)", FormatPercent(rate))
		default:
			adj.Severity, adj.Impact = SeverityNegative, -0.15
			adj.Description = "Revenue is trending down"
		}
	default:
		return RiskAdjustment{}, false
	}
	return adj, true
}

func assessOwnerHours(in ValuationInput) (RiskAdjustment, bool) {
	if in.OwnerHoursPerWeek == nil {
		return RiskAdjustment{}, false
	}
	h := *in.OwnerHoursPerWeek
	adj := RiskAdjustment{Factor: FactorOwnerDependency}
	switch {
	case h > 60:
		adj.Severity, adj.Impact = SeverityCritical, -0.4
		adj.Description = fmt.Sprintf("Owner works %.0f hours per week; the business depends heavily on the owner", h)
	case h > 50:
		adj.Severity, adj.Impact = SeverityNegative, -0.2
		adj.Description = fmt.Sprintf("Owner works %.0f hours per week; above-average owner dependency", h)
	case h >= 40:
		adj.Severity, adj.Impact = SeverityNeutral, 0
		adj.Description = fmt.Sprintf("Owner works a standard %.0f-hour week", h)
	case h >= 20:
		adj.Severity, adj.Impact = SeverityPositive, 0.1
		adj.Description = fmt.Sprintf("Owner works %.0f hours per week; operations are partly delegated", h)
	default:
		adj.Severity, adj.Impact = SeverityPositive, 0.2
		adj.Description = fmt.Sprintf("Semi-absentee ownership (%.0f hours per week)", h)
	}
	return adj, true
}

func assessRecurringRevenue(in ValuationInput) (RiskAdjustment, bool) {
	if in.RecurringRevenuePct == nil {
		return RiskAdjustment{}, false
	}
	p := *in.RecurringRevenuePct
	adj := RiskAdjustment{Factor: FactorRecurringRevenue}
	switch {
	case p >= 0.7:
		adj.Severity, adj.Impact = SeverityPositive, 0.3
		adj.Description = fmt.Sprintf("Highly recurring revenue (%s under contract or subscription)", FormatPercent(p))
	case p >= 0.4:
		adj.Severity, adj.Impact = SeverityPositive, 0.15
		adj.Description = fmt.Sprintf("Meaningful recurring revenue (%s)", FormatPercent(p))
	case p >= 0.2:
		adj.Severity, adj.Impact = SeverityNeutral, 0.05
		adj.Description = fmt.Sprintf("Some recurring revenue (%s)", FormatPercent(p))
	default:
		return RiskAdjustment{}, false
	}
	return adj, true
}

func assessLease(in ValuationInput) (RiskAdjustment, bool) {
	if in.LeaseYearsRemaining == nil {
		return RiskAdjustment{}, false
	}
	y := *in.LeaseYearsRemaining
	adj := RiskAdjustment{Factor: FactorLeaseRisk}
	switch {
	case y < 1:
		adj.Severity, adj.Impact = SeverityCritical, -0.4
		adj.Description = "Lease expires within a year; location is at risk"
	case y < 3:
		adj.Severity, adj.Impact = SeverityNegative, -0.2
		adj.Description = fmt.Sprintf("Short lease term remaining (%.1f years)", y)
	case y < 5:
		adj.Severity, adj.Impact = SeverityNeutral, 0
		adj.Description = fmt.Sprintf("Adequate lease term remaining (%.1f years)", y)
	default:
		adj.Severity, adj.Impact = SeverityPositive, 0.1
		adj.Description = fmt.Sprintf("Long lease term secured (%.1f years remaining)", y)
	}
	return adj, true
}

func assessAge(in ValuationInput, referenceYear int) (RiskAdjustment, bool) {
	if in.YearEstablished == nil {
		return RiskAdjustment{}, false
	}
	age := referenceYear - *in.YearEstablished
	adj := RiskAdjustment{Factor: FactorBusinessAge}
	switch {
	case age < 2:
		adj.Severity, adj.Impact = SeverityCritical, -0.4
		adj.Description = "Business has less than two years of operating history"
	case age < 5:
		adj.Severity, adj.Impact = SeverityNegative, -0.2
		adj.Description = fmt.Sprintf("Limited operating history (%d years)", age)
	case age < 10:
		adj.Severity, adj.Impact = SeverityNeutral, 0
		adj.Description = fmt.Sprintf("Established business (%d years)", age)
	case age < 20:
		adj.Severity, adj.Impact = SeverityPositive, 0.1
		adj.Description = fmt.Sprintf("Well-established business (%d years)", age)
	default:
		adj.Severity, adj.Impact = SeverityPositive, 0.2
		adj.Description = fmt.Sprintf("Long track record (%d years in operation)", age)
	}
	return adj, true
}

func assessStaffing(in ValuationInput) (RiskAdjustment, bool) {
	if in.Employees == nil {
		return RiskAdjustment{}, false
	}
	n := *in.Employees
	adj := RiskAdjustment{Factor: FactorStaffingDepth}
	switch {
	case n <= 1:
		adj.Severity, adj.Impact = SeverityNegative, -0.2
		adj.Description = "No staff beyond the owner"
	case n <= 4:
		adj.Severity, adj.Impact = SeverityNeutral, -0.05
		adj.Description = fmt.Sprintf("Thin staffing (%d employees)", n)
	case n <= 20:
		adj.Severity, adj.Impact = SeverityPositive, 0.1
		adj.Description = fmt.Sprintf("Established team of %d employees", n)
	default:
		adj.Severity, adj.Impact = SeverityPositive, 0.15
		adj.Description = fmt.Sprintf("Deep team of %d employees", n)
	}
	return adj, true
}

func assessOccupancy(in ValuationInput) (RiskAdjustment, bool) {
	revenue := valueOf(in.Revenue)
	if in.LeaseMonthlyRent == nil || revenue <= 0 {
		return RiskAdjustment{}, false
	}
	ratio := *in.LeaseMonthlyRent * 12 / revenue
	adj := RiskAdjustment{Factor: FactorOccupancyCost}
	switch {
	case ratio > 0.15:
		adj.Severity, adj.Impact = SeverityCritical, -0.3
		adj.Description = fmt.Sprintf("Rent consumes %s of revenue", FormatPercent(ratio))
	case ratio > 0.10:
		adj.Severity, adj.Impact = SeverityNegative, -0.15
		adj.Description = fmt.Sprintf("Elevated occupancy cost (%s of revenue)", FormatPercent(ratio))
	case ratio > 0.06:
		adj.Severity, adj.Impact = SeverityNeutral, 0
		adj.Description = fmt.Sprintf("Typical occupancy cost (%s of revenue)", FormatPercent(ratio))
	default:
		adj.Severity, adj.Impact = SeverityPositive, 0.05
		adj.Description = fmt.Sprintf("Low occupancy cost (%s of revenue)", FormatPercent(ratio))
	}
	return adj, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
