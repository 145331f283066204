package valuation

import (
	"fmt"
	"strings"
)

// SDE as a share of revenue when no earnings figure is available.
// Rough heuristic, kept fixed.
const RevenueSDEMargin = 0.15

// ownerSalaryBands maps revenue ceilings to an assumed market owner salary.
// Revenue at or above the last ceiling uses topOwnerSalary.
var ownerSalaryBands = []struct {
	revenueBelow float64
	salary       float64
}{
	{250_000, 50_000},
	{500_000, 75_000},
	{1_000_000, 100_000},
	{2_000_000, 125_000},
	{5_000_000, 150_000},
}

const topOwnerSalary = 200_000

// EstimateOwnerSalary returns the assumed market salary for an owner-operator
// of a business with the given revenue.
func EstimateOwnerSalary(revenue float64) float64 {
	for _, b := range ownerSalaryBands {
		if revenue < b.revenueBelow {
			return b.salary
		}
	}
	return topOwnerSalary
}

// Normalize converts whatever earnings figures are available into a single
// normalized SDE and EBITDA.
//
// Branch priority: SDE, EBITDA, cash flow, revenue estimate, nothing.
// Add-backs and discretionary expenses apply only to the first three.
// Explanation sentences are appended in the order the steps fire.
func Normalize(in ValuationInput) NormalizationResult {
	var (
		res       NormalizationResult
		sentences []string
	)

	revenue := valueOf(in.Revenue)
	salary := EstimateOwnerSalary(revenue)
	salaryEstimated := true
	if in.OwnerSalary != nil {
		salary = *in.OwnerSalary
		salaryEstimated = false
	}
	res.Adjustments.OwnerSalary = salary
	res.Adjustments.OwnerSalaryEstimated = salaryEstimated

	salarySentence := func() string {
		if salaryEstimated {
			return fmt.Sprintf("Owner salary estimated at %s based on revenue size.", FormatCurrency(salary))
		}
		return fmt.Sprintf("Owner salary of %s as reported.", FormatCurrency(salary))
	}

	switch {
	case valueOf(in.SDE) > 0:
		res.Adjustments.Source = SourceSDE
		res.NormalizedSDE = *in.SDE
		res.NormalizedEBITDA = res.NormalizedSDE - salary
		sentences = append(sentences,
			fmt.Sprintf("Using reported SDE of %s.", FormatCurrency(res.NormalizedSDE)),
			salarySentence(),
			fmt.Sprintf("EBITDA derived as SDE less owner salary (%s).", FormatCurrency(res.NormalizedEBITDA)),
		)

	case valueOf(in.EBITDA) > 0:
		res.Adjustments.Source = SourceEBITDA
		res.NormalizedEBITDA = *in.EBITDA
		res.NormalizedSDE = res.NormalizedEBITDA + salary
		sentences = append(sentences,
			fmt.Sprintf("Using reported EBITDA of %s.", FormatCurrency(res.NormalizedEBITDA)),
			salarySentence(),
			fmt.Sprintf("SDE derived as EBITDA plus owner salary (%s).", FormatCurrency(res.NormalizedSDE)),
		)

	case valueOf(in.CashFlow) > 0:
		res.Adjustments.Source = SourceCashFlow
		res.NormalizedSDE = *in.CashFlow
		res.NormalizedEBITDA = res.NormalizedSDE - salary
		sentences = append(sentences,
			fmt.Sprintf("Using reported cash flow of %s as an SDE proxy.", FormatCurrency(res.NormalizedSDE)),
			salarySentence(),
			fmt.Sprintf("EBITDA derived as SDE less owner salary (%s).", FormatCurrency(res.NormalizedEBITDA)),
		)

	case revenue > 0:
		res.Adjustments.Source = SourceRevenueEstimate
		res.NormalizedSDE = revenue * RevenueSDEMargin
		res.NormalizedEBITDA = res.NormalizedSDE - salary
		sentences = append(sentences,
			fmt.Sprintf("No earnings reported; SDE estimated at %.0f%% of revenue (%s).",
				RevenueSDEMargin*100, FormatCurrency(res.NormalizedSDE)),
			salarySentence(),
			fmt.Sprintf("EBITDA derived as SDE less owner salary (%s).", FormatCurrency(res.NormalizedEBITDA)),
		)

	default:
		res.Adjustments.Source = SourceNone
		res.NormalizedSDE = 0
		res.NormalizedEBITDA = -salary
		sentences = append(sentences,
			"No revenue or earnings data provided; SDE defaults to zero.",
			salarySentence(),
		)
	}

	switch res.Adjustments.Source {
	case SourceSDE, SourceEBITDA, SourceCashFlow:
		if len(in.Addbacks) > 0 {
			var total float64
			descs := make([]string, 0, len(in.Addbacks))
			for _, a := range in.Addbacks {
				total += a.Amount
				if d := strings.TrimSpace(a.Description); d != "" {
					descs = append(descs, d)
				}
			}
			res.NormalizedSDE += total
			res.NormalizedEBITDA += total
			res.Adjustments.AddbacksTotal = total

			s := fmt.Sprintf("Added back %s across %d item(s)", FormatCurrency(total), len(in.Addbacks))
			if len(descs) > 0 {
				s += " (" + strings.Join(descs, ", ") + ")"
			}
			sentences = append(sentences, s+".")
		}
		if in.DiscretionaryExpenses != nil && *in.DiscretionaryExpenses != 0 {
			d := *in.DiscretionaryExpenses
			res.NormalizedSDE += d
			res.NormalizedEBITDA += d
			res.Adjustments.DiscretionaryExpenses = d
			sentences = append(sentences, fmt.Sprintf("Added back %s of discretionary expenses.", FormatCurrency(d)))
		}
	}

	res.Explanation = strings.Join(sentences, " ")
	return res
}
