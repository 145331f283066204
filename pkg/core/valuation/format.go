package valuation

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders a whole-dollar amount, e.g. "$1,250,000" or "-$50,000".
// Amounts beyond the int64 range are still rendered in full.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("$%.0f", v)
	}
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	rounded := math.Round(v)
	if rounded >= math.MaxInt64 {
		return sign + "$" + humanize.Commaf(rounded)
	}
	if rounded == 0 {
		sign = ""
	}
	return sign + "$" + humanize.Comma(int64(rounded))
}

// FormatMultiple renders a multiple, e.g. "3.00x".
func FormatMultiple(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

// FormatSignedMultiple renders a multiple change with its sign, e.g. "+0.25x".
func FormatSignedMultiple(v float64) string {
	if v == 0 {
		return "0.00x"
	}
	return fmt.Sprintf("%+.2fx", v)
}

// FormatPercent renders a fraction as a whole percentage, e.g. 0.35 -> "35%".
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}
