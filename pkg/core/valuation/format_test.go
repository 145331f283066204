package valuation

import (
	"strings"
	"testing"
)

func TestFormatting(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatCurrency(1_250_000), "$1,250,000"},
		{FormatCurrency(-50_000), "-$50,000"},
		{FormatCurrency(999.6), "$1,000"},
		{FormatCurrency(0), "$0"},
		{FormatMultiple(3), "3.00x"},
		{FormatSignedMultiple(0.25), "+0.25x"},
		{FormatSignedMultiple(-1), "-1.00x"},
		{FormatSignedMultiple(0), "0.00x"},
		{FormatPercent(0.35), "35%"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestFormatCurrencyBeyondInt64(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1e19, "$10,000,000,000,000,000,000"},
		{-1e19, "-$10,000,000,000,000,000,000"},
		{-0.4, "$0"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	huge := FormatCurrency(1e300)
	if !strings.HasPrefix(huge, "$1,000,000,000") || strings.Contains(huge, "-") {
		t.Errorf("FormatCurrency(1e300) = %.40s...", huge)
	}
}
