package form

import (
	"testing"

	"github.com/bigprints/docgen/internal/models"
)

func TestComputeTotals(t *testing.T) {
	items := []models.LineItem{
		{Qty: 2, UnitPrice: 100},
		{Qty: 10, UnitPrice: 450},
		{Qty: 3, UnitPrice: 0.5},
	}

	tests := []struct {
		name            string
		percent         float64
		wantSubtotal    float64
		wantDownpayment float64
	}{
		{name: "fifty percent", percent: 50, wantSubtotal: 4701.5, wantDownpayment: 2350.75},
		{name: "zero percent", percent: 0, wantSubtotal: 4701.5, wantDownpayment: 0},
		{name: "hundred percent", percent: 100, wantSubtotal: 4701.5, wantDownpayment: 4701.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(items, tt.percent)
			if got.Subtotal != tt.wantSubtotal {
				t.Errorf("Subtotal = %v; want %v", got.Subtotal, tt.wantSubtotal)
			}
			if got.DownpaymentAmount != tt.wantDownpayment {
				t.Errorf("DownpaymentAmount = %v; want %v", got.DownpaymentAmount, tt.wantDownpayment)
			}
			// The downpayment is informational; the total never subtracts it.
			if got.Total != got.Subtotal {
				t.Errorf("Total = %v; want subtotal %v", got.Total, got.Subtotal)
			}
		})
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	got := ComputeTotals(nil, 50)
	if got.Subtotal != 0 || got.DownpaymentAmount != 0 || got.Total != 0 {
		t.Errorf("expected all zeroes, got %+v", got)
	}
}

func TestDownpaymentPercent(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		custom   string
		want     float64
	}{
		{name: "fixed selector", selector: "50", custom: "", want: 50},
		{name: "fixed selector ignores custom text", selector: "30", custom: "99", want: 30},
		{name: "custom number", selector: "custom", custom: "12.5", want: 12.5},
		{name: "custom with spaces", selector: "custom", custom: " 40 ", want: 40},
		{name: "custom unparsable", selector: "custom", custom: "forty", want: 0},
		{name: "custom empty", selector: "custom", custom: "", want: 0},
		{name: "unparsable selector", selector: "lots", custom: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DownpaymentPercent(tt.selector, tt.custom); got != tt.want {
				t.Errorf("DownpaymentPercent(%q, %q) = %v; want %v", tt.selector, tt.custom, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-9876.5, "-9,876.50"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
