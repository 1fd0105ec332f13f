package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bigprints/docgen/internal/models"
)

// Totals are the derived money values of a quotation draft.
type Totals struct {
	Subtotal          float64
	DownpaymentAmount float64
	// Total equals Subtotal. The downpayment is informational and is
	// never subtracted from the displayed total.
	Total float64
}

// ComputeTotals derives the money values from the line items and the
// resolved downpayment percentage. Pure; recomputed on every render.
func ComputeTotals(items []models.LineItem, downpaymentPercent float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += float64(it.Qty) * it.UnitPrice
	}
	return Totals{
		Subtotal:          subtotal,
		DownpaymentAmount: subtotal * (downpaymentPercent / 100),
		Total:             subtotal,
	}
}

// DownpaymentPercent resolves the draft's downpayment selector to a
// percentage. A custom selector parses the free text as a float, any
// fixed selector parses as an integer; both fall back to 0.
func DownpaymentPercent(selector, customText string) float64 {
	if selector == models.DownpaymentCustom {
		v, err := strconv.ParseFloat(strings.TrimSpace(customText), 64)
		if err != nil {
			return 0
		}
		return v
	}
	v, err := strconv.Atoi(selector)
	if err != nil {
		return 0
	}
	return float64(v)
}

// FormatAmount renders a money value with two decimals and comma
// thousands grouping, for display only.
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
