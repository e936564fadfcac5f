package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/zombor/chat-invoice/internal/extraction"
)

// Totals is the financial breakdown of an extraction result
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxRate    float64 `json:"tax_rate"`
	TaxPercent float64 `json:"tax_percent"`
	TaxAmount  float64 `json:"tax"`
	GrandTotal float64 `json:"total"`
}

// ComputeTotals calculates subtotal, tax and grand total for a set of line
// items. The subtotal accumulates unrounded and is rounded only at the
// point of output, so per-line rounding error does not compound.
func ComputeTotals(items []extraction.LineItem, taxRate float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	rate := decimal.NewFromFloat(taxRate)
	tax := subtotal.Mul(rate).Round(2)
	roundedSubtotal := subtotal.Round(2)
	grandTotal := roundedSubtotal.Add(tax).Round(2)

	return Totals{
		Subtotal:   toFloat(roundedSubtotal),
		TaxRate:    taxRate,
		TaxPercent: toFloat(rate.Mul(decimal.NewFromInt(100))),
		TaxAmount:  toFloat(tax),
		GrandTotal: toFloat(grandTotal),
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
