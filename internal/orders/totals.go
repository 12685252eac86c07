package orders

import (
	"github.com/shopspring/decimal"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	"github.com/marisolvega/vendorhub-backend/pkg/money"
	"github.com/marisolvega/vendorhub-backend/pkg/types"
)

// TotalsInput carries the pieces of an order's financial snapshot before
// tax. AdjustmentTotal may be negative for discounts; no floor is applied
// until amount-due time.
type TotalsInput struct {
	Subtotal        float64
	AdjustmentTotal float64
	Taxes           types.TaxLines
}

// Totals is the computed financial snapshot stored on a placed order.
type Totals struct {
	Subtotal        float64
	AdjustmentTotal float64
	TaxableBase     float64
	TaxTotal        float64
	Total           float64
}

// ComputeTaxTotal accumulates the tax lines against the taxable base.
// Percent lines contribute base*rate/100, fixed lines contribute their
// rate value directly. Accumulation happens in decimal space and the sum
// is rounded once at the end, so sub-cent contributions from multiple
// lines are not masked per-line.
func ComputeTaxTotal(taxes types.TaxLines, taxableBase float64) float64 {
	base := decimal.NewFromFloat(money.Round(taxableBase))
	hundred := decimal.NewFromInt(100)

	sum := decimal.Zero
	for _, line := range taxes {
		rate := decimal.NewFromFloat(line.RatePercent)
		switch line.Type {
		case enums.TaxTypePercent:
			sum = sum.Add(base.Mul(rate).Div(hundred))
		case enums.TaxTypeFixed:
			sum = sum.Add(rate)
		}
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// ComputeOrderTotal derives the full totals snapshot. The taxable base is
// subtotal plus adjustments, and the order total is base plus tax.
func ComputeOrderTotal(input TotalsInput) Totals {
	subtotal := money.Round(input.Subtotal)
	adjustment := money.Round(input.AdjustmentTotal)
	base := money.Add(subtotal, adjustment)
	tax := ComputeTaxTotal(input.Taxes, base)
	return Totals{
		Subtotal:        subtotal,
		AdjustmentTotal: adjustment,
		TaxableBase:     base,
		TaxTotal:        tax,
		Total:           money.Add(base, tax),
	}
}

// ComputeAmountDue clamps total minus applied credit at zero. Overpayment
// never yields a negative due amount here; any surplus is handled by the
// caller as a fresh credit entry.
func ComputeAmountDue(total, creditApplied float64) float64 {
	due := money.Add(money.Round(total), -money.Round(creditApplied))
	if due < 0 {
		return 0
	}
	return due
}
