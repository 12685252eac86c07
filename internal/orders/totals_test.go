package orders

import (
	"testing"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	"github.com/marisolvega/vendorhub-backend/pkg/types"
)

func TestComputeOrderTotalMixedTaxes(t *testing.T) {
	totals := ComputeOrderTotal(TotalsInput{
		Subtotal:        100,
		AdjustmentTotal: 20,
		Taxes: types.TaxLines{
			{Type: enums.TaxTypePercent, RatePercent: 10},
			{Type: enums.TaxTypeFixed, RatePercent: 3.75},
		},
	})
	if totals.TaxableBase != 120 {
		t.Fatalf("taxable base = %v, want 120", totals.TaxableBase)
	}
	if totals.TaxTotal != 15.75 {
		t.Fatalf("tax total = %v, want 15.75", totals.TaxTotal)
	}
	if totals.Total != 135.75 {
		t.Fatalf("total = %v, want 135.75", totals.Total)
	}
}

func TestComputeOrderTotalNegativeAdjustment(t *testing.T) {
	totals := ComputeOrderTotal(TotalsInput{
		Subtotal:        50,
		AdjustmentTotal: -60,
		Taxes:           nil,
	})
	// discounts can push the pre-due total negative, the clamp lives in
	// ComputeAmountDue only
	if totals.Total != -10 {
		t.Fatalf("total = %v, want -10", totals.Total)
	}
}

func TestComputeTaxTotalRoundsOnceAtEnd(t *testing.T) {
	taxes := types.TaxLines{
		{Type: enums.TaxTypePercent, RatePercent: 0.5},
		{Type: enums.TaxTypePercent, RatePercent: 0.5},
	}
	// each line alone is 0.005 on a base of 1; per-line rounding would
	// give 0.01+0.01=0.02, end-rounding gives round(0.01)=0.01
	if got := ComputeTaxTotal(taxes, 1); got != 0.01 {
		t.Fatalf("tax total = %v, want 0.01", got)
	}
}

func TestComputeTaxTotalIgnoresUnknownType(t *testing.T) {
	taxes := types.TaxLines{
		{Type: enums.TaxType("vat"), RatePercent: 100},
		{Type: enums.TaxTypeFixed, RatePercent: 2},
	}
	if got := ComputeTaxTotal(taxes, 50); got != 2 {
		t.Fatalf("tax total = %v, want 2", got)
	}
}

func TestComputeTaxTotalEmpty(t *testing.T) {
	if got := ComputeTaxTotal(nil, 99.99); got != 0 {
		t.Fatalf("tax total = %v, want 0", got)
	}
}

func TestComputeAmountDue(t *testing.T) {
	tests := []struct {
		total  float64
		credit float64
		want   float64
	}{
		{50, 20, 30},
		{50, 80, 0},
		{50, 50, 0},
		{0, 0, 0},
		{10.005, 0, 10.01},
	}
	for _, tc := range tests {
		if got := ComputeAmountDue(tc.total, tc.credit); got != tc.want {
			t.Fatalf("ComputeAmountDue(%v, %v) = %v, want %v", tc.total, tc.credit, got, tc.want)
		}
	}
}
