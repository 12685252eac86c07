package types

import "github.com/marisolvega/vendorhub-backend/pkg/enums"

// TaxLine is one tax applied to an order. Percent lines apply RatePercent
// against the taxable base; fixed lines contribute RatePercent directly as
// an amount regardless of base.
type TaxLine struct {
	Type        enums.TaxType `json:"type"`
	RatePercent float64       `json:"rate_percent"`
}

// TaxLines is stored on orders as a jsonb snapshot of the taxes in force
// when the order was placed.
type TaxLines []TaxLine
