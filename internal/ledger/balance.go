package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/money"
)

// Balance folds an ordered slice of ledger entries into the vendor's
// current credit balance. Additions and reversals increase the balance,
// deductions and applications decrease it. Entry types this build does not
// recognize contribute zero: the ledger is append-only and newer writers
// may introduce kinds this reader has to skip, not choke on.
func Balance(entries []models.CreditEntry) float64 {
	total := decimal.Zero
	for _, entry := range entries {
		sign := entry.Type.Sign()
		if sign == 0 {
			continue
		}
		amount := decimal.NewFromFloat(money.Round(entry.Amount))
		if sign > 0 {
			total = total.Add(amount)
		} else {
			total = total.Sub(amount)
		}
	}
	out, _ := total.Round(2).Float64()
	return out
}
