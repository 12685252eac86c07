package ledger

import (
	"testing"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

func entry(t enums.CreditEntryType, amount float64) models.CreditEntry {
	return models.CreditEntry{Type: t, Amount: amount}
}

func TestBalanceFold(t *testing.T) {
	entries := []models.CreditEntry{
		entry(enums.CreditEntryTypeAdd, 120),
		entry(enums.CreditEntryTypeApply, 35),
		entry(enums.CreditEntryTypeDeduct, 10),
		entry(enums.CreditEntryTypeReversal, 5.5),
	}
	if got := Balance(entries); got != 80.5 {
		t.Fatalf("Balance = %v, want 80.5", got)
	}
}

func TestBalanceSkipsUnknownTypes(t *testing.T) {
	entries := []models.CreditEntry{
		entry(enums.CreditEntryTypeAdd, 50),
		entry(enums.CreditEntryType("loyalty_bonus"), 1000),
		entry(enums.CreditEntryTypeApply, 20),
	}
	if got := Balance(entries); got != 30 {
		t.Fatalf("Balance = %v, want 30 (unknown type must contribute zero)", got)
	}
}

func TestBalanceEmptyLedger(t *testing.T) {
	if got := Balance(nil); got != 0 {
		t.Fatalf("Balance(nil) = %v, want 0", got)
	}
}

func TestBalanceStableOverManyEntries(t *testing.T) {
	var entries []models.CreditEntry
	for i := 0; i < 300; i++ {
		entries = append(entries, entry(enums.CreditEntryTypeAdd, 0.1))
	}
	for i := 0; i < 100; i++ {
		entries = append(entries, entry(enums.CreditEntryTypeApply, 0.1))
	}
	if got := Balance(entries); got != 20 {
		t.Fatalf("Balance = %v, want 20", got)
	}
}

func TestBalanceCanGoNegative(t *testing.T) {
	entries := []models.CreditEntry{
		entry(enums.CreditEntryTypeAdd, 10),
		entry(enums.CreditEntryTypeDeduct, 25.75),
	}
	if got := Balance(entries); got != -15.75 {
		t.Fatalf("Balance = %v, want -15.75", got)
	}
}
