package cart

import (
	"testing"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

func product(name string, unitPrice float64) ProductSnapshot {
	return ProductSnapshot{ID: uuid.New(), Name: name, UnitPrice: unitPrice}
}

func TestAddLineConsolidatesByProductAndUnit(t *testing.T) {
	p := product("Cold Brew Concentrate", 4.5)

	var lines []Line
	for _, delta := range []int{1, 2, 4} {
		lines = AddLine(lines, p, enums.OrderUnitPiece, delta)
	}

	if len(lines) != 1 {
		t.Fatalf("expected one consolidated line, got %d", len(lines))
	}
	if lines[0].Qty != 7 {
		t.Fatalf("qty = %d, want sum of deltas 7", lines[0].Qty)
	}
}

func TestAddLineSeparatesUnits(t *testing.T) {
	casePrice := 48.0
	p := product("Sparkling Water", 2.25)
	p.CasePrice = &casePrice

	lines := AddLine(nil, p, enums.OrderUnitPiece, 3)
	lines = AddLine(lines, p, enums.OrderUnitCase, 1)

	if len(lines) != 2 {
		t.Fatalf("piece and case should be distinct lines, got %d", len(lines))
	}
	if QuantityOf(lines, p.ID, enums.OrderUnitPiece) != 3 {
		t.Fatal("piece qty wrong")
	}
	if QuantityOf(lines, p.ID, enums.OrderUnitCase) != 1 {
		t.Fatal("case qty wrong")
	}
	if lines[1].UnitPrice != 48 {
		t.Fatalf("case line should use case price, got %v", lines[1].UnitPrice)
	}
}

func TestAddLineRefreshesSnapshots(t *testing.T) {
	p := product("House Blend", 10)
	lines := AddLine(nil, p, enums.OrderUnitPiece, 1)

	p.UnitPrice = 12.5
	lines = AddLine(lines, p, enums.OrderUnitPiece, 1)

	if lines[0].UnitPrice != 12.5 {
		t.Fatalf("price not refreshed: %v", lines[0].UnitPrice)
	}
	if lines[0].UnitPriceSnapshot == nil || *lines[0].UnitPriceSnapshot != 12.5 {
		t.Fatalf("snapshot not refreshed: %v", lines[0].UnitPriceSnapshot)
	}
}

func TestAddLineRejectsNonPositiveDelta(t *testing.T) {
	p := product("Espresso Beans", 15)
	lines := AddLine(nil, p, enums.OrderUnitPiece, 2)

	for _, delta := range []int{0, -1} {
		got := AddLine(lines, p, enums.OrderUnitPiece, delta)
		if len(got) != 1 || got[0].Qty != 2 {
			t.Fatalf("delta %d must not corrupt the cart: %+v", delta, got)
		}
	}
}

func TestDecrementToZeroRemovesLine(t *testing.T) {
	p := product("Oat Milk", 3.75)
	lines := AddLine(nil, p, enums.OrderUnitPiece, 1)
	lines = DecrementLine(lines, p.ID, enums.OrderUnitPiece, 1)

	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
	if QuantityOf(lines, p.ID, enums.OrderUnitPiece) != 0 {
		t.Fatal("quantity of removed line should be zero")
	}
}

func TestDecrementMissingLineIsNoop(t *testing.T) {
	p := product("Chai Mix", 8)
	lines := AddLine(nil, p, enums.OrderUnitPiece, 2)

	got := DecrementLine(lines, uuid.New(), enums.OrderUnitPiece, 1)
	if len(got) != 1 || got[0].Qty != 2 {
		t.Fatalf("decrement of absent line must not change cart: %+v", got)
	}
}

func TestDecrementBelowZeroRemoves(t *testing.T) {
	p := product("Filters", 6)
	lines := AddLine(nil, p, enums.OrderUnitPiece, 2)
	lines = DecrementLine(lines, p.ID, enums.OrderUnitPiece, 5)
	if len(lines) != 0 {
		t.Fatalf("over-decrement should remove the line, got %+v", lines)
	}
}

func TestNormalizeLinesDropsInvalidItems(t *testing.T) {
	goodID := uuid.NewString()
	raw := []RawLine{
		{ProductID: goodID, Name: "Good", Unit: "piece", Qty: 2, UnitPrice: 4.005},
		{ProductID: "not-a-uuid", Name: "Bad ID", Unit: "piece", Qty: 1, UnitPrice: 1},
		{ProductID: uuid.NewString(), Name: "Zero Qty", Unit: "piece", Qty: 0, UnitPrice: 1},
		{ProductID: uuid.NewString(), Name: "Bad Unit", Unit: "pallet", Qty: 1, UnitPrice: 1},
	}

	lines := NormalizeLines(raw)
	if len(lines) != 1 {
		t.Fatalf("expected only the valid item to survive, got %d", len(lines))
	}
	if lines[0].UnitPrice != 4.01 {
		t.Fatalf("unit price should be coerced and rounded, got %v", lines[0].UnitPrice)
	}
}

func TestNormalizeLinesCoercesStringMoney(t *testing.T) {
	raw := []RawLine{{
		ProductID:         uuid.NewString(),
		Name:              "Priced As String",
		Unit:              "case",
		Qty:               1,
		UnitPrice:         "19.99",
		CasePriceSnapshot: "19.99",
	}}
	lines := NormalizeLines(raw)
	if len(lines) != 1 || lines[0].UnitPrice != 19.99 {
		t.Fatalf("string money should coerce: %+v", lines)
	}
	if lines[0].CasePriceSnapshot == nil || *lines[0].CasePriceSnapshot != 19.99 {
		t.Fatalf("snapshot should coerce: %+v", lines[0].CasePriceSnapshot)
	}
}

func TestMergeLinesSumsQtyAndTakesIncomingPrice(t *testing.T) {
	productID := uuid.New()
	existing := []Line{{ProductID: productID, Unit: enums.OrderUnitPiece, Qty: 2, UnitPrice: 5}}
	incoming := []Line{{ProductID: productID, Unit: enums.OrderUnitPiece, Qty: 3, UnitPrice: 6}}

	merged := MergeLines(existing, incoming)
	if len(merged) != 1 {
		t.Fatalf("expected single merged line, got %d", len(merged))
	}
	if merged[0].Qty != 5 || merged[0].UnitPrice != 6 {
		t.Fatalf("merge result = qty %d price %v, want qty 5 price 6", merged[0].Qty, merged[0].UnitPrice)
	}
}

func TestMergeLinesDropsInvalidWithoutFailingBatch(t *testing.T) {
	existing := []Line{{ProductID: uuid.New(), Unit: enums.OrderUnitPiece, Qty: 1, UnitPrice: 2}}
	valid := Line{ProductID: uuid.New(), Unit: enums.OrderUnitCase, Qty: 2, UnitPrice: 30}
	incoming := []Line{
		{ProductID: uuid.Nil, Unit: enums.OrderUnitPiece, Qty: 1, UnitPrice: 1},
		{ProductID: uuid.New(), Unit: enums.OrderUnitPiece, Qty: -4, UnitPrice: 1},
		valid,
	}

	merged := MergeLines(existing, incoming)
	if len(merged) != 2 {
		t.Fatalf("valid lines must survive a batch with invalid ones, got %+v", merged)
	}
	if QuantityOf(merged, valid.ProductID, enums.OrderUnitCase) != 2 {
		t.Fatal("valid incoming line missing after merge")
	}
}

func TestMergeLinesPreservesBothSides(t *testing.T) {
	a := Line{ProductID: uuid.New(), Unit: enums.OrderUnitPiece, Qty: 1, UnitPrice: 2}
	b := Line{ProductID: uuid.New(), Unit: enums.OrderUnitPiece, Qty: 4, UnitPrice: 9}
	merged := MergeLines([]Line{a}, []Line{b})
	if len(merged) != 2 {
		t.Fatalf("non-overlapping lines from both sides must be kept: %+v", merged)
	}
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{ProductID: uuid.New(), Unit: enums.OrderUnitPiece, Qty: 3, UnitPrice: 4.5},
		{ProductID: uuid.New(), Unit: enums.OrderUnitCase, Qty: 2, UnitPrice: 48},
	}
	if got := Subtotal(lines); got != 109.5 {
		t.Fatalf("Subtotal = %v, want 109.5", got)
	}
}
