package cart

import (
	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	"github.com/marisolvega/vendorhub-backend/pkg/money"
)

// Line is one consolidated cart line. A cart holds at most one Line per
// (ProductID, Unit) pair; Qty is always a positive integer.
type Line struct {
	ProductID         uuid.UUID       `json:"product_id"`
	Name              string          `json:"name"`
	Unit              enums.OrderUnit `json:"order_unit"`
	Qty               int             `json:"qty"`
	UnitPrice         float64         `json:"unit_price"`
	UnitPriceSnapshot *float64        `json:"unit_price_snapshot,omitempty"`
	CasePriceSnapshot *float64        `json:"case_price_snapshot,omitempty"`
	UnitsPerCase      *int            `json:"units_per_case,omitempty"`
}

// ProductSnapshot is the slice of product state the consolidation logic
// needs: current prices and packaging, already fetched by the caller.
type ProductSnapshot struct {
	ID           uuid.UUID
	Name         string
	UnitPrice    float64
	CasePrice    *float64
	UnitsPerCase *int
}

// RawLine is the untrusted shape of a serialized cart line, as stored in
// draft payloads or sent by clients. NormalizeLines rebuilds trusted Lines
// from it.
type RawLine struct {
	ProductID         string  `json:"product_id"`
	Name              string  `json:"name"`
	Unit              string  `json:"order_unit"`
	Qty               int     `json:"qty"`
	UnitPrice         any     `json:"unit_price"`
	UnitPriceSnapshot any     `json:"unit_price_snapshot"`
	CasePriceSnapshot any     `json:"case_price_snapshot"`
	UnitsPerCase      *int    `json:"units_per_case"`
	Currency          *string `json:"currency,omitempty"`
}

// AddLine merges an add-to-cart operation into lines. An existing
// (product, unit) line has its quantity increased and its price snapshots
// refreshed to the product's current prices; otherwise a new line is
// appended. Non-positive deltas leave the cart untouched. The input slice
// is never mutated.
func AddLine(lines []Line, product ProductSnapshot, unit enums.OrderUnit, deltaQty int) []Line {
	if deltaQty <= 0 || product.ID == uuid.Nil || !unit.IsValid() {
		return cloneLines(lines)
	}

	price := priceFor(product, unit)
	out := cloneLines(lines)
	for i := range out {
		if out[i].ProductID == product.ID && out[i].Unit == unit {
			out[i].Qty += deltaQty
			out[i].Name = product.Name
			out[i].UnitPrice = price
			out[i].UnitPriceSnapshot = roundPtr(ptr(product.UnitPrice))
			out[i].CasePriceSnapshot = roundPtr(product.CasePrice)
			out[i].UnitsPerCase = product.UnitsPerCase
			return out
		}
	}

	return append(out, Line{
		ProductID:         product.ID,
		Name:              product.Name,
		Unit:              unit,
		Qty:               deltaQty,
		UnitPrice:         price,
		UnitPriceSnapshot: roundPtr(ptr(product.UnitPrice)),
		CasePriceSnapshot: roundPtr(product.CasePrice),
		UnitsPerCase:      product.UnitsPerCase,
	})
}

// DecrementLine reduces the quantity of the matching line, removing it
// entirely once the quantity reaches zero. Decrementing a line that does
// not exist is a no-op.
func DecrementLine(lines []Line, productID uuid.UUID, unit enums.OrderUnit, deltaQty int) []Line {
	if deltaQty <= 0 {
		return cloneLines(lines)
	}
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == productID && line.Unit == unit {
			if line.Qty-deltaQty <= 0 {
				continue
			}
			line.Qty -= deltaQty
		}
		out = append(out, line)
	}
	return out
}

// QuantityOf returns the consolidated quantity for a (product, unit) pair,
// zero when no line matches.
func QuantityOf(lines []Line, productID uuid.UUID, unit enums.OrderUnit) int {
	for _, line := range lines {
		if line.ProductID == productID && line.Unit == unit {
			return line.Qty
		}
	}
	return 0
}

// NormalizeLines rebuilds trusted lines from serialized input. Items with
// a malformed product id, non-positive quantity, or unrecognized unit are
// dropped; surviving monetary fields are coerced to rounded amounts. The
// drop is silent: loading a cart is best effort, one bad row must not
// discard the rest.
func NormalizeLines(raw []RawLine) []Line {
	out := make([]Line, 0, len(raw))
	for _, item := range raw {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil || productID == uuid.Nil {
			continue
		}
		if item.Qty <= 0 {
			continue
		}
		unit, err := enums.ParseOrderUnit(item.Unit)
		if err != nil {
			continue
		}
		line := Line{
			ProductID:    productID,
			Name:         item.Name,
			Unit:         unit,
			Qty:          item.Qty,
			UnitPrice:    money.Coerce(item.UnitPrice),
			UnitsPerCase: item.UnitsPerCase,
		}
		if item.UnitPriceSnapshot != nil {
			line.UnitPriceSnapshot = ptr(money.Coerce(item.UnitPriceSnapshot))
		}
		if item.CasePriceSnapshot != nil {
			line.CasePriceSnapshot = ptr(money.Coerce(item.CasePriceSnapshot))
		}
		out = append(out, line)
	}
	return out
}

// MergeLines folds incoming lines into existing ones, used when a draft
// or previous order is resumed into the active cart. Overlapping
// (product, unit) pairs sum their quantities and take the incoming price;
// invalid incoming lines are dropped without failing the merge.
func MergeLines(existing, incoming []Line) []Line {
	out := cloneLines(existing)
	for _, inc := range incoming {
		if inc.ProductID == uuid.Nil || inc.Qty <= 0 || !inc.Unit.IsValid() {
			continue
		}
		merged := false
		for i := range out {
			if out[i].ProductID == inc.ProductID && out[i].Unit == inc.Unit {
				out[i].Qty += inc.Qty
				out[i].UnitPrice = money.Round(inc.UnitPrice)
				out[i].UnitPriceSnapshot = roundPtr(inc.UnitPriceSnapshot)
				out[i].CasePriceSnapshot = roundPtr(inc.CasePriceSnapshot)
				if inc.UnitsPerCase != nil {
					out[i].UnitsPerCase = inc.UnitsPerCase
				}
				if inc.Name != "" {
					out[i].Name = inc.Name
				}
				merged = true
				break
			}
		}
		if !merged {
			inc.UnitPrice = money.Round(inc.UnitPrice)
			out = append(out, inc)
		}
	}
	return out
}

// Subtotal sums qty*unit_price across lines, rounding every step.
func Subtotal(lines []Line) float64 {
	total := 0.0
	for _, line := range lines {
		total = money.Add(total, money.Round(line.UnitPrice)*float64(line.Qty))
	}
	return money.Round(total)
}

func priceFor(product ProductSnapshot, unit enums.OrderUnit) float64 {
	if unit == enums.OrderUnitCase && product.CasePrice != nil {
		return money.Round(*product.CasePrice)
	}
	return money.Round(product.UnitPrice)
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return ptr(money.Round(*v))
}

func ptr[T any](v T) *T {
	return &v
}
