package enums

import "fmt"

// OrderUnit is the purchasing granularity of a cart line: a single piece
// or a full case of a product.
type OrderUnit string

const (
	OrderUnitPiece OrderUnit = "piece"
	OrderUnitCase  OrderUnit = "case"
)

var validOrderUnits = []OrderUnit{
	OrderUnitPiece,
	OrderUnitCase,
}

// String implements fmt.Stringer.
func (u OrderUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known OrderUnit.
func (u OrderUnit) IsValid() bool {
	for _, candidate := range validOrderUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseOrderUnit converts raw input into an OrderUnit.
func ParseOrderUnit(value string) (OrderUnit, error) {
	for _, candidate := range validOrderUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order unit %q", value)
}
