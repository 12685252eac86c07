package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// CartLine is one consolidated line of a cart. The (cart, product, unit)
// triple is unique: adds against an existing pair increment quantity
// instead of appending.
type CartLine struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID            uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:cart_lines_product_unit_key"`
	ProductID         uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:cart_lines_product_unit_key"`
	Name              string          `gorm:"column:name;not null"`
	Unit              enums.OrderUnit `gorm:"column:order_unit;type:order_unit;not null;uniqueIndex:cart_lines_product_unit_key"`
	Qty               int             `gorm:"column:qty;not null"`
	UnitPrice         float64         `gorm:"column:unit_price;type:numeric(12,2);not null"`
	UnitPriceSnapshot *float64        `gorm:"column:unit_price_snapshot;type:numeric(12,2)"`
	CasePriceSnapshot *float64        `gorm:"column:case_price_snapshot;type:numeric(12,2)"`
	UnitsPerCase      *int            `gorm:"column:units_per_case"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
