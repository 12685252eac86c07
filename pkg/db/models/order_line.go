package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// OrderLine is the immutable snapshot of a cart line at placement time.
type OrderLine struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Name         string          `gorm:"column:name;not null"`
	Unit         enums.OrderUnit `gorm:"column:order_unit;type:order_unit;not null"`
	Qty          int             `gorm:"column:qty;not null"`
	UnitPrice    float64         `gorm:"column:unit_price;type:numeric(12,2);not null"`
	LineSubtotal float64         `gorm:"column:line_subtotal;type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
