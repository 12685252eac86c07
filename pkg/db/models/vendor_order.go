package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	"github.com/marisolvega/vendorhub-backend/pkg/types"
)

// VendorOrder is a placed order with a totals snapshot. Monetary columns
// hold two-decimal amounts; AmountDue is clamped at zero when applied
// credit or payments exceed the total.
type VendorOrder struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID        uuid.UUID           `gorm:"column:vendor_id;type:uuid;not null"`
	DistributorID   uuid.UUID           `gorm:"column:distributor_id;type:uuid;not null"`
	Status          enums.OrderStatus   `gorm:"column:status;type:order_status;not null;default:'pending'"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null;default:'unpaid'"`
	Currency        string              `gorm:"column:currency;not null;default:'usd'"`
	Subtotal        float64             `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	AdjustmentTotal float64             `gorm:"column:adjustment_total;type:numeric(12,2);not null;default:0"`
	TaxTotal        float64             `gorm:"column:tax_total;type:numeric(12,2);not null;default:0"`
	Total           float64             `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	CreditApplied   float64             `gorm:"column:credit_applied;type:numeric(12,2);not null;default:0"`
	PaidTotal       float64             `gorm:"column:paid_total;type:numeric(12,2);not null;default:0"`
	AmountDue       float64             `gorm:"column:amount_due;type:numeric(12,2);not null;default:0"`
	Taxes           types.TaxLines      `gorm:"column:taxes;type:jsonb;serializer:json"`
	Lines           []OrderLine         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PlacedAt        time.Time           `gorm:"column:placed_at;not null"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
