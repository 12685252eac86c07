package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderPayment records one real-world payment applied to an order. The
// ledger entry and amount-due update for a payment are written in the same
// transaction as this row.
type OrderPayment struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	Amount      float64   `gorm:"column:amount;type:numeric(12,2);not null"`
	Reference   *string   `gorm:"column:reference"`
	RecordedBy  uuid.UUID `gorm:"column:recorded_by;type:uuid;not null"`
	SurplusKept float64   `gorm:"column:surplus_kept;type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
