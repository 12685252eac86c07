package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// CreditEntry is one row of the append-only credit ledger for a
// vendor/distributor pairing. Rows are never mutated or deleted; the
// running balance is the fold over rows in creation order. Amount is
// always non-negative, the sign lives in Type.
type CreditEntry struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID      uuid.UUID             `gorm:"column:vendor_id;type:uuid;not null"`
	DistributorID uuid.UUID             `gorm:"column:distributor_id;type:uuid;not null"`
	OrderID       *uuid.UUID            `gorm:"column:order_id;type:uuid"`
	ActorUserID   uuid.UUID             `gorm:"column:actor_user_id;type:uuid;not null"`
	Type          enums.CreditEntryType `gorm:"column:type;type:credit_entry_type;not null"`
	Amount        float64               `gorm:"column:amount;type:numeric(12,2);not null"`
	Metadata      json.RawMessage       `gorm:"column:metadata;type:jsonb"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
}
