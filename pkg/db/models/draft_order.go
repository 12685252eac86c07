package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// DraftOrder is a vendor-saved, not-yet-submitted cart persisted for later
// resumption. Drafts are exclusively owned by the vendor that created them.
type DraftOrder struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID         uuid.UUID         `gorm:"column:vendor_id;type:uuid;not null"`
	DistributorID    uuid.UUID         `gorm:"column:distributor_id;type:uuid;not null"`
	Name             *string           `gorm:"column:name"`
	Status           enums.DraftStatus `gorm:"column:status;type:draft_status;not null;default:'active'"`
	Currency         string            `gorm:"column:currency;not null;default:'usd'"`
	CartPayload      json.RawMessage   `gorm:"column:cart_payload;type:jsonb"`
	SubtotalSnapshot *float64          `gorm:"column:subtotal_snapshot;type:numeric(12,2)"`
	Note             *string           `gorm:"column:note"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
