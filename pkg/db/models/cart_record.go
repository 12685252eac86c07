package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// CartRecord is the single active cart a vendor keeps against a
// distributor. Concurrent writes from multiple devices are last-write-wins
// at this layer.
type CartRecord struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID      uuid.UUID        `gorm:"column:vendor_id;type:uuid;not null"`
	DistributorID uuid.UUID        `gorm:"column:distributor_id;type:uuid;not null"`
	Status        enums.CartStatus `gorm:"column:status;type:cart_status;not null;default:'active'"`
	Currency      string           `gorm:"column:currency;not null;default:'usd'"`
	Lines         []CartLine       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	ConvertedAt   *time.Time       `gorm:"column:converted_at"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
