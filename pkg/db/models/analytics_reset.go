package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AnalyticsReset is a distributor-owned reporting checkpoint. It only
// derives the effective range used for aggregation; it never deletes or
// alters order/invoice rows.
type AnalyticsReset struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DistributorID uuid.UUID      `gorm:"column:distributor_id;type:uuid;not null"`
	ResetAt       time.Time      `gorm:"column:reset_at;not null"`
	ResetFromDate *time.Time     `gorm:"column:reset_from_date;type:date"`
	ResetToDate   *time.Time     `gorm:"column:reset_to_date;type:date"`
	Scopes        pq.StringArray `gorm:"column:scopes;type:text[]"`
	CreatedBy     uuid.UUID      `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
}
