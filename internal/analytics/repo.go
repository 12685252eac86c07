package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// OrderAggregate is one row of the profit rollup, grouped by vendor.
type OrderAggregate struct {
	VendorID   uuid.UUID `gorm:"column:vendor_id"`
	OrderCount int64     `gorm:"column:order_count"`
	Revenue    float64   `gorm:"column:revenue"`
	TaxTotal   float64   `gorm:"column:tax_total"`
	PaidTotal  float64   `gorm:"column:paid_total"`
}

// Repository reads reset checkpoints and aggregates placed orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LatestReset(ctx context.Context, distributorID uuid.UUID) (*models.AnalyticsReset, error)
	CreateReset(ctx context.Context, reset *models.AnalyticsReset) error
	AggregateOrders(ctx context.Context, distributorID uuid.UUID, from, to time.Time) ([]OrderAggregate, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an analytics repository bound to the provided
// database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) LatestReset(ctx context.Context, distributorID uuid.UUID) (*models.AnalyticsReset, error) {
	var reset models.AnalyticsReset
	err := r.db.WithContext(ctx).
		Where("distributor_id = ?", distributorID).
		Order("reset_at DESC").
		First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *repository) CreateReset(ctx context.Context, reset *models.AnalyticsReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

func (r *repository) AggregateOrders(ctx context.Context, distributorID uuid.UUID, from, to time.Time) ([]OrderAggregate, error) {
	var out []OrderAggregate
	err := r.db.WithContext(ctx).
		Model(&models.VendorOrder{}).
		Select(
			"vendor_id",
			"COUNT(*) AS order_count",
			"COALESCE(SUM(total), 0) AS revenue",
			"COALESCE(SUM(tax_total), 0) AS tax_total",
			"COALESCE(SUM(paid_total), 0) AS paid_total",
		).
		Where("distributor_id = ? AND status <> ? AND placed_at >= ? AND placed_at <= ?",
			distributorID, enums.OrderStatusCancelled, from, to).
		Group("vendor_id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
