package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// Repository manages persistence for cart records and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActive(ctx context.Context, vendorID, distributorID uuid.UUID) (*models.CartRecord, error)
	Create(ctx context.Context, record *models.CartRecord) error
	ReplaceLines(ctx context.Context, cartID uuid.UUID, lines []models.CartLine) error
	MarkConverted(ctx context.Context, cartID uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a cart repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindActive(ctx context.Context, vendorID, distributorID uuid.UUID) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("vendor_id = ? AND distributor_id = ? AND status = ?", vendorID, distributorID, enums.CartStatusActive).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Create(ctx context.Context, record *models.CartRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) ReplaceLines(ctx context.Context, cartID uuid.UUID, lines []models.CartLine) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("cart_id = ?", cartID).Delete(&models.CartLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].CartID = cartID
	}
	return db.Create(&lines).Error
}

func (r *repository) MarkConverted(ctx context.Context, cartID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.CartRecord{}).
		Where("id = ?", cartID).
		Updates(map[string]any{
			"status":       enums.CartStatusConverted,
			"converted_at": at,
		}).Error
}
