package drafts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// Repository manages persistence for draft orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, draft *models.DraftOrder) error
	Update(ctx context.Context, draft *models.DraftOrder) error
	FindByID(ctx context.Context, draftID uuid.UUID) (*models.DraftOrder, error)
	ListByVendor(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.DraftOrder, error)
	Delete(ctx context.Context, draftID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a draft repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, draft *models.DraftOrder) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *repository) Update(ctx context.Context, draft *models.DraftOrder) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *repository) FindByID(ctx context.Context, draftID uuid.UUID) (*models.DraftOrder, error) {
	var draft models.DraftOrder
	err := r.db.WithContext(ctx).Where("id = ?", draftID).First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *repository) ListByVendor(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.DraftOrder, error) {
	var out []models.DraftOrder
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND distributor_id = ? AND status = ?", vendorID, distributorID, enums.DraftStatusActive).
		Order("updated_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, draftID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", draftID).Delete(&models.DraftOrder{}).Error
}
