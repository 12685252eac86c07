package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
)

// Repository manages persistence for credit ledger entries. The table is
// append-only: there is deliberately no update or delete surface here.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.CreditEntry) error
	ListByPair(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.CreditEntry, error)
	ListByPairForUpdate(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.CreditEntry, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.CreditEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.CreditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByPair(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.CreditEntry, error) {
	var entries []models.CreditEntry
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND distributor_id = ?", vendorID, distributorID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByPairForUpdate row-locks the pair's entries so concurrent spenders
// serialize on the same balance. Only meaningful inside a transaction.
func (r *repository) ListByPairForUpdate(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.CreditEntry, error) {
	var entries []models.CreditEntry
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vendor_id = ? AND distributor_id = ?", vendorID, distributorID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.CreditEntry, error) {
	var entries []models.CreditEntry
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
