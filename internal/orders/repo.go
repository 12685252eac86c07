package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// Repository manages persistence for vendor orders and their payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.VendorOrder) error
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.VendorOrder, error)
	FindByIDForUpdate(ctx context.Context, orderID uuid.UUID) (*models.VendorOrder, error)
	ListByPair(ctx context.Context, vendorID, distributorID uuid.UUID, limit int) ([]models.VendorOrder, error)
	UpdatePaymentState(ctx context.Context, orderID uuid.UUID, state PaymentState) error
	CreatePayment(ctx context.Context, payment *models.OrderPayment) error
	ListPayments(ctx context.Context, orderID uuid.UUID) ([]models.OrderPayment, error)
}

// PaymentState is the mutable slice of an order's financial snapshot that
// changes as credit is applied and payments land.
type PaymentState struct {
	CreditApplied float64
	PaidTotal     float64
	AmountDue     float64
	PaymentStatus enums.PaymentStatus
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an order repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.VendorOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, orderID uuid.UUID) (*models.VendorOrder, error) {
	var order models.VendorOrder
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate row-locks the order so concurrent payment writers
// cannot reconcile against the same stale paid_total / amount_due.
// Only meaningful inside a transaction.
func (r *repository) FindByIDForUpdate(ctx context.Context, orderID uuid.UUID) (*models.VendorOrder, error) {
	var order models.VendorOrder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByPair(ctx context.Context, vendorID, distributorID uuid.UUID, limit int) ([]models.VendorOrder, error) {
	query := r.db.WithContext(ctx).
		Preload("Lines").
		Where("vendor_id = ? AND distributor_id = ?", vendorID, distributorID).
		Order("placed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var out []models.VendorOrder
	if err := query.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpdatePaymentState(ctx context.Context, orderID uuid.UUID, state PaymentState) error {
	return r.db.WithContext(ctx).
		Model(&models.VendorOrder{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"credit_applied": state.CreditApplied,
			"paid_total":     state.PaidTotal,
			"amount_due":     state.AmountDue,
			"payment_status": state.PaymentStatus,
		}).Error
}

func (r *repository) CreatePayment(ctx context.Context, payment *models.OrderPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) ListPayments(ctx context.Context, orderID uuid.UUID) ([]models.OrderPayment, error) {
	var out []models.OrderPayment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
