package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/money"
)

// Service defines operations over a vendor's credit ledger.
type Service interface {
	Record(ctx context.Context, input RecordEntryInput) (*models.CreditEntry, error)
	BalanceFor(ctx context.Context, vendorID, distributorID uuid.UUID) (float64, error)
	BalanceForUpdate(ctx context.Context, tx *gorm.DB, vendorID, distributorID uuid.UUID) (float64, error)
	ListEntries(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.CreditEntry, error)
}

type service struct {
	repo Repository
}

// RecordEntryInput captures the immutable data a ledger entry requires.
type RecordEntryInput struct {
	Tx            *gorm.DB
	VendorID      uuid.UUID             `json:"vendor_id"`
	DistributorID uuid.UUID             `json:"distributor_id"`
	OrderID       *uuid.UUID            `json:"order_id"`
	ActorUserID   uuid.UUID             `json:"actor_user_id"`
	Type          enums.CreditEntryType `json:"type"`
	Amount        float64               `json:"amount"`
	Metadata      json.RawMessage       `json:"metadata"`
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, input RecordEntryInput) (*models.CreditEntry, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id is required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor user id is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid credit entry type %q", input.Type))
	}

	amount := money.Round(input.Amount)
	if amount < 0 {
		// sign lives in the type, never in the amount
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry amount must not be negative")
	}

	entry := &models.CreditEntry{
		VendorID:      input.VendorID,
		DistributorID: input.DistributorID,
		OrderID:       input.OrderID,
		ActorUserID:   input.ActorUserID,
		Type:          input.Type,
		Amount:        amount,
		Metadata:      input.Metadata,
	}

	repo := s.repo
	if input.Tx != nil {
		repo = repo.WithTx(input.Tx)
	}
	if err := repo.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append ledger entry")
	}
	return entry, nil
}

func (s *service) BalanceFor(ctx context.Context, vendorID, distributorID uuid.UUID) (float64, error) {
	entries, err := s.ListEntries(ctx, vendorID, distributorID)
	if err != nil {
		return 0, err
	}
	return Balance(entries), nil
}

// BalanceForUpdate folds the pair's balance inside the caller's
// transaction, locking the entries read. Callers that are about to spend
// the balance must use this rather than BalanceFor, otherwise two
// interleaved spenders can both see the same pre-spend snapshot.
func (s *service) BalanceForUpdate(ctx context.Context, tx *gorm.DB, vendorID, distributorID uuid.UUID) (float64, error) {
	if tx == nil {
		return 0, pkgerrors.New(pkgerrors.CodeInternal, "balance-for-update requires a transaction")
	}
	if vendorID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	if distributorID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "distributor id is required")
	}
	entries, err := s.repo.WithTx(tx).ListByPairForUpdate(ctx, vendorID, distributorID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ledger entries for update")
	}
	return Balance(entries), nil
}

func (s *service) ListEntries(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.CreditEntry, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	if distributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id is required")
	}
	entries, err := s.repo.ListByPair(ctx, vendorID, distributorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ledger entries")
	}
	return entries, nil
}
