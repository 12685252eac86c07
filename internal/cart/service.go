package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the vendor's active cart operations. All consolidation
// invariants live in the pure helpers of this package; the service only
// loads a consistent snapshot, applies them, and writes the result back.
type Service interface {
	GetActiveCart(ctx context.Context, vendorID, distributorID uuid.UUID) (*models.CartRecord, error)
	AddItem(ctx context.Context, vendorID, distributorID uuid.UUID, input AddItemInput) (*models.CartRecord, error)
	DecrementItem(ctx context.Context, vendorID, distributorID uuid.UUID, input DecrementItemInput) (*models.CartRecord, error)
	MergeIntoActiveCart(ctx context.Context, vendorID, distributorID uuid.UUID, incoming []Line) (*models.CartRecord, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// AddItemInput carries the product snapshot and requested quantity for an
// add-to-cart operation.
type AddItemInput struct {
	ProductID    uuid.UUID
	Name         string
	Unit         enums.OrderUnit
	Qty          int
	UnitPrice    float64
	CasePrice    *float64
	UnitsPerCase *int
}

// DecrementItemInput identifies the line to reduce.
type DecrementItemInput struct {
	ProductID uuid.UUID
	Unit      enums.OrderUnit
	Qty       int
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) GetActiveCart(ctx context.Context, vendorID, distributorID uuid.UUID) (*models.CartRecord, error) {
	if err := requireOwner(vendorID, distributorID); err != nil {
		return nil, err
	}
	record, err := s.repo.FindActive(ctx, vendorID, distributorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.CartRecord{
				VendorID:      vendorID,
				DistributorID: distributorID,
				Status:        enums.CartStatusActive,
				Currency:      "usd",
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active cart")
	}
	return record, nil
}

func (s *service) AddItem(ctx context.Context, vendorID, distributorID uuid.UUID, input AddItemInput) (*models.CartRecord, error) {
	if err := requireOwner(vendorID, distributorID); err != nil {
		return nil, err
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if !input.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order unit %q", input.Unit))
	}
	if input.Qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	product := ProductSnapshot{
		ID:           input.ProductID,
		Name:         input.Name,
		UnitPrice:    input.UnitPrice,
		CasePrice:    input.CasePrice,
		UnitsPerCase: input.UnitsPerCase,
	}

	return s.mutateLines(ctx, vendorID, distributorID, func(lines []Line) []Line {
		return AddLine(lines, product, input.Unit, input.Qty)
	})
}

func (s *service) DecrementItem(ctx context.Context, vendorID, distributorID uuid.UUID, input DecrementItemInput) (*models.CartRecord, error) {
	if err := requireOwner(vendorID, distributorID); err != nil {
		return nil, err
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	return s.mutateLines(ctx, vendorID, distributorID, func(lines []Line) []Line {
		return DecrementLine(lines, input.ProductID, input.Unit, input.Qty)
	})
}

func (s *service) MergeIntoActiveCart(ctx context.Context, vendorID, distributorID uuid.UUID, incoming []Line) (*models.CartRecord, error) {
	if err := requireOwner(vendorID, distributorID); err != nil {
		return nil, err
	}
	return s.mutateLines(ctx, vendorID, distributorID, func(lines []Line) []Line {
		return MergeLines(lines, incoming)
	})
}

// mutateLines loads (or creates) the active cart, applies the pure
// transform to its lines, and persists the result atomically.
func (s *service) mutateLines(ctx context.Context, vendorID, distributorID uuid.UUID, transform func([]Line) []Line) (*models.CartRecord, error) {
	var result *models.CartRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.FindActive(ctx, vendorID, distributorID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active cart")
			}
			record = &models.CartRecord{
				VendorID:      vendorID,
				DistributorID: distributorID,
				Status:        enums.CartStatusActive,
				Currency:      "usd",
			}
			if err := repo.Create(ctx, record); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
			}
		}

		lines := transform(LinesFromModels(record.Lines))
		rows := LinesToModels(record.ID, lines)
		if err := repo.ReplaceLines(ctx, record.ID, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart lines")
		}

		record.Lines = rows
		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func requireOwner(vendorID, distributorID uuid.UUID) error {
	if vendorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "vendor context required")
	}
	if distributorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "distributor id is required")
	}
	return nil
}

// LinesFromModels converts persisted rows into pure consolidation lines.
func LinesFromModels(rows []models.CartLine) []Line {
	out := make([]Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, Line{
			ProductID:         row.ProductID,
			Name:              row.Name,
			Unit:              row.Unit,
			Qty:               row.Qty,
			UnitPrice:         row.UnitPrice,
			UnitPriceSnapshot: row.UnitPriceSnapshot,
			CasePriceSnapshot: row.CasePriceSnapshot,
			UnitsPerCase:      row.UnitsPerCase,
		})
	}
	return out
}

// LinesToModels converts pure lines back into rows for persistence.
func LinesToModels(cartID uuid.UUID, lines []Line) []models.CartLine {
	out := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, models.CartLine{
			CartID:            cartID,
			ProductID:         line.ProductID,
			Name:              line.Name,
			Unit:              line.Unit,
			Qty:               line.Qty,
			UnitPrice:         line.UnitPrice,
			UnitPriceSnapshot: line.UnitPriceSnapshot,
			CasePriceSnapshot: line.CasePriceSnapshot,
			UnitsPerCase:      line.UnitsPerCase,
		})
	}
	return out
}
