package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/internal/cart"
	"github.com/marisolvega/vendorhub-backend/internal/ledger"
	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/money"
	"github.com/marisolvega/vendorhub-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service places orders from the active cart and reconciles payments
// against them.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.VendorOrder, error)
	GetOrder(ctx context.Context, vendorID, orderID uuid.UUID) (*models.VendorOrder, error)
	ListOrders(ctx context.Context, vendorID, distributorID uuid.UUID, limit int) ([]models.VendorOrder, error)
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.VendorOrder, error)
}

// PlaceOrderInput converts the caller's active cart into an order. Taxes
// and adjustments come from the distributor's pricing config, resolved by
// the caller; ApplyCredit spends the vendor's available ledger balance
// against the total at placement time.
type PlaceOrderInput struct {
	VendorID        uuid.UUID
	DistributorID   uuid.UUID
	ActorUserID     uuid.UUID
	AdjustmentTotal float64
	Taxes           types.TaxLines
	ApplyCredit     bool
}

// RecordPaymentInput records one real-world payment against an order.
type RecordPaymentInput struct {
	OrderID     uuid.UUID
	VendorID    uuid.UUID
	ActorUserID uuid.UUID
	Amount      float64
	Reference   *string
}

type service struct {
	repo     Repository
	cartRepo cart.Repository
	ledger   ledger.Service
	tx       txRunner
}

// NewService wires the order service with its collaborators.
func NewService(repo Repository, cartRepo cart.Repository, ledgerSvc ledger.Service, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, cartRepo: cartRepo, ledger: ledgerSvc, tx: tx}, nil
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.VendorOrder, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context required")
	}
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id is required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor user id is required")
	}
	for _, line := range input.Taxes {
		if !line.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid tax type %q", line.Type))
		}
	}

	var placed *models.VendorOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		record, err := cartRepo.FindActive(ctx, input.VendorID, input.DistributorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "no active cart to place")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active cart")
		}
		lines := cart.LinesFromModels(record.Lines)
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
		}

		totals := ComputeOrderTotal(TotalsInput{
			Subtotal:        cart.Subtotal(lines),
			AdjustmentTotal: input.AdjustmentTotal,
			Taxes:           input.Taxes,
		})

		creditApplied := 0.0
		if input.ApplyCredit && totals.Total > 0 {
			// locked, tx-scoped read: concurrent placements serialize on
			// the ledger rows instead of both spending the same balance
			balance, err := s.ledger.BalanceForUpdate(ctx, tx, input.VendorID, input.DistributorID)
			if err != nil {
				return err
			}
			if balance > 0 {
				creditApplied = money.Round(balance)
				if creditApplied > totals.Total {
					creditApplied = totals.Total
				}
			}
		}

		now := time.Now().UTC()
		order := &models.VendorOrder{
			VendorID:        input.VendorID,
			DistributorID:   input.DistributorID,
			Status:          enums.OrderStatusPending,
			PaymentStatus:   enums.PaymentStatusUnpaid,
			Currency:        record.Currency,
			Subtotal:        totals.Subtotal,
			AdjustmentTotal: totals.AdjustmentTotal,
			TaxTotal:        totals.TaxTotal,
			Total:           totals.Total,
			CreditApplied:   creditApplied,
			AmountDue:       ComputeAmountDue(totals.Total, creditApplied),
			Taxes:           input.Taxes,
			Lines:           orderLinesFromCart(lines),
			PlacedAt:        now,
		}
		if order.AmountDue == 0 && order.Total > 0 {
			order.PaymentStatus = enums.PaymentStatusPaid
		}

		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := cartRepo.MarkConverted(ctx, record.ID, now); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "convert cart")
		}

		if creditApplied > 0 {
			if _, err := s.ledger.Record(ctx, ledger.RecordEntryInput{
				Tx:            tx,
				VendorID:      input.VendorID,
				DistributorID: input.DistributorID,
				OrderID:       &order.ID,
				ActorUserID:   input.ActorUserID,
				Type:          enums.CreditEntryTypeApply,
				Amount:        creditApplied,
			}); err != nil {
				return err
			}
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *service) GetOrder(ctx context.Context, vendorID, orderID uuid.UUID) (*models.VendorOrder, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, vendorID, distributorID uuid.UUID, limit int) ([]models.VendorOrder, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context required")
	}
	if distributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id is required")
	}
	out, err := s.repo.ListByPair(ctx, vendorID, distributorID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return out, nil
}

func (s *service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.VendorOrder, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor user id is required")
	}
	amount := money.Round(input.Amount)
	if amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}

	var updated *models.VendorOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if input.VendorID != uuid.Nil && order.VendorID != input.VendorID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if order.Status == enums.OrderStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot record a payment on a cancelled order")
		}

		// the part of the payment the order can still absorb; anything
		// beyond that is kept as vendor credit rather than a negative due
		applied := amount
		if applied > order.AmountDue {
			applied = order.AmountDue
		}
		surplus := money.Add(amount, -applied)

		payment := &models.OrderPayment{
			OrderID:     order.ID,
			Amount:      amount,
			Reference:   input.Reference,
			RecordedBy:  input.ActorUserID,
			SurplusKept: surplus,
		}
		if err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
		}

		paidTotal := money.Add(order.PaidTotal, applied)
		covered := money.Add(order.CreditApplied, paidTotal)
		state := PaymentState{
			CreditApplied: order.CreditApplied,
			PaidTotal:     paidTotal,
			AmountDue:     ComputeAmountDue(order.Total, covered),
			PaymentStatus: paymentStatusFor(order.Total, covered),
		}
		if err := repo.UpdatePaymentState(ctx, order.ID, state); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order payment state")
		}

		if surplus > 0 {
			if _, err := s.ledger.Record(ctx, ledger.RecordEntryInput{
				Tx:            tx,
				VendorID:      order.VendorID,
				DistributorID: order.DistributorID,
				OrderID:       &order.ID,
				ActorUserID:   input.ActorUserID,
				Type:          enums.CreditEntryTypeAdd,
				Amount:        surplus,
			}); err != nil {
				return err
			}
		}

		order.PaidTotal = state.PaidTotal
		order.AmountDue = state.AmountDue
		order.PaymentStatus = state.PaymentStatus
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func paymentStatusFor(total, covered float64) enums.PaymentStatus {
	switch {
	case total > 0 && covered >= total:
		return enums.PaymentStatusPaid
	case covered > 0:
		return enums.PaymentStatusPartiallyPaid
	default:
		return enums.PaymentStatusUnpaid
	}
}

func orderLinesFromCart(lines []cart.Line) []models.OrderLine {
	out := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, models.OrderLine{
			ProductID:    line.ProductID,
			Name:         line.Name,
			Unit:         line.Unit,
			Qty:          line.Qty,
			UnitPrice:    money.Round(line.UnitPrice),
			LineSubtotal: money.Round(money.Round(line.UnitPrice) * float64(line.Qty)),
		})
	}
	return out
}
