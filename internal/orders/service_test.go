package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/internal/cart"
	"github.com/marisolvega/vendorhub-backend/internal/ledger"
	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/types"
)

type fakeOrderRepo struct {
	orders      map[uuid.UUID]*models.VendorOrder
	payments    []models.OrderPayment
	lockedFinds int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*models.VendorOrder{}}
}

func (f *fakeOrderRepo) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.VendorOrder) error {
	order.ID = uuid.New()
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, orderID uuid.UUID) (*models.VendorOrder, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, orderID uuid.UUID) (*models.VendorOrder, error) {
	f.lockedFinds++
	return f.FindByID(ctx, orderID)
}

func (f *fakeOrderRepo) ListByPair(ctx context.Context, vendorID, distributorID uuid.UUID, limit int) ([]models.VendorOrder, error) {
	var out []models.VendorOrder
	for _, order := range f.orders {
		if order.VendorID == vendorID && order.DistributorID == distributorID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdatePaymentState(ctx context.Context, orderID uuid.UUID, state PaymentState) error {
	order, ok := f.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.CreditApplied = state.CreditApplied
	order.PaidTotal = state.PaidTotal
	order.AmountDue = state.AmountDue
	order.PaymentStatus = state.PaymentStatus
	return nil
}

func (f *fakeOrderRepo) CreatePayment(ctx context.Context, payment *models.OrderPayment) error {
	payment.ID = uuid.New()
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakeOrderRepo) ListPayments(ctx context.Context, orderID uuid.UUID) ([]models.OrderPayment, error) {
	var out []models.OrderPayment
	for _, p := range f.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCartRepo struct {
	record    *models.CartRecord
	converted bool
}

func (f *fakeCartRepo) WithTx(tx *gorm.DB) cart.Repository {
	return f
}

func (f *fakeCartRepo) FindActive(ctx context.Context, vendorID, distributorID uuid.UUID) (*models.CartRecord, error) {
	if f.record == nil || f.converted {
		return nil, gorm.ErrRecordNotFound
	}
	return f.record, nil
}

func (f *fakeCartRepo) Create(ctx context.Context, record *models.CartRecord) error {
	record.ID = uuid.New()
	f.record = record
	return nil
}

func (f *fakeCartRepo) ReplaceLines(ctx context.Context, cartID uuid.UUID, lines []models.CartLine) error {
	f.record.Lines = lines
	return nil
}

func (f *fakeCartRepo) MarkConverted(ctx context.Context, cartID uuid.UUID, at time.Time) error {
	f.converted = true
	return nil
}

type fakeLedger struct {
	balance     float64
	entries     []ledger.RecordEntryInput
	lockedReads int
}

func (f *fakeLedger) Record(ctx context.Context, input ledger.RecordEntryInput) (*models.CreditEntry, error) {
	f.entries = append(f.entries, input)
	return &models.CreditEntry{
		ID:     uuid.New(),
		Type:   input.Type,
		Amount: input.Amount,
	}, nil
}

func (f *fakeLedger) BalanceFor(ctx context.Context, vendorID, distributorID uuid.UUID) (float64, error) {
	return f.currentBalance(), nil
}

// BalanceForUpdate behaves like the serialized read the real service
// performs: it always reflects previously recorded applications.
func (f *fakeLedger) BalanceForUpdate(ctx context.Context, tx *gorm.DB, vendorID, distributorID uuid.UUID) (float64, error) {
	f.lockedReads++
	return f.currentBalance(), nil
}

func (f *fakeLedger) currentBalance() float64 {
	balance := f.balance
	for _, e := range f.entries {
		if e.Type == enums.CreditEntryTypeApply || e.Type == enums.CreditEntryTypeDeduct {
			balance -= e.Amount
		}
		if e.Type == enums.CreditEntryTypeAdd {
			balance += e.Amount
		}
	}
	return balance
}

func (f *fakeLedger) ListEntries(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.CreditEntry, error) {
	return nil, nil
}

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func seedCart(vendorID, distributorID uuid.UUID, lines ...models.CartLine) *fakeCartRepo {
	return &fakeCartRepo{record: &models.CartRecord{
		ID:            uuid.New(),
		VendorID:      vendorID,
		DistributorID: distributorID,
		Status:        enums.CartStatusActive,
		Currency:      "usd",
		Lines:         lines,
	}}
}

func TestPlaceOrderComputesTotalsSnapshot(t *testing.T) {
	vendorID, distributorID, actorID := uuid.New(), uuid.New(), uuid.New()
	carts := seedCart(vendorID, distributorID,
		models.CartLine{ProductID: uuid.New(), Name: "Beans", Unit: enums.OrderUnitPiece, Qty: 10, UnitPrice: 10},
	)
	repo := newFakeOrderRepo()
	ldg := &fakeLedger{}
	svc, err := NewService(repo, carts, ldg, fakeTx{})
	require.NoError(t, err)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		VendorID:        vendorID,
		DistributorID:   distributorID,
		ActorUserID:     actorID,
		AdjustmentTotal: 20,
		Taxes: types.TaxLines{
			{Type: enums.TaxTypePercent, RatePercent: 10},
			{Type: enums.TaxTypeFixed, RatePercent: 3.75},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, order.Subtotal)
	assert.Equal(t, 15.75, order.TaxTotal)
	assert.Equal(t, 135.75, order.Total)
	assert.Equal(t, 135.75, order.AmountDue)
	assert.Equal(t, enums.PaymentStatusUnpaid, order.PaymentStatus)
	assert.True(t, carts.converted, "cart should be marked converted")
	assert.Len(t, order.Lines, 1)
	assert.Equal(t, 100.0, order.Lines[0].LineSubtotal)
}

func TestPlaceOrderAppliesCreditAndWritesLedgerEntry(t *testing.T) {
	vendorID, distributorID, actorID := uuid.New(), uuid.New(), uuid.New()
	carts := seedCart(vendorID, distributorID,
		models.CartLine{ProductID: uuid.New(), Name: "Tea", Unit: enums.OrderUnitPiece, Qty: 2, UnitPrice: 25},
	)
	ldg := &fakeLedger{balance: 80}
	svc, err := NewService(newFakeOrderRepo(), carts, ldg, fakeTx{})
	require.NoError(t, err)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		VendorID:      vendorID,
		DistributorID: distributorID,
		ActorUserID:   actorID,
		ApplyCredit:   true,
	})
	require.NoError(t, err)

	// balance exceeds the 50.00 total, applied credit is capped at total
	assert.Equal(t, 50.0, order.CreditApplied)
	assert.Equal(t, 0.0, order.AmountDue)
	assert.Equal(t, enums.PaymentStatusPaid, order.PaymentStatus)
	require.Len(t, ldg.entries, 1)
	assert.Equal(t, enums.CreditEntryTypeApply, ldg.entries[0].Type)
	assert.Equal(t, 50.0, ldg.entries[0].Amount)
}

func TestPlaceOrderReadsBalanceThroughLockedSnapshot(t *testing.T) {
	vendorID, distributorID := uuid.New(), uuid.New()
	carts := seedCart(vendorID, distributorID,
		models.CartLine{ProductID: uuid.New(), Name: "Hops", Unit: enums.OrderUnitPiece, Qty: 1, UnitPrice: 40},
	)
	ldg := &fakeLedger{balance: 10}
	svc, err := NewService(newFakeOrderRepo(), carts, ldg, fakeTx{})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderInput{
		VendorID:      vendorID,
		DistributorID: distributorID,
		ActorUserID:   uuid.New(),
		ApplyCredit:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, ldg.lockedReads, "credit spend must read the balance via the transactional locked path")
}

func TestPlaceOrderCannotSpendSameCreditTwice(t *testing.T) {
	vendorID, distributorID, actorID := uuid.New(), uuid.New(), uuid.New()
	carts := seedCart(vendorID, distributorID,
		models.CartLine{ProductID: uuid.New(), Name: "Malt", Unit: enums.OrderUnitCase, Qty: 1, UnitPrice: 50},
	)
	ldg := &fakeLedger{balance: 50}
	svc, err := NewService(newFakeOrderRepo(), carts, ldg, fakeTx{})
	require.NoError(t, err)

	input := PlaceOrderInput{
		VendorID:      vendorID,
		DistributorID: distributorID,
		ActorUserID:   actorID,
		ApplyCredit:   true,
	}

	first, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 50.0, first.CreditApplied)
	assert.Equal(t, 0.0, first.AmountDue)

	// the vendor fills a fresh cart; the balance snapshot for the second
	// placement already includes the first application
	carts.converted = false
	second, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 0.0, second.CreditApplied)
	assert.Equal(t, 50.0, second.AmountDue)

	var applied float64
	for _, e := range ldg.entries {
		if e.Type == enums.CreditEntryTypeApply {
			applied += e.Amount
		}
	}
	assert.Equal(t, 50.0, applied, "total applied credit must never exceed the granted balance")
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	vendorID, distributorID := uuid.New(), uuid.New()
	carts := seedCart(vendorID, distributorID)
	svc, err := NewService(newFakeOrderRepo(), carts, &fakeLedger{}, fakeTx{})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderInput{
		VendorID:      vendorID,
		DistributorID: distributorID,
		ActorUserID:   uuid.New(),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestPlaceOrderRejectsMissingCart(t *testing.T) {
	svc, err := NewService(newFakeOrderRepo(), &fakeCartRepo{}, &fakeLedger{}, fakeTx{})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderInput{
		VendorID:      uuid.New(),
		DistributorID: uuid.New(),
		ActorUserID:   uuid.New(),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func placeOrderForPayment(t *testing.T) (Service, *fakeOrderRepo, *fakeLedger, *models.VendorOrder) {
	t.Helper()
	vendorID, distributorID, actorID := uuid.New(), uuid.New(), uuid.New()
	carts := seedCart(vendorID, distributorID,
		models.CartLine{ProductID: uuid.New(), Name: "Kegs", Unit: enums.OrderUnitCase, Qty: 1, UnitPrice: 50},
	)
	repo := newFakeOrderRepo()
	ldg := &fakeLedger{}
	svc, err := NewService(repo, carts, ldg, fakeTx{})
	require.NoError(t, err)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		VendorID:      vendorID,
		DistributorID: distributorID,
		ActorUserID:   actorID,
	})
	require.NoError(t, err)
	return svc, repo, ldg, order
}

func TestRecordPaymentPartialThenPaid(t *testing.T) {
	svc, _, _, order := placeOrderForPayment(t)

	updated, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		OrderID:     order.ID,
		VendorID:    order.VendorID,
		ActorUserID: uuid.New(),
		Amount:      20,
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.AmountDue)
	assert.Equal(t, enums.PaymentStatusPartiallyPaid, updated.PaymentStatus)

	updated, err = svc.RecordPayment(context.Background(), RecordPaymentInput{
		OrderID:     order.ID,
		VendorID:    order.VendorID,
		ActorUserID: uuid.New(),
		Amount:      30,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.AmountDue)
	assert.Equal(t, enums.PaymentStatusPaid, updated.PaymentStatus)
}

func TestRecordPaymentSurplusBecomesCredit(t *testing.T) {
	svc, repo, ldg, order := placeOrderForPayment(t)

	updated, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		OrderID:     order.ID,
		VendorID:    order.VendorID,
		ActorUserID: uuid.New(),
		Amount:      80,
	})
	require.NoError(t, err)

	// amount due never goes negative; the 30.00 overage lands in the ledger
	assert.Equal(t, 0.0, updated.AmountDue)
	assert.Equal(t, 50.0, updated.PaidTotal)
	require.Len(t, ldg.entries, 1)
	assert.Equal(t, enums.CreditEntryTypeAdd, ldg.entries[0].Type)
	assert.Equal(t, 30.0, ldg.entries[0].Amount)

	payments, err := repo.ListPayments(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 30.0, payments[0].SurplusKept)
}

func TestRecordPaymentReconcilesAgainstLockedOrderRow(t *testing.T) {
	svc, repo, _, order := placeOrderForPayment(t)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		OrderID:     order.ID,
		VendorID:    order.VendorID,
		ActorUserID: uuid.New(),
		Amount:      20,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.lockedFinds, "payment reconciliation must load the order via the locked lookup")
}

func TestRecordPaymentValidation(t *testing.T) {
	svc, _, _, order := placeOrderForPayment(t)

	tests := []struct {
		name  string
		input RecordPaymentInput
		code  pkgerrors.Code
	}{
		{
			name:  "missing order",
			input: RecordPaymentInput{ActorUserID: uuid.New(), Amount: 10},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "zero amount",
			input: RecordPaymentInput{OrderID: order.ID, ActorUserID: uuid.New(), Amount: 0},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "negative amount",
			input: RecordPaymentInput{OrderID: order.ID, ActorUserID: uuid.New(), Amount: -5},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "unknown order",
			input: RecordPaymentInput{OrderID: uuid.New(), ActorUserID: uuid.New(), Amount: 10},
			code:  pkgerrors.CodeNotFound,
		},
		{
			name:  "foreign vendor",
			input: RecordPaymentInput{OrderID: order.ID, VendorID: uuid.New(), ActorUserID: uuid.New(), Amount: 10},
			code:  pkgerrors.CodeNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordPayment(context.Background(), tc.input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed, "expected typed error, got %v", err)
			assert.Equal(t, tc.code, typed.Code())
		})
	}
}

func TestGetOrderScopedToVendor(t *testing.T) {
	svc, _, _, order := placeOrderForPayment(t)

	got, err := svc.GetOrder(context.Background(), order.VendorID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.GetOrder(context.Background(), uuid.New(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
