package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
)

type fakeRepo struct {
	reset      *models.AnalyticsReset
	aggregates []OrderAggregate
	lastFrom   time.Time
	lastTo     time.Time
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepo) LatestReset(ctx context.Context, distributorID uuid.UUID) (*models.AnalyticsReset, error) {
	if f.reset == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.reset, nil
}

func (f *fakeRepo) CreateReset(ctx context.Context, reset *models.AnalyticsReset) error {
	reset.ID = uuid.New()
	f.reset = reset
	return nil
}

func (f *fakeRepo) AggregateOrders(ctx context.Context, distributorID uuid.UUID, from, to time.Time) ([]OrderAggregate, error) {
	f.lastFrom, f.lastTo = from, to
	return f.aggregates, nil
}

func newTestService(t *testing.T, repo *fakeRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestProfitReportSumsAggregates(t *testing.T) {
	repo := &fakeRepo{aggregates: []OrderAggregate{
		{VendorID: uuid.New(), OrderCount: 3, Revenue: 120.5, TaxTotal: 10.25, PaidTotal: 100},
		{VendorID: uuid.New(), OrderCount: 1, Revenue: 79.5, TaxTotal: 5, PaidTotal: 79.5},
	}}
	svc := newTestService(t, repo)

	report, err := svc.ProfitReport(context.Background(), uuid.New(), Range{From: day(1), To: day(31)})
	if err != nil {
		t.Fatalf("ProfitReport error: %v", err)
	}
	if report.Revenue != 200 {
		t.Fatalf("revenue = %v, want 200", report.Revenue)
	}
	if report.TaxTotal != 15.25 {
		t.Fatalf("tax total = %v, want 15.25", report.TaxTotal)
	}
	if report.PaidTotal != 179.5 {
		t.Fatalf("paid total = %v, want 179.5", report.PaidTotal)
	}
	if report.Window.SelectedRangeBeforeReset {
		t.Fatal("no reset recorded, range cannot be pre-reset")
	}
}

func TestProfitReportClampsQueryToReset(t *testing.T) {
	repo := &fakeRepo{reset: &models.AnalyticsReset{ResetAt: day(15)}}
	svc := newTestService(t, repo)

	report, err := svc.ProfitReport(context.Background(), uuid.New(), Range{From: day(1), To: day(31)})
	if err != nil {
		t.Fatalf("ProfitReport error: %v", err)
	}
	if report.Window.SelectedRangeBeforeReset {
		t.Fatal("straddling range is not pre-reset")
	}
	if !repo.lastFrom.Equal(day(15)) {
		t.Fatalf("aggregation must start at the reset, got %v", repo.lastFrom)
	}
	if !repo.lastTo.Equal(day(31)) {
		t.Fatalf("aggregation end changed unexpectedly: %v", repo.lastTo)
	}
}

func TestProfitReportPreResetRangeKeptWhole(t *testing.T) {
	repo := &fakeRepo{reset: &models.AnalyticsReset{ResetAt: day(31)}}
	svc := newTestService(t, repo)

	report, err := svc.ProfitReport(context.Background(), uuid.New(), Range{From: day(1), To: day(31)})
	if err != nil {
		t.Fatalf("ProfitReport error: %v", err)
	}
	if !report.Window.SelectedRangeBeforeReset {
		t.Fatal("range ending at the reset must classify as pre-reset")
	}
	if !repo.lastFrom.Equal(day(1)) {
		t.Fatalf("pre-reset range must not be clamped: %v", repo.lastFrom)
	}
}

func TestProfitReportValidation(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	_, err := svc.ProfitReport(context.Background(), uuid.Nil, Range{From: day(1), To: day(2)})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	_, err = svc.ProfitReport(context.Background(), uuid.New(), Range{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResetAnalyticsOrdersDatesAndDefaultsResetAt(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	from, to := day(20), day(5)

	reset, err := svc.ResetAnalytics(context.Background(), ResetInput{
		DistributorID: uuid.New(),
		CreatedBy:     uuid.New(),
		FromDate:      &from,
		ToDate:        &to,
		Scopes:        []string{"profit", "sales"},
	})
	if err != nil {
		t.Fatalf("ResetAnalytics error: %v", err)
	}
	if reset.ResetAt.IsZero() {
		t.Fatal("reset_at should default to now")
	}
	if !reset.ResetFromDate.Equal(day(5)) || !reset.ResetToDate.Equal(day(20)) {
		t.Fatalf("reversed dates must be swapped: %v..%v", reset.ResetFromDate, reset.ResetToDate)
	}
	if len(reset.Scopes) != 2 {
		t.Fatalf("scopes not persisted: %v", reset.Scopes)
	}
}

func TestResetAnalyticsValidation(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	_, err := svc.ResetAnalytics(context.Background(), ResetInput{CreatedBy: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	_, err = svc.ResetAnalytics(context.Background(), ResetInput{DistributorID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
