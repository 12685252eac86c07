package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/money"
)

// Service derives profit reports and records distributor reset
// checkpoints.
type Service interface {
	ProfitReport(ctx context.Context, distributorID uuid.UUID, requested Range) (*ProfitReport, error)
	ResetAnalytics(ctx context.Context, input ResetInput) (*models.AnalyticsReset, error)
}

// ProfitReport is the rollup returned for a distributor's reporting
// window, annotated with how the requested range was adjusted.
type ProfitReport struct {
	Window    EffectiveWindow
	ByVendor  []OrderAggregate
	Revenue   float64
	TaxTotal  float64
	PaidTotal float64
}

// ResetInput records a new reporting checkpoint. FromDate and ToDate
// describe the window the distributor considers settled; Scopes names the
// report families the checkpoint applies to.
type ResetInput struct {
	DistributorID uuid.UUID
	CreatedBy     uuid.UUID
	ResetAt       time.Time
	FromDate      *time.Time
	ToDate        *time.Time
	Scopes        []string
}

type service struct {
	repo Repository
}

// NewService wires the analytics service with its repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ProfitReport(ctx context.Context, distributorID uuid.UUID, requested Range) (*ProfitReport, error) {
	if distributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "distributor context required")
	}
	if requested.From.IsZero() || requested.To.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reporting range is required")
	}

	var resetAt *time.Time
	reset, err := s.repo.LatestReset(ctx, distributorID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load latest reset")
		}
	} else {
		resetAt = &reset.ResetAt
	}

	window := EffectiveRange(requested, resetAt)
	rows, err := s.repo.AggregateOrders(ctx, distributorID, window.Range.From, window.Range.To)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate orders")
	}

	report := &ProfitReport{Window: window, ByVendor: rows}
	for _, row := range rows {
		report.Revenue = money.Add(report.Revenue, row.Revenue)
		report.TaxTotal = money.Add(report.TaxTotal, row.TaxTotal)
		report.PaidTotal = money.Add(report.PaidTotal, row.PaidTotal)
	}
	return report, nil
}

func (s *service) ResetAnalytics(ctx context.Context, input ResetInput) (*models.AnalyticsReset, error) {
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "distributor context required")
	}
	if input.CreatedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "created-by user id is required")
	}

	resetAt := input.ResetAt
	if resetAt.IsZero() {
		resetAt = time.Now().UTC()
	}
	fromDate, toDate := input.FromDate, input.ToDate
	if fromDate != nil && toDate != nil && fromDate.After(*toDate) {
		fromDate, toDate = toDate, fromDate
	}

	reset := &models.AnalyticsReset{
		DistributorID: input.DistributorID,
		ResetAt:       resetAt,
		ResetFromDate: fromDate,
		ResetToDate:   toDate,
		Scopes:        pq.StringArray(input.Scopes),
		CreatedBy:     input.CreatedBy,
	}
	if err := s.repo.CreateReset(ctx, reset); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reset checkpoint")
	}
	return reset, nil
}
