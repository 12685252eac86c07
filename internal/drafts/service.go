package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marisolvega/vendorhub-backend/internal/cart"
	"github.com/marisolvega/vendorhub-backend/pkg/db"
	"github.com/marisolvega/vendorhub-backend/pkg/db/models"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
)

// cartMerger is the slice of the cart service a draft resume needs.
type cartMerger interface {
	MergeIntoActiveCart(ctx context.Context, vendorID, distributorID uuid.UUID, incoming []cart.Line) (*models.CartRecord, error)
}

// Service covers the save/resume workflow for in-progress carts. The
// backing table ships in a later migration than the rest of the schema, so
// every operation maps schema-not-ready database errors onto a distinct
// "feature not ready" condition instead of a generic failure.
type Service interface {
	SaveDraft(ctx context.Context, input SaveDraftInput) (*models.DraftOrder, error)
	ListDrafts(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.DraftOrder, error)
	GetDraft(ctx context.Context, vendorID, draftID uuid.UUID) (*models.DraftOrder, error)
	DeleteDraft(ctx context.Context, vendorID, draftID uuid.UUID) error
	ResumeDraft(ctx context.Context, vendorID, draftID uuid.UUID) (*models.CartRecord, error)
}

// SaveDraftInput carries an untrusted draft snapshot from the client.
// DraftID selects an existing draft to overwrite; nil creates a new one.
type SaveDraftInput struct {
	DraftID       *uuid.UUID
	VendorID      uuid.UUID
	DistributorID uuid.UUID
	Name          *string
	Currency      string
	Note          any
	Payload       json.RawMessage
}

type service struct {
	repo  Repository
	carts cartMerger
}

// NewService wires the draft service with its repository and the cart
// service used for resume.
func NewService(repo Repository, carts cartMerger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("draft repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	return &service{repo: repo, carts: carts}, nil
}

func (s *service) SaveDraft(ctx context.Context, input SaveDraftInput) (*models.DraftOrder, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context required")
	}
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id is required")
	}
	note, reason := ValidateNote(input.Note)
	if reason != "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, reason)
	}

	lines := NormalizePayload(input.Payload)
	payload, err := json.Marshal(payloadEnvelope{Items: rawLinesFrom(lines)})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode draft payload")
	}
	subtotal := cart.Subtotal(lines)

	draft := &models.DraftOrder{
		VendorID:         input.VendorID,
		DistributorID:    input.DistributorID,
		Name:             SanitizeName(input.Name),
		Status:           enums.DraftStatusActive,
		Currency:         SanitizeCurrency(input.Currency),
		CartPayload:      payload,
		SubtotalSnapshot: &subtotal,
		Note:             note,
	}

	if input.DraftID != nil {
		existing, err := s.ownedDraft(ctx, input.VendorID, *input.DraftID)
		if err != nil {
			return nil, err
		}
		draft.ID = existing.ID
		draft.CreatedAt = existing.CreatedAt
		if err := s.repo.Update(ctx, draft); err != nil {
			return nil, s.storeError(err, "update draft")
		}
		return draft, nil
	}

	if err := s.repo.Create(ctx, draft); err != nil {
		return nil, s.storeError(err, "create draft")
	}
	return draft, nil
}

func (s *service) ListDrafts(ctx context.Context, vendorID, distributorID uuid.UUID) ([]models.DraftOrder, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context required")
	}
	if distributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id is required")
	}
	out, err := s.repo.ListByVendor(ctx, vendorID, distributorID)
	if err != nil {
		// listing degrades to empty before the table exists; only save and
		// resume surface the pending-setup condition to the caller
		if db.IsSchemaNotReady(err) {
			return []models.DraftOrder{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drafts")
	}
	return out, nil
}

func (s *service) GetDraft(ctx context.Context, vendorID, draftID uuid.UUID) (*models.DraftOrder, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context required")
	}
	return s.ownedDraft(ctx, vendorID, draftID)
}

func (s *service) DeleteDraft(ctx context.Context, vendorID, draftID uuid.UUID) error {
	if vendorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "vendor context required")
	}
	draft, err := s.ownedDraft(ctx, vendorID, draftID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, draft.ID); err != nil {
		return s.storeError(err, "delete draft")
	}
	return nil
}

func (s *service) ResumeDraft(ctx context.Context, vendorID, draftID uuid.UUID) (*models.CartRecord, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context required")
	}
	draft, err := s.ownedDraft(ctx, vendorID, draftID)
	if err != nil {
		return nil, err
	}
	lines := NormalizePayload(draft.CartPayload)
	return s.carts.MergeIntoActiveCart(ctx, vendorID, draft.DistributorID, lines)
}

func (s *service) ownedDraft(ctx context.Context, vendorID, draftID uuid.UUID) (*models.DraftOrder, error) {
	if draftID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft id is required")
	}
	draft, err := s.repo.FindByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft not found")
		}
		return nil, s.storeError(err, "load draft")
	}
	if draft.VendorID != vendorID {
		// drafts are never shared across vendors; existence is not revealed
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft not found")
	}
	return draft, nil
}

func (s *service) storeError(err error, action string) error {
	if db.IsSchemaNotReady(err) {
		return pkgerrors.Wrap(pkgerrors.CodeFeatureNotReady, err, action)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func rawLinesFrom(lines []cart.Line) []cart.RawLine {
	out := make([]cart.RawLine, 0, len(lines))
	for _, line := range lines {
		raw := cart.RawLine{
			ProductID:    line.ProductID.String(),
			Name:         line.Name,
			Unit:         line.Unit.String(),
			Qty:          line.Qty,
			UnitPrice:    line.UnitPrice,
			UnitsPerCase: line.UnitsPerCase,
		}
		if line.UnitPriceSnapshot != nil {
			raw.UnitPriceSnapshot = *line.UnitPriceSnapshot
		}
		if line.CasePriceSnapshot != nil {
			raw.CasePriceSnapshot = *line.CasePriceSnapshot
		}
		out = append(out, raw)
	}
	return out
}
