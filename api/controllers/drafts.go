package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/api/responses"
	"github.com/marisolvega/vendorhub-backend/api/validators"
	draftsvc "github.com/marisolvega/vendorhub-backend/internal/drafts"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/logger"
)

type saveDraftRequest struct {
	DraftID       *uuid.UUID      `json:"draft_id"`
	DistributorID uuid.UUID       `json:"distributor_id" validate:"required"`
	Name          *string         `json:"name"`
	Currency      string          `json:"currency"`
	Note          any             `json:"note"`
	CartPayload   json.RawMessage `json:"cart_payload"`
}

// DraftSave creates or overwrites a draft for the calling vendor.
func DraftSave(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}

		vendorID, err := vendorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload saveDraftRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.SaveDraft(r.Context(), draftsvc.SaveDraftInput{
			DraftID:       payload.DraftID,
			VendorID:      vendorID,
			DistributorID: payload.DistributorID,
			Name:          payload.Name,
			Currency:      payload.Currency,
			Note:          payload.Note,
			Payload:       payload.CartPayload,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, draft)
	}
}

// DraftList lists the vendor's active drafts for a distributor.
func DraftList(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}

		vendorID, err := vendorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		distributorID, err := validators.ParseQueryUUID(r, "distributor_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drafts, err := svc.ListDrafts(r.Context(), vendorID, distributorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, drafts)
	}
}

// DraftFetch returns one draft owned by the caller.
func DraftFetch(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}

		vendorID, err := vendorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draftID, err := validators.UUIDParam(r, "draftID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.GetDraft(r.Context(), vendorID, draftID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// DraftDelete removes a draft owned by the caller.
func DraftDelete(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}

		vendorID, err := vendorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draftID, err := validators.UUIDParam(r, "draftID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteDraft(r.Context(), vendorID, draftID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// DraftResume merges a draft's payload into the active cart.
func DraftResume(svc draftsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}

		vendorID, err := vendorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draftID, err := validators.UUIDParam(r, "draftID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.ResumeDraft(r.Context(), vendorID, draftID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
