package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/api/responses"
	"github.com/marisolvega/vendorhub-backend/api/validators"
	ledgersvc "github.com/marisolvega/vendorhub-backend/internal/ledger"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/logger"
)

type creditGrantRequest struct {
	VendorID uuid.UUID       `json:"vendor_id" validate:"required"`
	Type     string          `json:"type" validate:"required,oneof=credit_add credit_deduct credit_reversal"`
	Amount   float64         `json:"amount" validate:"required,gt=0"`
	Metadata json.RawMessage `json:"metadata"`
}

// CreditGrant appends a manual ledger entry for a vendor. Distributor
// staff use this for goodwill credits, corrections and reversals;
// credit_apply entries are only ever written by order placement.
func CreditGrant(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		distributorID, err := distributorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload creditGrantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Record(r.Context(), ledgersvc.RecordEntryInput{
			VendorID:      payload.VendorID,
			DistributorID: distributorID,
			ActorUserID:   userID,
			Type:          enums.CreditEntryType(payload.Type),
			Amount:        payload.Amount,
			Metadata:      payload.Metadata,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// CreditBalance returns the vendor's current balance with a distributor.
func CreditBalance(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		vendorID, err := vendorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		distributorID, err := validators.UUIDParam(r, "distributorID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		balance, err := svc.BalanceFor(r.Context(), vendorID, distributorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"vendor_id":      vendorID,
			"distributor_id": distributorID,
			"balance":        balance,
		})
	}
}

// CreditEntries lists the vendor's ledger entries with a distributor in
// append order.
func CreditEntries(svc ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		vendorID, err := vendorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		distributorID, err := validators.UUIDParam(r, "distributorID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.ListEntries(r.Context(), vendorID, distributorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
