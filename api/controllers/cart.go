package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/api/responses"
	"github.com/marisolvega/vendorhub-backend/api/validators"
	cartsvc "github.com/marisolvega/vendorhub-backend/internal/cart"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/logger"
)

type cartItemRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	Name         string    `json:"name"`
	OrderUnit    string    `json:"order_unit" validate:"required,oneof=piece case"`
	Qty          int       `json:"qty" validate:"required,gt=0"`
	UnitPrice    float64   `json:"unit_price" validate:"gte=0"`
	CasePrice    *float64  `json:"case_price"`
	UnitsPerCase *int      `json:"units_per_case"`
}

type cartDecrementRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	OrderUnit string    `json:"order_unit" validate:"required,oneof=piece case"`
	Qty       int       `json:"qty" validate:"required,gt=0"`
}

// CartFetch returns the caller's active cart for a distributor.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
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

		record, err := svc.GetActiveCart(r.Context(), vendorID, distributorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// CartAddItem adds or increments a line in the active cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
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

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AddItem(r.Context(), vendorID, distributorID, cartsvc.AddItemInput{
			ProductID:    payload.ProductID,
			Name:         payload.Name,
			Unit:         enums.OrderUnit(payload.OrderUnit),
			Qty:          payload.Qty,
			UnitPrice:    payload.UnitPrice,
			CasePrice:    payload.CasePrice,
			UnitsPerCase: payload.UnitsPerCase,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// CartDecrementItem reduces or removes a line in the active cart.
func CartDecrementItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
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

		var payload cartDecrementRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.DecrementItem(r.Context(), vendorID, distributorID, cartsvc.DecrementItemInput{
			ProductID: payload.ProductID,
			Unit:      enums.OrderUnit(payload.OrderUnit),
			Qty:       payload.Qty,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
