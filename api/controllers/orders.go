package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/api/responses"
	"github.com/marisolvega/vendorhub-backend/api/validators"
	ordersvc "github.com/marisolvega/vendorhub-backend/internal/orders"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/logger"
	"github.com/marisolvega/vendorhub-backend/pkg/types"
)

type taxLineRequest struct {
	Type        string  `json:"type" validate:"required,oneof=percent fixed"`
	RatePercent float64 `json:"rate_percent" validate:"gte=0"`
}

type placeOrderRequest struct {
	DistributorID   uuid.UUID        `json:"distributor_id" validate:"required"`
	AdjustmentTotal float64          `json:"adjustment_total"`
	Taxes           []taxLineRequest `json:"taxes" validate:"dive"`
	ApplyCredit     bool             `json:"apply_credit"`
}

type recordPaymentRequest struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Reference *string `json:"reference"`
}

// OrderPlace converts the caller's active cart into an order.
func OrderPlace(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		vendorID, err := vendorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		taxes := make(types.TaxLines, 0, len(payload.Taxes))
		for _, line := range payload.Taxes {
			taxes = append(taxes, types.TaxLine{
				Type:        enums.TaxType(line.Type),
				RatePercent: line.RatePercent,
			})
		}

		order, err := svc.PlaceOrder(r.Context(), ordersvc.PlaceOrderInput{
			VendorID:        vendorID,
			DistributorID:   payload.DistributorID,
			ActorUserID:     userID,
			AdjustmentTotal: payload.AdjustmentTotal,
			Taxes:           taxes,
			ApplyCredit:     payload.ApplyCredit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderFetch returns one of the caller's orders.
func OrderFetch(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		vendorID, err := vendorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := validators.UUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), vendorID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderList lists the caller's orders with a distributor.
func OrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
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
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListOrders(r.Context(), vendorID, distributorID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// OrderRecordPayment records a payment against an order and updates its
// amount due.
func OrderRecordPayment(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := validators.UUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.RecordPaymentInput{
			OrderID:     orderID,
			ActorUserID: userID,
			Amount:      payload.Amount,
			Reference:   payload.Reference,
		}
		// vendors can only pay their own orders; distributor staff record
		// payments across vendors
		if raw := middlewareVendorID(r); raw != uuid.Nil {
			input.VendorID = raw
		}

		order, err := svc.RecordPayment(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func middlewareVendorID(r *http.Request) uuid.UUID {
	id, err := vendorIDFromContext(r)
	if err != nil {
		return uuid.Nil
	}
	return id
}
