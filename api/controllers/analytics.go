package controllers

import (
	"net/http"
	"time"

	"github.com/marisolvega/vendorhub-backend/api/responses"
	"github.com/marisolvega/vendorhub-backend/api/validators"
	analyticssvc "github.com/marisolvega/vendorhub-backend/internal/analytics"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/logger"
)

type resetAnalyticsRequest struct {
	FromDate *time.Time `json:"from_date"`
	ToDate   *time.Time `json:"to_date"`
	Scopes   []string   `json:"scopes"`
}

// AnalyticsProfit returns the distributor's profit rollup for a window,
// adjusted for the latest reset checkpoint.
func AnalyticsProfit(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		distributorID, err := distributorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.ProfitReport(r.Context(), distributorID, analyticssvc.Range{From: from, To: to})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// AnalyticsReset records a new reporting checkpoint for the distributor.
func AnalyticsReset(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
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

		var payload resetAnalyticsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reset, err := svc.ResetAnalytics(r.Context(), analyticssvc.ResetInput{
			DistributorID: distributorID,
			CreatedBy:     userID,
			FromDate:      payload.FromDate,
			ToDate:        payload.ToDate,
			Scopes:        payload.Scopes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, reset)
	}
}
