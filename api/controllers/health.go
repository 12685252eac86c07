package controllers

import (
	"context"
	"net/http"

	"github.com/marisolvega/vendorhub-backend/api/responses"
	"github.com/marisolvega/vendorhub-backend/pkg/config"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
	"github.com/marisolvega/vendorhub-backend/pkg/logger"
)

// Probe checks one dependency for the readiness endpoint.
type Probe func(ctx context.Context) error

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VendorHub-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, probes map[string]Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VendorHub-Env", cfg.App.Env)
		for name, probe := range probes {
			if probe == nil {
				continue
			}
			if err := probe(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
