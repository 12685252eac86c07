package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/api/middleware"
	pkgerrors "github.com/marisolvega/vendorhub-backend/pkg/errors"
)

func vendorIDFromContext(r *http.Request) (uuid.UUID, error) {
	return scopeID(middleware.VendorIDFromContext(r.Context()), "vendor")
}

func distributorIDFromContext(r *http.Request) (uuid.UUID, error) {
	return scopeID(middleware.DistributorIDFromContext(r.Context()), "distributor")
}

func userIDFromContext(r *http.Request) (uuid.UUID, error) {
	return scopeID(middleware.UserIDFromContext(r.Context()), "user")
}

func scopeID(raw, scope string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, scope+" context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+scope+" id")
	}
	return id, nil
}
