// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/types"
	"github.com/canonical/guard-api/pkg/authentication"
)

type API struct {
	service  ServiceInterface
	auth     *authentication.Middleware
	validate *validator.Validate
	logger   logging.LoggerInterface
}

func NewAPI(service ServiceInterface, auth *authentication.Middleware, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		auth:     auth,
		validate: validator.New(),
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Group(func(r chi.Router) {
		r.Use(a.auth.Authenticate())
		r.With(a.auth.RequireRole(types.RoleAdmin)).Get("/api/tenants", a.listTenants)
		r.Get("/api/tenants/{tenantID}", a.getTenant)
		r.With(a.auth.RequireRole(types.RoleAdmin, types.RoleParent)).Patch("/api/tenants/{tenantID}", a.renameTenant)
		r.With(a.auth.RequireRole(types.RoleAdmin, types.RoleParent)).Post("/api/tenants/{tenantID}/subscription", a.setSubscription)
		r.With(a.auth.RequireRole(types.RoleAdmin)).Delete("/api/tenants/{tenantID}", a.deleteTenant)
	})
}

func (a *API) listTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := a.service.ListTenants(r.Context())
	if err != nil {
		a.logger.Errorf("failed to list tenants: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list tenants")
		return
	}

	writeJSON(w, http.StatusOK, tenants)
}

func (a *API) getTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	if !a.canAccessTenant(r, tenantID) {
		writeError(w, http.StatusForbidden, "cannot access another tenant")
		return
	}

	tenant, err := a.service.GetTenant(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		a.logger.Errorf("failed to get tenant: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get tenant")
		return
	}

	writeJSON(w, http.StatusOK, tenant)
}

type renameTenantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

func (a *API) renameTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	if !a.canAccessTenant(r, tenantID) {
		writeError(w, http.StatusForbidden, "cannot access another tenant")
		return
	}

	var req renameTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := a.service.RenameTenant(r.Context(), tenantID, req.Name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		a.logger.Errorf("failed to rename tenant: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to rename tenant")
		return
	}

	writeJSON(w, http.StatusOK, tenant)
}

type setSubscriptionRequest struct {
	Status string `json:"status" validate:"required"`
	PlanID string `json:"plan_id" validate:"omitempty,max=100"`
}

func (a *API) setSubscription(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	if !a.canAccessTenant(r, tenantID) {
		writeError(w, http.StatusForbidden, "cannot access another tenant")
		return
	}

	var req setSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := a.service.SetSubscription(r.Context(), tenantID, req.Status, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownSubscriptionStatus):
			writeError(w, http.StatusBadRequest, "unknown subscription status")
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "tenant not found")
		default:
			a.logger.Errorf("failed to set subscription: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to set subscription")
		}
		return
	}

	writeJSON(w, http.StatusOK, tenant)
}

func (a *API) deleteTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	if err := a.service.DeleteTenant(r.Context(), tenantID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		a.logger.Errorf("failed to delete tenant: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete tenant")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// canAccessTenant allows admins everywhere and everyone else only
// within their own tenant.
func (a *API) canAccessTenant(r *http.Request, tenantID string) bool {
	principal, ok := authentication.PrincipalFrom(r.Context())
	if !ok {
		return false
	}
	if principal.Role == types.RoleAdmin {
		return true
	}
	return principal.TenantID == tenantID
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  status,
		"message": message,
	})
}
