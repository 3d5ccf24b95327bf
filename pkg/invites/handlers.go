// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

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
		r.With(a.auth.RequireRole(types.RoleAdmin, types.RoleParent)).Post("/api/tenants/{tenantID}/invites", a.createInvite)
	})
}

type createInviteRequest struct {
	InviteType   string `json:"invite_type" validate:"required,oneof=parent device"`
	InviteeEmail string `json:"invitee_email" validate:"omitempty,email"`
}

func (a *API) createInvite(w http.ResponseWriter, r *http.Request) {
	principal, ok := authentication.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	tenantID := chi.URLParam(r, "tenantID")

	// Callers can only mint invites for their own tenant.
	if principal.TenantID != tenantID {
		writeError(w, http.StatusForbidden, "cannot create invites for another tenant")
		return
	}

	var req createInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	invite, err := a.service.CreateInvite(r.Context(), tenantID, req.InviteType, req.InviteeEmail, principal.Subject)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailRequired):
			writeError(w, http.StatusBadRequest, "parent invites require an invitee email")
		case errors.Is(err, storage.ErrForeignKeyViolation):
			writeError(w, http.StatusNotFound, "tenant not found")
		default:
			a.logger.Errorf("failed to create invite: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to create invite")
		}
		return
	}

	writeJSON(w, http.StatusCreated, invite)
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
