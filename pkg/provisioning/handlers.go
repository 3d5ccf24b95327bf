// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/types"
	"github.com/canonical/guard-api/pkg/authentication"
	"github.com/canonical/guard-api/pkg/invites"
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
		r.With(a.auth.RequireRole(types.RoleAdmin, types.RoleParent)).Post("/api/tenants", a.createTenant)
		r.Post("/api/parent", a.autoProvision)
		r.Post("/invites/accept", a.acceptInvite)
		r.With(a.auth.RequireRole(types.RoleAdmin, types.RoleParent)).Post("/api/tenants/{tenantID}/devices/enroll", a.enrollDevice)
	})
}

type createTenantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type tenantAndOwnerResponse struct {
	Tenant *types.Tenant `json:"tenant"`
	User   *types.User   `json:"user"`
}

func (a *API) createTenant(w http.ResponseWriter, r *http.Request) {
	principal, ok := authentication.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, user, err := a.service.ProvisionTenantAndOwner(r.Context(), req.Name, principal)
	if err != nil {
		if errors.Is(err, ErrAlreadyProvisioned) {
			writeError(w, http.StatusConflict, "identity is already provisioned")
			return
		}
		a.logger.Errorf("failed to provision tenant: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to provision tenant")
		return
	}

	writeJSON(w, http.StatusCreated, tenantAndOwnerResponse{Tenant: tenant, User: user})
}

func (a *API) autoProvision(w http.ResponseWriter, r *http.Request) {
	principal, ok := authentication.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	tenant, user, err := a.service.AutoProvisionFromIdentity(r.Context(), principal)
	if err != nil {
		if errors.Is(err, ErrAlreadyProvisioned) {
			writeError(w, http.StatusConflict, "email is already provisioned")
			return
		}
		a.logger.Errorf("failed to auto-provision identity %s: %v", principal.Subject, err)
		writeError(w, http.StatusInternalServerError, "failed to provision account")
		return
	}

	writeJSON(w, http.StatusCreated, tenantAndOwnerResponse{Tenant: tenant, User: user})
}

type acceptInviteRequest struct {
	TenantID   string `json:"tenant_id" validate:"required,uuid"`
	InviteCode string `json:"invite_code" validate:"required,len=6"`
}

func (a *API) acceptInvite(w http.ResponseWriter, r *http.Request) {
	principal, ok := authentication.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req acceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.service.RedeemParentInvite(r.Context(), req.TenantID, req.InviteCode, principal)
	if err != nil {
		switch {
		case errors.Is(err, invites.ErrInviteInvalid):
			writeError(w, http.StatusBadRequest, "invite code is invalid")
		case errors.Is(err, ErrAlreadyProvisioned):
			writeError(w, http.StatusConflict, "identity is already provisioned")
		default:
			a.logger.Errorf("failed to accept invite: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to accept invite")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

type enrollDeviceRequest struct {
	InviteCode  string `json:"invite_code" validate:"required,len=6"`
	DeviceUID   string `json:"device_uid" validate:"required,min=1,max=200"`
	DeviceName  string `json:"device_name" validate:"required,min=1,max=200"`
	OS          string `json:"os" validate:"omitempty,max=50"`
	OSVersion   string `json:"os_version" validate:"omitempty,max=50"`
	OwnerUserID string `json:"owner_user_id" validate:"omitempty,uuid"`
}

func (a *API) enrollDevice(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	var req enrollDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	device, err := a.service.RedeemDeviceInvite(r.Context(), tenantID, req.InviteCode, &DeviceEnrollment{
		DeviceUID:   req.DeviceUID,
		DeviceName:  req.DeviceName,
		OS:          req.OS,
		OSVersion:   req.OSVersion,
		OwnerUserID: req.OwnerUserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, invites.ErrInviteInvalid):
			writeError(w, http.StatusBadRequest, "invite code is invalid")
		case errors.Is(err, ErrDeviceEnrolled):
			writeError(w, http.StatusConflict, "device is already enrolled")
		default:
			a.logger.Errorf("failed to enroll device: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to enroll device")
		}
		return
	}

	writeJSON(w, http.StatusCreated, device)
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
