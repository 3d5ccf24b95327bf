// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package device

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
	"github.com/canonical/guard-api/pkg/devicetoken"
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
		r.Get("/api/devices", a.listDevices)
		r.With(a.auth.RequireRole(types.RoleAdmin, types.RoleParent)).Post("/api/devices", a.createDevice)
		r.Get("/api/devices/{deviceID}", a.getDevice)
		r.With(a.auth.RequireRole(types.RoleAdmin, types.RoleParent)).Patch("/api/devices/{deviceID}", a.updateDevice)
		r.With(a.auth.RequireRole(types.RoleAdmin, types.RoleParent)).Delete("/api/devices/{deviceID}", a.deleteDevice)
	})

	// Token endpoints carry their own proof (device uid or refresh
	// token) instead of a bearer credential.
	mux.Post("/api/devices/token", a.issueToken)
	mux.Post("/api/devices/token/refresh", a.refreshToken)
}

func (a *API) listDevices(w http.ResponseWriter, r *http.Request) {
	principal, ok := authentication.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	// Admins see the whole fleet, everyone else their own tenant.
	tenantID := principal.TenantID
	if principal.Role == types.RoleAdmin {
		tenantID = r.URL.Query().Get("tenant_id")
	}

	devices, err := a.service.ListDevices(r.Context(), tenantID)
	if err != nil {
		a.logger.Errorf("failed to list devices: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list devices")
		return
	}

	writeJSON(w, http.StatusOK, devices)
}

type createDeviceRequest struct {
	TenantID    string `json:"tenant_id" validate:"omitempty,uuid"`
	DeviceUID   string `json:"device_uid" validate:"required,min=1,max=200"`
	DeviceName  string `json:"device_name" validate:"required,min=1,max=200"`
	OwnerUserID string `json:"owner_user_id" validate:"omitempty,uuid"`
	OS          string `json:"os" validate:"omitempty,max=50"`
	OSVersion   string `json:"os_version" validate:"omitempty,max=50"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive blocked"`
}

func (a *API) createDevice(w http.ResponseWriter, r *http.Request) {
	principal, ok := authentication.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req createDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Everyone registers into their own tenant; admins may target another.
	tenantID := principal.TenantID
	if principal.Role == types.RoleAdmin && req.TenantID != "" {
		tenantID = req.TenantID
	}

	device, err := a.service.CreateDevice(r.Context(), &types.Device{
		TenantID:    tenantID,
		OwnerUserID: req.OwnerUserID,
		DeviceUID:   req.DeviceUID,
		DeviceName:  req.DeviceName,
		OS:          req.OS,
		OSVersion:   req.OSVersion,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownDeviceStatus):
			writeError(w, http.StatusBadRequest, "unknown device status")
		case errors.Is(err, storage.ErrDuplicateKey):
			writeError(w, http.StatusConflict, "device is already enrolled")
		case errors.Is(err, storage.ErrForeignKeyViolation):
			writeError(w, http.StatusBadRequest, "tenant or owner user does not exist")
		default:
			a.logger.Errorf("failed to create device: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to create device")
		}
		return
	}

	writeJSON(w, http.StatusCreated, device)
}

func (a *API) getDevice(w http.ResponseWriter, r *http.Request) {
	device, ok := a.loadOwnedDevice(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, device)
}

type updateDeviceRequest struct {
	DeviceName  string `json:"device_name" validate:"required,min=1,max=200"`
	OwnerUserID string `json:"owner_user_id" validate:"omitempty,uuid"`
	OS          string `json:"os" validate:"omitempty,max=50"`
	OSVersion   string `json:"os_version" validate:"omitempty,max=50"`
	Status      string `json:"status" validate:"required,oneof=active inactive blocked"`
}

func (a *API) updateDevice(w http.ResponseWriter, r *http.Request) {
	device, ok := a.loadOwnedDevice(w, r)
	if !ok {
		return
	}

	var req updateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	device.DeviceName = req.DeviceName
	device.OwnerUserID = req.OwnerUserID
	device.OS = req.OS
	device.OSVersion = req.OSVersion
	device.Status = req.Status

	updated, err := a.service.UpdateDevice(r.Context(), device)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownDeviceStatus):
			writeError(w, http.StatusBadRequest, "unknown device status")
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "device not found")
		case errors.Is(err, storage.ErrForeignKeyViolation):
			writeError(w, http.StatusBadRequest, "owner user does not exist")
		default:
			a.logger.Errorf("failed to update device: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to update device")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteDevice(w http.ResponseWriter, r *http.Request) {
	device, ok := a.loadOwnedDevice(w, r)
	if !ok {
		return
	}

	if err := a.service.DeleteDevice(r.Context(), device.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "device not found")
			return
		}
		a.logger.Errorf("failed to delete device: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete device")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type issueTokenRequest struct {
	DeviceUID string `json:"device_uid" validate:"required,min=1,max=200"`
}

func (a *API) issueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	creds, err := a.service.IssueCredentials(r.Context(), req.DeviceUID)
	if err != nil {
		if errors.Is(err, devicetoken.ErrDeviceNotFound) {
			writeError(w, http.StatusNotFound, "device is not enrolled")
			return
		}
		a.logger.Errorf("failed to issue device credentials: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to issue credentials")
		return
	}

	writeJSON(w, http.StatusOK, creds)
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type refreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (a *API) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	access, err := a.service.RefreshCredentials(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, devicetoken.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "invalid or expired refresh token")
			return
		}
		a.logger.Errorf("failed to refresh device credentials: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to refresh credentials")
		return
	}

	writeJSON(w, http.StatusOK, refreshTokenResponse{AccessToken: access})
}

// loadOwnedDevice fetches the routed device and enforces tenant
// ownership. It writes the error response itself when access fails.
func (a *API) loadOwnedDevice(w http.ResponseWriter, r *http.Request) (*types.Device, bool) {
	principal, ok := authentication.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return nil, false
	}

	deviceID := chi.URLParam(r, "deviceID")

	device, err := a.service.GetDevice(r.Context(), deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "device not found")
			return nil, false
		}
		a.logger.Errorf("failed to get device: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get device")
		return nil, false
	}

	if principal.Role != types.RoleAdmin && principal.TenantID != device.TenantID {
		writeError(w, http.StatusForbidden, "cannot access another tenant's device")
		return nil, false
	}

	return device, true
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
