// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package device

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
	"github.com/canonical/guard-api/pkg/authentication"
	"github.com/canonical/guard-api/pkg/devicetoken"
)

func newHandlerTestAPI(service ServiceInterface, ctrl *gomock.Controller) *API {
	auth := authentication.NewMiddleware(
		authentication.NewMockResolverInterface(ctrl),
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(""),
		logging.NewNoopLogger(),
	)
	return NewAPI(service, auth, logging.NewNoopLogger())
}

func deviceRequest(method, target, body, deviceID string, p *types.Principal) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rctx := chi.NewRouteContext()
	if deviceID != "" {
		rctx.URLParams.Add("deviceID", deviceID)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	if p != nil {
		req = req.WithContext(authentication.WithPrincipal(req.Context(), p))
	}
	return req
}

func TestAPI_ListDevices(t *testing.T) {
	parent := &types.Principal{Subject: "p-1", Role: types.RoleParent, TenantID: "tenant-1"}
	admin := &types.Principal{Subject: "a-1", Role: types.RoleAdmin, TenantID: "staff"}
	devices := []*types.Device{{ID: "d-1", TenantID: "tenant-1", DeviceUID: "uid-1"}}

	testCases := []struct {
		name           string
		target         string
		principal      *types.Principal
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:      "parent scoped to own tenant",
			target:    "/api/devices",
			principal: parent,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListDevices(gomock.Any(), "tenant-1").Return(devices, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "admin picks tenant via query",
			target:    "/api/devices?tenant_id=tenant-2",
			principal: admin,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListDevices(gomock.Any(), "tenant-2").Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "service error",
			target:    "/api/devices",
			principal: parent,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListDevices(gomock.Any(), "tenant-1").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)
			api := newHandlerTestAPI(mockService, ctrl)

			rec := httptest.NewRecorder()
			api.listDevices(rec, deviceRequest(http.MethodGet, tc.target, "", "", tc.principal))

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_CreateDevice(t *testing.T) {
	parent := &types.Principal{Subject: "p-1", Role: types.RoleParent, TenantID: "tenant-1"}
	admin := &types.Principal{Subject: "a-1", Role: types.RoleAdmin, TenantID: "staff"}
	device := &types.Device{ID: "d-1", TenantID: "tenant-1", DeviceUID: "uid-1", Status: types.DeviceActive}

	validBody := `{"device_uid": "uid-1", "device_name": "Kid tablet", "os": "android"}`

	testCases := []struct {
		name           string
		body           string
		principal      *types.Principal
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:      "parent registers into own tenant",
			body:      validBody,
			principal: parent,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateDevice(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, d *types.Device) (*types.Device, error) {
						if d.TenantID != parent.TenantID {
							return nil, errors.New("device must land in the caller's tenant")
						}
						return device, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:      "admin targets another tenant",
			body:      `{"tenant_id": "0191e0b5-2c1a-7f3e-9c3a-1a2b3c4d5e6f", "device_uid": "uid-1", "device_name": "Kid tablet"}`,
			principal: admin,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateDevice(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, d *types.Device) (*types.Device, error) {
						if d.TenantID != "0191e0b5-2c1a-7f3e-9c3a-1a2b3c4d5e6f" {
							return nil, errors.New("admin tenant override not forwarded")
						}
						return device, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:      "duplicate uid",
			body:      validBody,
			principal: parent,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateDevice(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing device uid",
			body:           `{"device_name": "Kid tablet"}`,
			principal:      parent,
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing principal",
			body:           validBody,
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)
			api := newHandlerTestAPI(mockService, ctrl)

			rec := httptest.NewRecorder()
			api.createDevice(rec, deviceRequest(http.MethodPost, "/api/devices", tc.body, "", tc.principal))

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_GetDevice(t *testing.T) {
	deviceID := "d-1"
	parent := &types.Principal{Subject: "p-1", Role: types.RoleParent, TenantID: "tenant-1"}
	admin := &types.Principal{Subject: "a-1", Role: types.RoleAdmin, TenantID: "staff"}
	outsider := &types.Principal{Subject: "p-2", Role: types.RoleParent, TenantID: "tenant-2"}
	device := &types.Device{ID: deviceID, TenantID: "tenant-1", DeviceUID: "uid-1", Status: types.DeviceActive}

	testCases := []struct {
		name           string
		principal      *types.Principal
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:      "own tenant",
			principal: parent,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(device, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "admin can read any device",
			principal: admin,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(device, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "foreign tenant forbidden",
			principal: outsider,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(device, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:      "not found",
			principal: parent,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "no principal",
			principal:      nil,
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)
			api := newHandlerTestAPI(mockService, ctrl)

			rec := httptest.NewRecorder()
			api.getDevice(rec, deviceRequest(http.MethodGet, "/api/devices/"+deviceID, "", deviceID, tc.principal))

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_UpdateDevice(t *testing.T) {
	deviceID := "d-1"
	parent := &types.Principal{Subject: "p-1", Role: types.RoleParent, TenantID: "tenant-1"}
	device := &types.Device{ID: deviceID, TenantID: "tenant-1", DeviceUID: "uid-1", Status: types.DeviceActive}

	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"device_name": "Kid tablet", "status": "blocked"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(device, nil)
				s.EXPECT().UpdateDevice(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, d *types.Device) (*types.Device, error) {
						if d.Status != types.DeviceBlocked {
							t.Errorf("expected status %q, got %q", types.DeviceBlocked, d.Status)
						}
						return d, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "status outside whitelist",
			body: `{"device_name": "Kid tablet", "status": "quarantined"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(device, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid body",
			body: `{`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(device, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown owner user",
			body: `{"device_name": "Kid tablet", "owner_user_id": "8b3f8f2e-6f47-4cbb-9f20-0e4c2a2ff001", "status": "active"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(device, nil)
				s.EXPECT().UpdateDevice(gomock.Any(), gomock.Any()).Return(nil, storage.ErrForeignKeyViolation)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)
			api := newHandlerTestAPI(mockService, ctrl)

			rec := httptest.NewRecorder()
			api.updateDevice(rec, deviceRequest(http.MethodPatch, "/api/devices/"+deviceID, tc.body, deviceID, parent))

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_DeleteDevice(t *testing.T) {
	deviceID := "d-1"
	parent := &types.Principal{Subject: "p-1", Role: types.RoleParent, TenantID: "tenant-1"}
	device := &types.Device{ID: deviceID, TenantID: "tenant-1"}

	testCases := []struct {
		name           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(device, nil)
				s.EXPECT().DeleteDevice(gomock.Any(), deviceID).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "deleted between read and delete",
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetDevice(gomock.Any(), deviceID).Return(device, nil)
				s.EXPECT().DeleteDevice(gomock.Any(), deviceID).Return(storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)
			api := newHandlerTestAPI(mockService, ctrl)

			rec := httptest.NewRecorder()
			api.deleteDevice(rec, deviceRequest(http.MethodDelete, "/api/devices/"+deviceID, "", deviceID, parent))

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_IssueToken(t *testing.T) {
	creds := &devicetoken.Credentials{AccessToken: "access", RefreshToken: "refresh"}

	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"device_uid": "uid-1"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().IssueCredentials(gomock.Any(), "uid-1").Return(creds, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown device",
			body: `{"device_uid": "uid-missing"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().IssueCredentials(gomock.Any(), "uid-missing").Return(nil, devicetoken.ErrDeviceNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing device uid",
			body:           `{}`,
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)
			api := newHandlerTestAPI(mockService, ctrl)

			rec := httptest.NewRecorder()
			api.issueToken(rec, deviceRequest(http.MethodPost, "/api/devices/token", tc.body, "", nil))

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}

			if tc.expectedStatus == http.StatusOK {
				var got devicetoken.Credentials
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if got.AccessToken != creds.AccessToken || got.RefreshToken != creds.RefreshToken {
					t.Errorf("unexpected credentials in response: %+v", got)
				}
			}
		})
	}
}

func TestAPI_RefreshToken(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"refreshToken": "refresh"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().RefreshCredentials(gomock.Any(), "refresh").Return("new-access", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid refresh token",
			body: `{"refreshToken": "stale"}`,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().RefreshCredentials(gomock.Any(), "stale").Return("", devicetoken.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing refresh token",
			body:           `{}`,
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)
			api := newHandlerTestAPI(mockService, ctrl)

			rec := httptest.NewRecorder()
			api.refreshToken(rec, deviceRequest(http.MethodPost, "/api/devices/token/refresh", tc.body, "", nil))

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}

			if tc.expectedStatus == http.StatusOK {
				var got refreshTokenResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if got.AccessToken != "new-access" {
					t.Errorf("expected access token %q, got %q", "new-access", got.AccessToken)
				}
			}
		})
	}
}
