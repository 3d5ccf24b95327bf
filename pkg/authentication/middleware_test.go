// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

func newTestMiddleware(resolver ResolverInterface) *Middleware {
	return NewMiddleware(resolver, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(""), logging.NewNoopLogger())
}

func TestMiddleware_Authenticate(t *testing.T) {
	principal := &types.Principal{Subject: "user-1", Role: types.RoleParent, Provider: types.ProviderConsumer}

	testCases := []struct {
		name           string
		authHeader     string
		userTypeHeader string
		setupMocks     func(*MockResolverInterface)
		expectedStatus int
	}{
		{
			name:           "missing authorization header",
			setupMocks:     func(r *MockResolverInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non-bearer authorization header",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMocks:     func(r *MockResolverInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMocks: func(r *MockResolverInterface) {
				r.EXPECT().Resolve(gomock.Any(), CategoryParent, "bad-token").Return(nil, errors.New("invalid"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing category defaults to parent",
			authHeader: "Bearer good-token",
			setupMocks: func(r *MockResolverInterface) {
				r.EXPECT().Resolve(gomock.Any(), CategoryParent, "good-token").Return(principal, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "declared category is forwarded",
			authHeader:     "Bearer good-token",
			userTypeHeader: CategoryAdmin,
			setupMocks: func(r *MockResolverInterface) {
				r.EXPECT().Resolve(gomock.Any(), CategoryAdmin, "good-token").Return(principal, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockResolver := NewMockResolverInterface(ctrl)
			tc.setupMocks(mockResolver)

			m := newTestMiddleware(mockResolver)

			var gotPrincipal *types.Principal
			handler := m.Authenticate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPrincipal, _ = PrincipalFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/parent", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			if tc.userTypeHeader != "" {
				req.Header.Set(UserTypeHeader, tc.userTypeHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}

			if tc.expectedStatus == http.StatusOK {
				if gotPrincipal == nil {
					t.Fatal("expected principal in request context")
				}
				if gotPrincipal.Subject != principal.Subject {
					t.Errorf("expected subject %s, got %s", principal.Subject, gotPrincipal.Subject)
				}
			}
		})
	}
}

func TestMiddleware_RequireRole(t *testing.T) {
	testCases := []struct {
		name           string
		principal      *types.Principal
		roles          []string
		expectedStatus int
	}{
		{
			name:           "allowed role",
			principal:      &types.Principal{Subject: "a-1", Role: types.RoleAdmin},
			roles:          []string{types.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "one of several roles",
			principal:      &types.Principal{Subject: "e-1", Role: types.RoleEmployee},
			roles:          []string{types.RoleAdmin, types.RoleEmployee},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong role",
			principal:      &types.Principal{Subject: "p-1", Role: types.RoleParent},
			roles:          []string{types.RoleAdmin},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "no principal",
			roles:          []string{types.RoleAdmin},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newTestMiddleware(NewMockResolverInterface(ctrl))

			handler := m.RequireRole(tc.roles...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/tenants", nil)
			if tc.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), tc.principal))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}
