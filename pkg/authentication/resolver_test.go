// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

func TestResolver_Resolve(t *testing.T) {
	token := "raw-token"
	parentPrincipal := &types.Principal{Subject: "p-1", Role: types.RoleParent, Provider: types.ProviderConsumer}
	adminPrincipal := &types.Principal{Subject: "a-1", Role: types.RoleAdmin, Provider: types.ProviderEnterprise}
	devicePrincipal := &types.Principal{Subject: "d-1", Role: types.RoleChild, Provider: types.ProviderDevice}

	testCases := []struct {
		name        string
		category    string
		setupMocks  func(consumer, enterprise, device *MockTokenVerifierInterface)
		expected    *types.Principal
		expectedErr bool
	}{
		{
			name:     "parent category dispatches to consumer verifier",
			category: CategoryParent,
			setupMocks: func(consumer, enterprise, device *MockTokenVerifierInterface) {
				consumer.EXPECT().VerifyToken(gomock.Any(), token).Return(parentPrincipal, nil)
			},
			expected: parentPrincipal,
		},
		{
			name:     "admin category dispatches to enterprise verifier",
			category: CategoryAdmin,
			setupMocks: func(consumer, enterprise, device *MockTokenVerifierInterface) {
				enterprise.EXPECT().VerifyToken(gomock.Any(), token).Return(adminPrincipal, nil)
			},
			expected: adminPrincipal,
		},
		{
			name:     "employee category dispatches to enterprise verifier",
			category: CategoryEmployee,
			setupMocks: func(consumer, enterprise, device *MockTokenVerifierInterface) {
				enterprise.EXPECT().VerifyToken(gomock.Any(), token).Return(adminPrincipal, nil)
			},
			expected: adminPrincipal,
		},
		{
			name:     "device category dispatches to device verifier",
			category: CategoryDevice,
			setupMocks: func(consumer, enterprise, device *MockTokenVerifierInterface) {
				device.EXPECT().VerifyToken(gomock.Any(), token).Return(devicePrincipal, nil)
			},
			expected: devicePrincipal,
		},
		{
			name:        "unknown category rejected before verification",
			category:    "superuser",
			setupMocks:  func(consumer, enterprise, device *MockTokenVerifierInterface) {},
			expectedErr: true,
		},
		{
			name:     "verifier error propagates",
			category: CategoryParent,
			setupMocks: func(consumer, enterprise, device *MockTokenVerifierInterface) {
				consumer.EXPECT().VerifyToken(gomock.Any(), token).Return(nil, errors.New("bad signature"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockConsumer := NewMockTokenVerifierInterface(ctrl)
			mockEnterprise := NewMockTokenVerifierInterface(ctrl)
			mockDevice := NewMockTokenVerifierInterface(ctrl)
			tc.setupMocks(mockConsumer, mockEnterprise, mockDevice)

			r := NewResolver(mockConsumer, mockEnterprise, mockDevice, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(""), logging.NewNoopLogger())

			principal, err := r.Resolve(context.Background(), tc.category, token)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if principal.Subject != tc.expected.Subject {
				t.Errorf("expected subject %s, got %s", tc.expected.Subject, principal.Subject)
			}
		})
	}
}
