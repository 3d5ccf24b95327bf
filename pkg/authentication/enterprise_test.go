// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/guard-api/internal/directory"
	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_authentication.go -source=./interfaces.go

func newEnterpriseVerifier(d DirectoryInterface, s StorageInterface) *EnterpriseVerifier {
	return NewEnterpriseVerifier(d, s, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(""), logging.NewNoopLogger())
}

func TestEnterpriseVerifier_VerifyToken(t *testing.T) {
	validToken := "aaa.bbb.ccc"
	tenant := &types.Tenant{ID: "tenant-1", Name: "Acme"}

	testCases := []struct {
		name         string
		token        string
		setupMocks   func(*MockDirectoryInterface, *MockStorageInterface)
		expectedRole string
		expectedTID  string
		expectedErr  bool
	}{
		{
			name:        "malformed token rejected without directory call",
			token:       "not-a-jwt",
			setupMocks:  func(d *MockDirectoryInterface, s *MockStorageInterface) {},
			expectedErr: true,
		},
		{
			name:  "directory error",
			token: validToken,
			setupMocks: func(d *MockDirectoryInterface, s *MockStorageInterface) {
				d.EXPECT().GetProfile(gomock.Any(), validToken).Return(nil, errors.New("401 from directory"))
			},
			expectedErr: true,
		},
		{
			name:  "profile without id rejected",
			token: validToken,
			setupMocks: func(d *MockDirectoryInterface, s *MockStorageInterface) {
				d.EXPECT().GetProfile(gomock.Any(), validToken).Return(&directory.Profile{}, nil)
			},
			expectedErr: true,
		},
		{
			name:  "manager job title resolves to admin",
			token: validToken,
			setupMocks: func(d *MockDirectoryInterface, s *MockStorageInterface) {
				d.EXPECT().GetProfile(gomock.Any(), validToken).Return(&directory.Profile{
					ID:       "ext-1",
					Mail:     "boss@acme.test",
					JobTitle: "Engineering Manager",
				}, nil)
				s.EXPECT().GetTenantByUserEmail(gomock.Any(), "boss@acme.test").Return(tenant, nil)
				s.EXPECT().UpsertShadowIdentity(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedRole: types.RoleAdmin,
			expectedTID:  tenant.ID,
		},
		{
			name:  "plain job title resolves to employee",
			token: validToken,
			setupMocks: func(d *MockDirectoryInterface, s *MockStorageInterface) {
				d.EXPECT().GetProfile(gomock.Any(), validToken).Return(&directory.Profile{
					ID:                "ext-2",
					UserPrincipalName: "dev@acme.test",
					JobTitle:          "Software Engineer",
				}, nil)
				s.EXPECT().GetTenantByUserEmail(gomock.Any(), "dev@acme.test").Return(nil, storage.ErrNotFound)
				s.EXPECT().UpsertShadowIdentity(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedRole: types.RoleEmployee,
			expectedTID:  "",
		},
		{
			name:  "shadow upsert failure does not gate authentication",
			token: validToken,
			setupMocks: func(d *MockDirectoryInterface, s *MockStorageInterface) {
				d.EXPECT().GetProfile(gomock.Any(), validToken).Return(&directory.Profile{
					ID:   "ext-3",
					Mail: "dir@acme.test",
				}, nil)
				s.EXPECT().GetTenantByUserEmail(gomock.Any(), "dir@acme.test").Return(tenant, nil)
				s.EXPECT().UpsertShadowIdentity(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			expectedRole: types.RoleEmployee,
			expectedTID:  tenant.ID,
		},
		{
			name:  "tenant lookup error fails verification",
			token: validToken,
			setupMocks: func(d *MockDirectoryInterface, s *MockStorageInterface) {
				d.EXPECT().GetProfile(gomock.Any(), validToken).Return(&directory.Profile{
					ID:   "ext-4",
					Mail: "dir@acme.test",
				}, nil)
				s.EXPECT().GetTenantByUserEmail(gomock.Any(), "dir@acme.test").Return(nil, errors.New("db error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDirectory := NewMockDirectoryInterface(ctrl)
			mockStorage := NewMockStorageInterface(ctrl)
			tc.setupMocks(mockDirectory, mockStorage)

			v := newEnterpriseVerifier(mockDirectory, mockStorage)

			principal, err := v.VerifyToken(context.Background(), tc.token)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if principal.Provider != types.ProviderEnterprise {
				t.Errorf("expected provider %s, got %s", types.ProviderEnterprise, principal.Provider)
			}
			if principal.Role != tc.expectedRole {
				t.Errorf("expected role %s, got %s", tc.expectedRole, principal.Role)
			}
			if principal.TenantID != tc.expectedTID {
				t.Errorf("expected tenant %q, got %q", tc.expectedTID, principal.TenantID)
			}
		})
	}
}

func TestRoleFromJobTitle(t *testing.T) {
	testCases := []struct {
		jobTitle string
		expected string
	}{
		{"IT Administrator", types.RoleAdmin},
		{"Engineering Manager", types.RoleAdmin},
		{"Director of Operations", types.RoleAdmin},
		{"admin", types.RoleAdmin},
		{"Software Engineer", types.RoleEmployee},
		{"", types.RoleEmployee},
	}

	for _, tc := range testCases {
		t.Run(tc.jobTitle, func(t *testing.T) {
			if role := roleFromJobTitle(tc.jobTitle); role != tc.expected {
				t.Errorf("expected role %s for %q, got %s", tc.expected, tc.jobTitle, role)
			}
		})
	}
}
