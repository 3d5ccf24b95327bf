// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package invites -destination ./mock_invites.go -source=./interfaces.go

func newTestService(s StorageInterface) *Service {
	return NewService(s, 24*time.Hour, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(""), logging.NewNoopLogger())
}

func TestService_CreateInvite(t *testing.T) {
	tenantID := "tenant-1"
	createdBy := "user-1"

	testCases := []struct {
		name         string
		inviteType   string
		inviteeEmail string
		setupMocks   func(*MockStorageInterface)
		expectedErr  error
	}{
		{
			name:         "parent invite success",
			inviteType:   types.InviteTypeParent,
			inviteeEmail: "other@parent.test",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, invite *types.Invite) (*types.Invite, error) {
						if len(invite.Code) != codeLength {
							return nil, errors.New("wrong code length")
						}
						if invite.ExpiresAt.Before(time.Now()) {
							return nil, errors.New("expiry must be in the future")
						}
						return invite, nil
					})
			},
		},
		{
			name:       "device invite needs no email",
			inviteType: types.InviteTypeDevice,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, invite *types.Invite) (*types.Invite, error) {
						return invite, nil
					})
			},
		},
		{
			name:        "parent invite without email rejected",
			inviteType:  types.InviteTypeParent,
			setupMocks:  func(s *MockStorageInterface) {},
			expectedErr: ErrEmailRequired,
		},
		{
			name:       "code collision retried",
			inviteType: types.InviteTypeDevice,
			setupMocks: func(s *MockStorageInterface) {
				first := s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
				s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).After(first).DoAndReturn(
					func(_ context.Context, invite *types.Invite) (*types.Invite, error) {
						return invite, nil
					})
			},
		},
		{
			name:       "storage error",
			inviteType: types.InviteTypeDevice,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedErr: errors.New("db error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tc.setupMocks(mockStorage)

			svc := newTestService(mockStorage)

			invite, err := svc.CreateInvite(context.Background(), tenantID, tc.inviteType, tc.inviteeEmail, createdBy)

			if tc.expectedErr != nil {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if errors.Is(tc.expectedErr, ErrEmailRequired) && !errors.Is(err, ErrEmailRequired) {
					t.Errorf("expected ErrEmailRequired, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if invite.TenantID != tenantID {
				t.Errorf("expected tenant %s, got %s", tenantID, invite.TenantID)
			}
			if invite.Code != strings.ToUpper(invite.Code) {
				t.Errorf("expected uppercase code, got %s", invite.Code)
			}
		})
	}
}

func TestService_Redeem(t *testing.T) {
	tenantID := "tenant-1"
	code := "ABC234"
	invite := &types.Invite{ID: "invite-1", TenantID: tenantID, Code: code, Type: types.InviteTypeParent}

	testCases := []struct {
		name        string
		setupMocks  func(*MockStorageInterface)
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().RedeemInvite(gomock.Any(), tenantID, code, types.InviteTypeParent).Return(invite, nil)
			},
		},
		{
			name: "unknown or spent code",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().RedeemInvite(gomock.Any(), tenantID, code, types.InviteTypeParent).Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrInviteInvalid,
		},
		{
			name: "storage error",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().RedeemInvite(gomock.Any(), tenantID, code, types.InviteTypeParent).Return(nil, errors.New("db error"))
			},
			expectedErr: errors.New("db error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tc.setupMocks(mockStorage)

			svc := newTestService(mockStorage)

			got, err := svc.Redeem(context.Background(), tenantID, code, types.InviteTypeParent)

			if tc.expectedErr != nil {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if errors.Is(tc.expectedErr, ErrInviteInvalid) && !errors.Is(err, ErrInviteInvalid) {
					t.Errorf("expected ErrInviteInvalid, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != invite.ID {
				t.Errorf("expected invite %s, got %s", invite.ID, got.ID)
			}
		})
	}
}

func TestNewInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := newInviteCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != codeLength {
			t.Fatalf("expected %d characters, got %q", codeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Fatalf("code %q contains character outside alphabet", code)
			}
		}
		seen[code] = true
	}

	// 100 draws from a 32^6 space colliding down to a handful would
	// indicate broken randomness.
	if len(seen) < 95 {
		t.Errorf("expected mostly unique codes, got %d unique of 100", len(seen))
	}
}
