// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package devicetoken

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package devicetoken -destination ./mock_devicetoken.go -source=./interfaces.go

const (
	testAccessSecret  = "access-secret-for-tests"
	testRefreshSecret = "refresh-secret-for-tests"
)

func newTestIssuer(s StorageInterface, accessTTL, refreshTTL time.Duration) *Issuer {
	return NewIssuer(
		s,
		testAccessSecret,
		testRefreshSecret,
		accessTTL,
		refreshTTL,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(""),
		logging.NewNoopLogger(),
	)
}

func TestIssuer_Issue(t *testing.T) {
	deviceUID := "device-abc-123"
	device := &types.Device{ID: "id-1", DeviceUID: deviceUID}

	testCases := []struct {
		name        string
		setupMocks  func(*MockStorageInterface)
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetDeviceByUID(gomock.Any(), deviceUID).Return(device, nil)
			},
		},
		{
			name: "unknown device",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetDeviceByUID(gomock.Any(), deviceUID).Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrDeviceNotFound,
		},
		{
			name: "storage error",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetDeviceByUID(gomock.Any(), deviceUID).Return(nil, errors.New("db error"))
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

			issuer := newTestIssuer(mockStorage, 15*time.Minute, 7*24*time.Hour)

			creds, err := issuer.Issue(context.Background(), deviceUID)

			if tc.expectedErr != nil {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if errors.Is(tc.expectedErr, ErrDeviceNotFound) && !errors.Is(err, ErrDeviceNotFound) {
					t.Errorf("expected ErrDeviceNotFound, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if creds.AccessToken == "" || creds.RefreshToken == "" {
				t.Error("expected both tokens to be minted")
			}
			if creds.AccessToken == creds.RefreshToken {
				t.Error("access and refresh tokens must differ")
			}
		})
	}
}

func TestIssuer_VerifyAccess(t *testing.T) {
	deviceUID := "device-abc-123"
	device := &types.Device{ID: "id-1", DeviceUID: deviceUID}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().GetDeviceByUID(gomock.Any(), deviceUID).Return(device, nil).AnyTimes()

	issuer := newTestIssuer(mockStorage, 15*time.Minute, 7*24*time.Hour)

	creds, err := issuer.Issue(context.Background(), deviceUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("valid access token", func(t *testing.T) {
		uid, err := issuer.VerifyAccess(context.Background(), creds.AccessToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uid != deviceUID {
			t.Errorf("expected device uid %s, got %s", deviceUID, uid)
		}
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		if _, err := issuer.VerifyAccess(context.Background(), creds.RefreshToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		tampered := creds.AccessToken[:len(creds.AccessToken)-2] + "xx"
		if _, err := issuer.VerifyAccess(context.Background(), tampered); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		if _, err := issuer.VerifyAccess(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expiredIssuer := newTestIssuer(mockStorage, -time.Minute, 7*24*time.Hour)
		expired, err := expiredIssuer.Issue(context.Background(), deviceUID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := issuer.VerifyAccess(context.Background(), expired.AccessToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestIssuer_Refresh(t *testing.T) {
	deviceUID := "device-abc-123"
	device := &types.Device{ID: "id-1", DeviceUID: deviceUID}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().GetDeviceByUID(gomock.Any(), deviceUID).Return(device, nil).AnyTimes()

	issuer := newTestIssuer(mockStorage, 15*time.Minute, 7*24*time.Hour)

	creds, err := issuer.Issue(context.Background(), deviceUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("valid refresh token mints access token", func(t *testing.T) {
		access, err := issuer.Refresh(context.Background(), creds.RefreshToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uid, err := issuer.VerifyAccess(context.Background(), access)
		if err != nil {
			t.Fatalf("minted access token failed verification: %v", err)
		}
		if uid != deviceUID {
			t.Errorf("expected device uid %s, got %s", deviceUID, uid)
		}
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		if _, err := issuer.Refresh(context.Background(), creds.AccessToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired refresh token rejected", func(t *testing.T) {
		expiredIssuer := newTestIssuer(mockStorage, 15*time.Minute, -time.Minute)
		expired, err := expiredIssuer.Issue(context.Background(), deviceUID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := issuer.Refresh(context.Background(), expired.RefreshToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
