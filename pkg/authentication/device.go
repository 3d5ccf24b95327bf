// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

var _ TokenVerifierInterface = (*DeviceCredentialVerifier)(nil)

// DeviceCredentialVerifier validates locally issued device access tokens
// and resolves them against the device's live row, so a device that was
// blocked or deleted after its token was minted is still rejected.
type DeviceCredentialVerifier struct {
	issuer  DeviceVerifierInterface
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewDeviceCredentialVerifier(
	issuer DeviceVerifierInterface,
	s StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *DeviceCredentialVerifier {
	return &DeviceCredentialVerifier{
		issuer:  issuer,
		storage: s,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (v *DeviceCredentialVerifier) VerifyToken(ctx context.Context, rawToken string) (*types.Principal, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.DeviceCredentialVerifier.VerifyToken")
	defer span.End()

	deviceUID, err := v.issuer.VerifyAccess(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	device, err := v.storage.GetDeviceByUID(ctx, deviceUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("device %s is not enrolled", deviceUID)
		}
		return nil, fmt.Errorf("failed to resolve device for principal: %w", err)
	}

	if device.Status == types.DeviceBlocked {
		return nil, fmt.Errorf("device %s is blocked", deviceUID)
	}

	return &types.Principal{
		Subject:  device.DeviceUID,
		Name:     device.DeviceName,
		TenantID: device.TenantID,
		Role:     types.RoleChild,
		Provider: types.ProviderDevice,
	}, nil
}
