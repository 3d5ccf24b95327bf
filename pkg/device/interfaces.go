// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package device

import (
	"context"

	"github.com/canonical/guard-api/internal/types"
	"github.com/canonical/guard-api/pkg/devicetoken"
)

type ServiceInterface interface {
	CreateDevice(ctx context.Context, d *types.Device) (*types.Device, error)
	ListDevices(ctx context.Context, tenantID string) ([]*types.Device, error)
	GetDevice(ctx context.Context, id string) (*types.Device, error)
	UpdateDevice(ctx context.Context, d *types.Device) (*types.Device, error)
	DeleteDevice(ctx context.Context, id string) error
	IssueCredentials(ctx context.Context, deviceUID string) (*devicetoken.Credentials, error)
	RefreshCredentials(ctx context.Context, refreshToken string) (string, error)
}

type StorageInterface interface {
	CreateDevice(ctx context.Context, d *types.Device) (*types.Device, error)
	GetDeviceByID(ctx context.Context, id string) (*types.Device, error)
	ListDevices(ctx context.Context, tenantID string) ([]*types.Device, error)
	UpdateDevice(ctx context.Context, d *types.Device) (*types.Device, error)
	DeleteDevice(ctx context.Context, id string) error
}
