// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/guard-api/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.TenantCounts, error)
	ListTenants(ctx context.Context) ([]*types.TenantCounts, error)
	UpdateTenantName(ctx context.Context, id, name string) (*types.Tenant, error)
	SetTenantSubscription(ctx context.Context, id, status, planID string) (*types.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error

	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByExternalID(ctx context.Context, provider, externalID string) (*types.User, error)
	GetTenantByUserEmail(ctx context.Context, email string) (*types.Tenant, error)

	CreateDevice(ctx context.Context, d *types.Device) (*types.Device, error)
	GetDeviceByID(ctx context.Context, id string) (*types.Device, error)
	GetDeviceByUID(ctx context.Context, deviceUID string) (*types.Device, error)
	ListDevices(ctx context.Context, tenantID string) ([]*types.Device, error)
	UpdateDevice(ctx context.Context, d *types.Device) (*types.Device, error)
	DeleteDevice(ctx context.Context, id string) error

	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	RedeemInvite(ctx context.Context, tenantID, code, inviteType string) (*types.Invite, error)
	LinkInviteRedemption(ctx context.Context, inviteID, userID, deviceID string) error

	UpsertShadowIdentity(ctx context.Context, identity *types.ShadowIdentity) error
}
