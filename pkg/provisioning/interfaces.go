// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"

	"github.com/canonical/guard-api/internal/types"
)

type ServiceInterface interface {
	ProvisionTenantAndOwner(ctx context.Context, tenantName string, owner *types.Principal) (*types.Tenant, *types.User, error)
	AutoProvisionFromIdentity(ctx context.Context, principal *types.Principal) (*types.Tenant, *types.User, error)
	RedeemParentInvite(ctx context.Context, tenantID, code string, principal *types.Principal) (*types.User, error)
	RedeemDeviceInvite(ctx context.Context, tenantID, code string, enrollment *DeviceEnrollment) (*types.Device, error)
}

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByExternalID(ctx context.Context, provider, externalID string) (*types.User, error)
	GetTenantByID(ctx context.Context, id string) (*types.TenantCounts, error)
	CreateDevice(ctx context.Context, d *types.Device) (*types.Device, error)
}

type InvitesInterface interface {
	Redeem(ctx context.Context, tenantID, code, inviteType string) (*types.Invite, error)
	LinkRedemption(ctx context.Context, inviteID, userID, deviceID string) error
}
