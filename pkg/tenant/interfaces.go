// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/guard-api/internal/types"
)

type ServiceInterface interface {
	ListTenants(ctx context.Context) ([]*types.TenantCounts, error)
	GetTenant(ctx context.Context, id string) (*types.TenantCounts, error)
	RenameTenant(ctx context.Context, id, name string) (*types.Tenant, error)
	SetSubscription(ctx context.Context, id, status, planID string) (*types.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
}

type StorageInterface interface {
	ListTenants(ctx context.Context) ([]*types.TenantCounts, error)
	GetTenantByID(ctx context.Context, id string) (*types.TenantCounts, error)
	UpdateTenantName(ctx context.Context, id, name string) (*types.Tenant, error)
	SetTenantSubscription(ctx context.Context, id, status, planID string) (*types.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
}
