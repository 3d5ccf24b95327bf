// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"

	"github.com/canonical/guard-api/internal/types"
)

type ServiceInterface interface {
	CreateInvite(ctx context.Context, tenantID, inviteType, inviteeEmail, createdBy string) (*types.Invite, error)
	Redeem(ctx context.Context, tenantID, code, inviteType string) (*types.Invite, error)
	LinkRedemption(ctx context.Context, inviteID, userID, deviceID string) error
}

type StorageInterface interface {
	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	RedeemInvite(ctx context.Context, tenantID, code, inviteType string) (*types.Invite, error)
	LinkInviteRedemption(ctx context.Context, inviteID, userID, deviceID string) error
}
