// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/guard-api/internal/types"
)

const inviteColumns = "id, tenant_id, invite_code, invite_type, invitee_email, created_by, expires_at, used_at, created_at"

func (s *Storage) CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvite")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite ID: %w", err)
	}

	var newInvite types.Invite
	err = s.db.Statement(ctx).
		Insert("invites").
		Columns("id", "tenant_id", "invite_code", "invite_type", "invitee_email", "created_by", "expires_at").
		Values(id.String(), invite.TenantID, invite.Code, invite.Type, invite.InviteeEmail, invite.CreatedBy, invite.ExpiresAt).
		Suffix("RETURNING " + inviteColumns).
		QueryRowContext(ctx).
		Scan(&newInvite.ID, &newInvite.TenantID, &newInvite.Code, &newInvite.Type, &newInvite.InviteeEmail, &newInvite.CreatedBy, &newInvite.ExpiresAt, &newInvite.UsedAt, &newInvite.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert invite: %w", err)
	}

	return &newInvite, nil
}

// RedeemInvite atomically marks a pending invite as used. The single
// conditional UPDATE is the at-most-once guarantee: among N concurrent
// attempts on the same code exactly one matches the `used_at IS NULL`
// predicate, the rest see zero rows and get ErrNotFound. Not-found,
// already-redeemed and expired are indistinguishable to the caller.
func (s *Storage) RedeemInvite(ctx context.Context, tenantID, code, inviteType string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RedeemInvite")
	defer span.End()

	var invite types.Invite
	err := s.db.Statement(ctx).
		Update("invites").
		Set("used_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"tenant_id":   tenantID,
			"invite_code": code,
			"invite_type": inviteType,
		}).
		Where("used_at IS NULL").
		Where("expires_at > NOW()").
		Suffix("RETURNING " + inviteColumns).
		QueryRowContext(ctx).
		Scan(&invite.ID, &invite.TenantID, &invite.Code, &invite.Type, &invite.InviteeEmail, &invite.CreatedBy, &invite.ExpiresAt, &invite.UsedAt, &invite.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to redeem invite: %w", err)
	}

	return &invite, nil
}

// LinkInviteRedemption records which row a redeemed invite produced, for audit.
func (s *Storage) LinkInviteRedemption(ctx context.Context, inviteID, userID, deviceID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.LinkInviteRedemption")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("invites").
		Set("created_user_id", sq.Expr("NULLIF(?, '')::uuid", userID)).
		Set("created_device_id", sq.Expr("NULLIF(?, '')::uuid", deviceID)).
		Where(sq.Eq{"id": inviteID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to link invite redemption: %w", err)
	}

	return nil
}
