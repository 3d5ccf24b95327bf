// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

var (
	// ErrInviteInvalid covers unknown, already redeemed and expired codes.
	// The causes are deliberately not distinguishable to the caller.
	ErrInviteInvalid = errors.New("invite code is invalid")

	ErrEmailRequired = errors.New("parent invites require an invitee email")
)

// Attempts to find an unused code before giving up. Collisions on a
// 32^6 space are rare enough that a second attempt almost never runs.
const maxCodeAttempts = 3

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage        StorageInterface
	inviteLifetime time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	s StorageInterface,
	inviteLifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:        s,
		inviteLifetime: inviteLifetime,
		tracer:         tracer,
		monitor:        monitor,
		logger:         logger,
	}
}

func (s *Service) CreateInvite(ctx context.Context, tenantID, inviteType, inviteeEmail, createdBy string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.CreateInvite")
	defer span.End()

	if inviteType == types.InviteTypeParent && inviteeEmail == "" {
		return nil, ErrEmailRequired
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := newInviteCode()
		if err != nil {
			return nil, err
		}

		invite, err := s.storage.CreateInvite(ctx, &types.Invite{
			TenantID:     tenantID,
			Code:         code,
			Type:         inviteType,
			InviteeEmail: inviteeEmail,
			CreatedBy:    createdBy,
			ExpiresAt:    time.Now().Add(s.inviteLifetime),
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				s.logger.Debugf("invite code collision on attempt %d, retrying", attempt+1)
				continue
			}
			return nil, fmt.Errorf("failed to create invite: %w", err)
		}

		return invite, nil
	}

	return nil, fmt.Errorf("failed to generate a unique invite code after %d attempts", maxCodeAttempts)
}

// Redeem consumes a pending invite. It is safe under concurrent calls
// with the same code: exactly one caller wins, the rest get
// ErrInviteInvalid.
func (s *Service) Redeem(ctx context.Context, tenantID, code, inviteType string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.Redeem")
	defer span.End()

	invite, err := s.storage.RedeemInvite(ctx, tenantID, code, inviteType)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInviteInvalid
		}
		return nil, fmt.Errorf("failed to redeem invite: %w", err)
	}

	s.logger.Security().InviteRedeemed(tenantID, inviteType)
	return invite, nil
}

func (s *Service) LinkRedemption(ctx context.Context, inviteID, userID, deviceID string) error {
	ctx, span := s.tracer.Start(ctx, "invites.Service.LinkRedemption")
	defer span.End()

	return s.storage.LinkInviteRedemption(ctx, inviteID, userID, deviceID)
}
