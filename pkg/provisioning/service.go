// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package provisioning

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/guard-api/internal/db"
	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

var (
	ErrAlreadyProvisioned = errors.New("identity is already provisioned")
	ErrDeviceEnrolled     = errors.New("device is already enrolled")
)

// DeviceEnrollment is the payload a device presents when joining a tenant.
type DeviceEnrollment struct {
	DeviceUID   string
	DeviceName  string
	OS          string
	OSVersion   string
	OwnerUserID string
}

var _ ServiceInterface = (*Service)(nil)

// Service runs the multi-row provisioning flows. Every flow executes
// inside a single database transaction so a tenant never exists without
// its owner and an invite is never consumed without its outcome row.
type Service struct {
	dbClient db.DBClientInterface
	storage  StorageInterface
	invites  InvitesInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	dbClient db.DBClientInterface,
	s StorageInterface,
	invites InvitesInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		dbClient: dbClient,
		storage:  s,
		invites:  invites,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// ProvisionTenantAndOwner creates a tenant and its owning user in one
// transaction. The owner's verified identity supplies the user row.
func (s *Service) ProvisionTenantAndOwner(ctx context.Context, tenantName string, owner *types.Principal) (*types.Tenant, *types.User, error) {
	ctx, span := s.tracer.Start(ctx, "provisioning.Service.ProvisionTenantAndOwner")
	defer span.End()

	if _, err := s.storage.GetUserByEmail(ctx, owner.Email); err == nil {
		return nil, nil, ErrAlreadyProvisioned
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	var (
		tenant *types.Tenant
		user   *types.User
	)

	err := s.dbClient.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		tenant, err = s.storage.CreateTenant(txCtx, &types.Tenant{
			Name:               tenantName,
			SubscriptionStatus: types.SubscriptionNone,
		})
		if err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		user, err = s.storage.CreateUser(txCtx, &types.User{
			TenantID:       tenant.ID,
			Name:           owner.Name,
			Email:          owner.Email,
			ExternalAuthID: owner.Subject,
			AuthProvider:   owner.Provider,
			Role:           ownerRole(owner),
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrAlreadyProvisioned
			}
			return fmt.Errorf("failed to create owner: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Infof("provisioned tenant %s with owner %s", tenant.ID, user.ID)
	return tenant, user, nil
}

// AutoProvisionFromIdentity materialises a tenant and user for a
// verified identity that has no rows yet. It is idempotent: a repeat
// call with the same identity returns the existing rows.
func (s *Service) AutoProvisionFromIdentity(ctx context.Context, principal *types.Principal) (*types.Tenant, *types.User, error) {
	ctx, span := s.tracer.Start(ctx, "provisioning.Service.AutoProvisionFromIdentity")
	defer span.End()

	user, err := s.storage.GetUserByExternalID(ctx, principal.Provider, principal.Subject)
	switch {
	case err == nil:
		tenant, err := s.storage.GetTenantByID(ctx, user.TenantID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load tenant for existing user: %w", err)
		}
		return &tenant.Tenant, user, nil
	case errors.Is(err, storage.ErrNotFound):
	default:
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	// The email is taken by another identity: the caller cannot claim it.
	if _, err := s.storage.GetUserByEmail(ctx, principal.Email); err == nil {
		return nil, nil, ErrAlreadyProvisioned
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	var (
		tenant  *types.Tenant
		newUser *types.User
	)

	err = s.dbClient.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		tenant, err = s.storage.CreateTenant(txCtx, &types.Tenant{
			Name:               principal.Email,
			SubscriptionStatus: types.SubscriptionNone,
		})
		if err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		newUser, err = s.storage.CreateUser(txCtx, &types.User{
			TenantID:       tenant.ID,
			Name:           principal.Name,
			Email:          principal.Email,
			ExternalAuthID: principal.Subject,
			AuthProvider:   principal.Provider,
			Role:           ownerRole(principal),
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		return nil
	})
	if err != nil {
		// Two first logins racing on the same identity: one transaction
		// wins the unique index, the loser reads the winner's rows. A
		// miss on the re-read means the email index fired for a
		// different identity, which is a conflict, not a race.
		if errors.Is(err, storage.ErrDuplicateKey) {
			existing, lookupErr := s.storage.GetUserByExternalID(ctx, principal.Provider, principal.Subject)
			if errors.Is(lookupErr, storage.ErrNotFound) {
				return nil, nil, ErrAlreadyProvisioned
			}
			if lookupErr != nil {
				return nil, nil, fmt.Errorf("failed to load user after provisioning race: %w", lookupErr)
			}
			existingTenant, lookupErr := s.storage.GetTenantByID(ctx, existing.TenantID)
			if lookupErr != nil {
				return nil, nil, fmt.Errorf("failed to load tenant after provisioning race: %w", lookupErr)
			}
			return &existingTenant.Tenant, existing, nil
		}
		return nil, nil, err
	}

	s.logger.Infof("auto-provisioned tenant %s for identity %s", tenant.ID, principal.Subject)
	return tenant, newUser, nil
}

// RedeemParentInvite consumes a parent invite and creates the joining
// user in the same transaction. If the user insert fails the redemption
// rolls back and the code stays usable.
func (s *Service) RedeemParentInvite(ctx context.Context, tenantID, code string, principal *types.Principal) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "provisioning.Service.RedeemParentInvite")
	defer span.End()

	var user *types.User

	err := s.dbClient.WithTx(ctx, func(txCtx context.Context) error {
		invite, err := s.invites.Redeem(txCtx, tenantID, code, types.InviteTypeParent)
		if err != nil {
			return err
		}

		user, err = s.storage.CreateUser(txCtx, &types.User{
			TenantID:       tenantID,
			Name:           principal.Name,
			Email:          principal.Email,
			ExternalAuthID: principal.Subject,
			AuthProvider:   principal.Provider,
			Role:           types.RoleParent,
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrAlreadyProvisioned
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		return s.invites.LinkRedemption(txCtx, invite.ID, user.ID, "")
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// RedeemDeviceInvite consumes a device invite and enrolls the device in
// the same transaction.
func (s *Service) RedeemDeviceInvite(ctx context.Context, tenantID, code string, enrollment *DeviceEnrollment) (*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "provisioning.Service.RedeemDeviceInvite")
	defer span.End()

	var device *types.Device

	err := s.dbClient.WithTx(ctx, func(txCtx context.Context) error {
		invite, err := s.invites.Redeem(txCtx, tenantID, code, types.InviteTypeDevice)
		if err != nil {
			return err
		}

		device, err = s.storage.CreateDevice(txCtx, &types.Device{
			TenantID:    tenantID,
			OwnerUserID: enrollment.OwnerUserID,
			DeviceUID:   enrollment.DeviceUID,
			DeviceName:  enrollment.DeviceName,
			OS:          enrollment.OS,
			OSVersion:   enrollment.OSVersion,
			Status:      types.DeviceActive,
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrDeviceEnrolled
			}
			return fmt.Errorf("failed to create device: %w", err)
		}

		return s.invites.LinkRedemption(txCtx, invite.ID, "", device.ID)
	})
	if err != nil {
		return nil, err
	}

	return device, nil
}

// ownerRole keeps the verified role when it is one that can own a
// tenant, and falls back to parent otherwise.
func ownerRole(p *types.Principal) string {
	if p.Role == types.RoleAdmin {
		return types.RoleAdmin
	}
	return types.RoleParent
}
