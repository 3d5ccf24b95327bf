// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/guard-api/internal/db"
	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

var ErrUnknownSubscriptionStatus = errors.New("unknown subscription status")

var subscriptionStatuses = map[string]bool{
	types.SubscriptionNone:     true,
	types.SubscriptionActive:   true,
	types.SubscriptionPastDue:  true,
	types.SubscriptionCanceled: true,
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	dbClient db.DBClientInterface
	storage  StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	dbClient db.DBClientInterface,
	s StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		dbClient: dbClient,
		storage:  s,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) ListTenants(ctx context.Context) ([]*types.TenantCounts, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenants")
	defer span.End()

	return s.storage.ListTenants(ctx)
}

func (s *Service) GetTenant(ctx context.Context, id string) (*types.TenantCounts, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.GetTenant")
	defer span.End()

	return s.storage.GetTenantByID(ctx, id)
}

func (s *Service) RenameTenant(ctx context.Context, id, name string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.RenameTenant")
	defer span.End()

	tenant, err := s.storage.UpdateTenantName(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("failed to rename tenant: %w", err)
	}

	return tenant, nil
}

func (s *Service) SetSubscription(ctx context.Context, id, status, planID string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.SetSubscription")
	defer span.End()

	if !subscriptionStatuses[status] {
		return nil, ErrUnknownSubscriptionStatus
	}

	tenant, err := s.storage.SetTenantSubscription(ctx, id, status, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to set subscription: %w", err)
	}

	s.logger.Infof("tenant %s subscription set to %s", id, status)
	return tenant, nil
}

// DeleteTenant soft-deletes the tenant and everything under it. The
// storage layer cascades to users and devices and force-expires pending
// invites; the whole cascade runs in one transaction so a failure
// partway never leaves live rows under a tombstoned tenant.
func (s *Service) DeleteTenant(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.DeleteTenant")
	defer span.End()

	err := s.dbClient.WithTx(ctx, func(txCtx context.Context) error {
		return s.storage.DeleteTenant(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infof("tenant %s deleted", id)
	return nil
}
