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

	"github.com/canonical/guard-api/internal/db"
	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	status := t.SubscriptionStatus
	if status == "" {
		status = types.SubscriptionNone
	}

	var newTenant types.Tenant
	err = s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "name", "subscription_status", "plan_id").
		Values(id.String(), t.Name, status, t.PlanID).
		Suffix("RETURNING id, name, subscription_status, plan_id, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&newTenant.ID, &newTenant.Name, &newTenant.SubscriptionStatus, &newTenant.PlanID, &newTenant.CreatedAt, &newTenant.UpdatedAt)

	if err != nil {
		return nil, WrapDuplicateKeyError(err, "failed to insert tenant")
	}

	return &newTenant, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.TenantCounts, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	var t types.TenantCounts
	err := s.db.Statement(ctx).
		Select(
			"t.id", "t.name", "t.subscription_status", "t.plan_id", "t.created_at", "t.updated_at",
			"COUNT(u.id) FILTER (WHERE u.deleted_at IS NULL)",
			"COUNT(d.id) FILTER (WHERE d.deleted_at IS NULL)",
		).
		From("tenants t").
		LeftJoin("users u ON t.id = u.tenant_id").
		LeftJoin("devices d ON t.id = d.tenant_id").
		Where(sq.Eq{"t.id": id}).
		Where("t.deleted_at IS NULL").
		GroupBy("t.id").
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.SubscriptionStatus, &t.PlanID, &t.CreatedAt, &t.UpdatedAt, &t.UserCount, &t.DeviceCount)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.TenantCounts, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(
			"t.id", "t.name", "t.subscription_status", "t.plan_id", "t.created_at", "t.updated_at",
			"COUNT(u.id) FILTER (WHERE u.deleted_at IS NULL)",
			"COUNT(d.id) FILTER (WHERE d.deleted_at IS NULL)",
		).
		From("tenants t").
		LeftJoin("users u ON t.id = u.tenant_id").
		LeftJoin("devices d ON t.id = d.tenant_id").
		Where("t.deleted_at IS NULL").
		GroupBy("t.id").
		OrderBy("t.created_at DESC")

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*types.TenantCounts
	for rows.Next() {
		var t types.TenantCounts
		if err := rows.Scan(&t.ID, &t.Name, &t.SubscriptionStatus, &t.PlanID, &t.CreatedAt, &t.UpdatedAt, &t.UserCount, &t.DeviceCount); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, nil
}

func (s *Storage) UpdateTenantName(ctx context.Context, id, name string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenantName")
	defer span.End()

	var t types.Tenant
	err := s.db.Statement(ctx).
		Update("tenants").
		Set("name", name).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING id, name, subscription_status, plan_id, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.SubscriptionStatus, &t.PlanID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, WrapDuplicateKeyError(err, "failed to update tenant")
	}

	return &t, nil
}

func (s *Storage) SetTenantSubscription(ctx context.Context, id, status, planID string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SetTenantSubscription")
	defer span.End()

	var t types.Tenant
	err := s.db.Statement(ctx).
		Update("tenants").
		Set("subscription_status", status).
		Set("plan_id", planID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING id, name, subscription_status, plan_id, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.SubscriptionStatus, &t.PlanID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tenant subscription: %w", err)
	}

	return &t, nil
}

// DeleteTenant tombstones the tenant and everything it owns. Rows are
// never hard-removed so redeemed invites keep their audit links.
func (s *Storage) DeleteTenant(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteTenant")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("tenants").
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	if _, err := s.db.Statement(ctx).
		Update("users").
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"tenant_id": id}).
		Where("deleted_at IS NULL").
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to delete tenant users: %w", err)
	}

	if _, err := s.db.Statement(ctx).
		Update("devices").
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"tenant_id": id}).
		Where("deleted_at IS NULL").
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to delete tenant devices: %w", err)
	}

	// Pending invites are forced into the expired state rather than removed.
	if _, err := s.db.Statement(ctx).
		Update("invites").
		Set("expires_at", sq.Expr("NOW()")).
		Where(sq.Eq{"tenant_id": id}).
		Where("used_at IS NULL").
		Where("expires_at > NOW()").
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to expire tenant invites: %w", err)
	}

	return nil
}
