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

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	var newUser types.User
	err = s.db.Statement(ctx).
		Insert("users").
		Columns("id", "tenant_id", "name", "email", "external_auth_id", "auth_provider", "role").
		Values(id.String(), u.TenantID, u.Name, u.Email, u.ExternalAuthID, u.AuthProvider, u.Role).
		Suffix("RETURNING id, tenant_id, name, email, external_auth_id, auth_provider, role, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&newUser.ID, &newUser.TenantID, &newUser.Name, &newUser.Email, &newUser.ExternalAuthID, &newUser.AuthProvider, &newUser.Role, &newUser.CreatedAt, &newUser.UpdatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &newUser, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmail")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"email": email})
}

func (s *Storage) GetUserByExternalID(ctx context.Context, provider, externalID string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByExternalID")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"auth_provider": provider, "external_auth_id": externalID})
}

func (s *Storage) getUser(ctx context.Context, pred interface{}) (*types.User, error) {
	var u types.User
	err := s.db.Statement(ctx).
		Select("id", "tenant_id", "name", "email", "external_auth_id", "auth_provider", "role", "created_at", "updated_at").
		From("users").
		Where(pred).
		Where("deleted_at IS NULL").
		Limit(1).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.ExternalAuthID, &u.AuthProvider, &u.Role, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// GetTenantByUserEmail finds the live tenant an existing live user with
// this email belongs to.
func (s *Storage) GetTenantByUserEmail(ctx context.Context, email string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByUserEmail")
	defer span.End()

	var t types.Tenant
	err := s.db.Statement(ctx).
		Select("t.id", "t.name", "t.subscription_status", "t.plan_id", "t.created_at", "t.updated_at").
		From("tenants t").
		Join("users u ON u.tenant_id = t.id").
		Where(sq.Eq{"u.email": email}).
		Where("t.deleted_at IS NULL").
		Where("u.deleted_at IS NULL").
		Limit(1).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.SubscriptionStatus, &t.PlanID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by user email: %w", err)
	}

	return &t, nil
}

// UpsertShadowIdentity records an externally verified identity. The
// shadow row is an optimization, never a source of truth; callers treat
// failures as non-fatal.
func (s *Storage) UpsertShadowIdentity(ctx context.Context, identity *types.ShadowIdentity) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertShadowIdentity")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("shadow_identities").
		Columns("id", "provider", "external_id", "email", "name", "role").
		Values(uuid.NewString(), identity.Provider, identity.ExternalID, identity.Email, identity.Name, identity.Role).
		Suffix("ON CONFLICT (provider, external_id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, role = EXCLUDED.role, last_seen = NOW()").
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to upsert shadow identity: %w", err)
	}

	return nil
}
