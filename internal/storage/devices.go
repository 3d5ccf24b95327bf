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

const deviceColumns = "id, tenant_id, COALESCE(owner_user_id::text, ''), device_uid, device_name, os, os_version, status, created_at, updated_at"

func (s *Storage) CreateDevice(ctx context.Context, d *types.Device) (*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateDevice")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate device ID: %w", err)
	}

	status := d.Status
	if status == "" {
		status = types.DeviceActive
	}

	var newDevice types.Device
	err = s.db.Statement(ctx).
		Insert("devices").
		Columns("id", "tenant_id", "owner_user_id", "device_uid", "device_name", "os", "os_version", "status").
		Values(id.String(), d.TenantID, sq.Expr("NULLIF(?, '')::uuid", d.OwnerUserID), d.DeviceUID, d.DeviceName, d.OS, d.OSVersion, status).
		Suffix("RETURNING " + deviceColumns).
		QueryRowContext(ctx).
		Scan(&newDevice.ID, &newDevice.TenantID, &newDevice.OwnerUserID, &newDevice.DeviceUID, &newDevice.DeviceName, &newDevice.OS, &newDevice.OSVersion, &newDevice.Status, &newDevice.CreatedAt, &newDevice.UpdatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert device: %w", err)
	}

	return &newDevice, nil
}

func (s *Storage) GetDeviceByID(ctx context.Context, id string) (*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetDeviceByID")
	defer span.End()

	return s.getDevice(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetDeviceByUID(ctx context.Context, deviceUID string) (*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetDeviceByUID")
	defer span.End()

	return s.getDevice(ctx, sq.Eq{"device_uid": deviceUID})
}

func (s *Storage) getDevice(ctx context.Context, pred interface{}) (*types.Device, error) {
	var d types.Device
	err := s.db.Statement(ctx).
		Select(deviceColumns).
		From("devices").
		Where(pred).
		Where("deleted_at IS NULL").
		QueryRowContext(ctx).
		Scan(&d.ID, &d.TenantID, &d.OwnerUserID, &d.DeviceUID, &d.DeviceName, &d.OS, &d.OSVersion, &d.Status, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return &d, nil
}

func (s *Storage) ListDevices(ctx context.Context, tenantID string) ([]*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListDevices")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(deviceColumns).
		From("devices").
		Where("deleted_at IS NULL").
		OrderBy("created_at DESC")

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []*types.Device
	for rows.Next() {
		var d types.Device
		if err := rows.Scan(&d.ID, &d.TenantID, &d.OwnerUserID, &d.DeviceUID, &d.DeviceName, &d.OS, &d.OSVersion, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device rows: %w", err)
	}

	return devices, nil
}

// UpdateDevice rewrites the mutable attributes of a device. The device
// unique identifier and tenant are immutable after creation.
func (s *Storage) UpdateDevice(ctx context.Context, d *types.Device) (*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateDevice")
	defer span.End()

	var updated types.Device
	err := s.db.Statement(ctx).
		Update("devices").
		Set("device_name", d.DeviceName).
		Set("owner_user_id", sq.Expr("NULLIF(?, '')::uuid", d.OwnerUserID)).
		Set("os", d.OS).
		Set("os_version", d.OSVersion).
		Set("status", d.Status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": d.ID}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + deviceColumns).
		QueryRowContext(ctx).
		Scan(&updated.ID, &updated.TenantID, &updated.OwnerUserID, &updated.DeviceUID, &updated.DeviceName, &updated.OS, &updated.OSVersion, &updated.Status, &updated.CreatedAt, &updated.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to update device: %w", err)
	}

	return &updated, nil
}

func (s *Storage) DeleteDevice(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteDevice")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("devices").
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
