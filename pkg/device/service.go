// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
	"github.com/canonical/guard-api/pkg/devicetoken"
)

var ErrUnknownDeviceStatus = errors.New("unknown device status")

var deviceStatuses = map[string]bool{
	types.DeviceActive:   true,
	types.DeviceInactive: true,
	types.DeviceBlocked:  true,
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	issuer  devicetoken.IssuerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	s StorageInterface,
	issuer devicetoken.IssuerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: s,
		issuer:  issuer,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// CreateDevice registers a device directly, without an invite. New
// devices start active unless the caller picks a status.
func (s *Service) CreateDevice(ctx context.Context, d *types.Device) (*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "device.Service.CreateDevice")
	defer span.End()

	if d.Status == "" {
		d.Status = types.DeviceActive
	}
	if !deviceStatuses[d.Status] {
		return nil, ErrUnknownDeviceStatus
	}

	created, err := s.storage.CreateDevice(ctx, d)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("device %s registered for tenant %s", created.ID, created.TenantID)
	return created, nil
}

func (s *Service) ListDevices(ctx context.Context, tenantID string) ([]*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "device.Service.ListDevices")
	defer span.End()

	return s.storage.ListDevices(ctx, tenantID)
}

func (s *Service) GetDevice(ctx context.Context, id string) (*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "device.Service.GetDevice")
	defer span.End()

	return s.storage.GetDeviceByID(ctx, id)
}

func (s *Service) UpdateDevice(ctx context.Context, d *types.Device) (*types.Device, error) {
	ctx, span := s.tracer.Start(ctx, "device.Service.UpdateDevice")
	defer span.End()

	if !deviceStatuses[d.Status] {
		return nil, ErrUnknownDeviceStatus
	}

	updated, err := s.storage.UpdateDevice(ctx, d)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) DeleteDevice(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "device.Service.DeleteDevice")
	defer span.End()

	if err := s.storage.DeleteDevice(ctx, id); err != nil {
		return err
	}

	s.logger.Infof("device %s deleted", id)
	return nil
}

func (s *Service) IssueCredentials(ctx context.Context, deviceUID string) (*devicetoken.Credentials, error) {
	ctx, span := s.tracer.Start(ctx, "device.Service.IssueCredentials")
	defer span.End()

	creds, err := s.issuer.Issue(ctx, deviceUID)
	if err != nil {
		if errors.Is(err, devicetoken.ErrDeviceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to issue device credentials: %w", err)
	}

	return creds, nil
}

func (s *Service) RefreshCredentials(ctx context.Context, refreshToken string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "device.Service.RefreshCredentials")
	defer span.End()

	return s.issuer.Refresh(ctx, refreshToken)
}
