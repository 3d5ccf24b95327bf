// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package devicetoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrInvalidToken   = errors.New("invalid or expired token")
)

// Credentials is an access/refresh credential pair bound to a device.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type deviceClaims struct {
	DeviceUID string `json:"device_uid"`
	jwt.RegisteredClaims
}

var _ IssuerInterface = (*Issuer)(nil)

// Issuer mints and verifies signed device credentials. Access and
// refresh tokens are signed with distinct secrets so compromise of one
// class cannot forge the other. Verification is signature plus expiry
// only; no network calls and no revocation list.
type Issuer struct {
	storage StorageInterface

	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewIssuer(
	s StorageInterface,
	accessSecret, refreshSecret string,
	accessTTL, refreshTTL time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Issuer {
	return &Issuer{
		storage:       s,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		tracer:        tracer,
		monitor:       monitor,
		logger:        logger,
	}
}

// Issue mints a credential pair for an enrolled, live device.
func (i *Issuer) Issue(ctx context.Context, deviceUID string) (*Credentials, error) {
	ctx, span := i.tracer.Start(ctx, "devicetoken.Issuer.Issue")
	defer span.End()

	if _, err := i.storage.GetDeviceByUID(ctx, deviceUID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to look up device: %w", err)
	}

	access, err := i.sign(deviceUID, i.accessSecret, i.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := i.sign(deviceUID, i.refreshSecret, i.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &Credentials{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh verifies a refresh token and mints a new access token bound to
// the same device. The refresh token itself is neither rotated nor
// invalidated; it stays valid until its own expiry.
func (i *Issuer) Refresh(ctx context.Context, refreshToken string) (string, error) {
	_, span := i.tracer.Start(ctx, "devicetoken.Issuer.Refresh")
	defer span.End()

	deviceUID, err := i.verify(refreshToken, i.refreshSecret)
	if err != nil {
		i.logger.Debugf("refresh token verification failed: %v", err)
		return "", ErrInvalidToken
	}

	access, err := i.sign(deviceUID, i.accessSecret, i.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return access, nil
}

// VerifyAccess validates an access token and returns the device uid it
// is bound to.
func (i *Issuer) VerifyAccess(ctx context.Context, accessToken string) (string, error) {
	_, span := i.tracer.Start(ctx, "devicetoken.Issuer.VerifyAccess")
	defer span.End()

	deviceUID, err := i.verify(accessToken, i.accessSecret)
	if err != nil {
		i.logger.Debugf("access token verification failed: %v", err)
		return "", ErrInvalidToken
	}

	return deviceUID, nil
}

func (i *Issuer) sign(deviceUID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := deviceClaims{
		DeviceUID: deviceUID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *Issuer) verify(rawToken string, secret []byte) (string, error) {
	var claims deviceClaims
	_, err := jwt.ParseWithClaims(rawToken, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		return "", err
	}

	if claims.DeviceUID == "" {
		return "", fmt.Errorf("token carries no device uid")
	}

	return claims.DeviceUID, nil
}
