// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package devicetoken

import (
	"context"

	"github.com/canonical/guard-api/internal/types"
)

type IssuerInterface interface {
	Issue(ctx context.Context, deviceUID string) (*Credentials, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	VerifyAccess(ctx context.Context, accessToken string) (string, error)
}

type StorageInterface interface {
	GetDeviceByUID(ctx context.Context, deviceUID string) (*types.Device, error)
}
