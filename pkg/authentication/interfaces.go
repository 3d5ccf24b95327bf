// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/guard-api/internal/directory"
	"github.com/canonical/guard-api/internal/types"
)

type ProviderInterface interface {
	// Verifier returns the token verifier associated with the specified OIDC issuer
	Verifier(*oidc.Config) *oidc.IDTokenVerifier
}

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw credential string against one trust source
	// and returns the principal it proves, otherwise an error
	VerifyToken(ctx context.Context, rawToken string) (*types.Principal, error)
}

type ResolverInterface interface {
	// Resolve dispatches a raw credential to the verifier registered for
	// the declared principal category
	Resolve(ctx context.Context, category, rawToken string) (*types.Principal, error)
}

type DirectoryInterface interface {
	GetProfile(ctx context.Context, token string) (*directory.Profile, error)
}

type DeviceVerifierInterface interface {
	VerifyAccess(ctx context.Context, accessToken string) (string, error)
}

type StorageInterface interface {
	GetUserByExternalID(ctx context.Context, provider, externalID string) (*types.User, error)
	GetTenantByUserEmail(ctx context.Context, email string) (*types.Tenant, error)
	GetDeviceByUID(ctx context.Context, deviceUID string) (*types.Device, error)
	UpsertShadowIdentity(ctx context.Context, identity *types.ShadowIdentity) error
}
