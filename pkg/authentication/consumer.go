// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

var _ TokenVerifierInterface = (*ConsumerVerifier)(nil)

// ConsumerVerifier validates signed ID tokens from the consumer identity
// provider and resolves them to parent principals.
type ConsumerVerifier struct {
	verifier *oidc.IDTokenVerifier
	storage  StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewConsumerVerifier(
	verifier *oidc.IDTokenVerifier,
	s StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *ConsumerVerifier {
	return &ConsumerVerifier{
		verifier: verifier,
		storage:  s,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (v *ConsumerVerifier) VerifyToken(ctx context.Context, rawToken string) (*types.Principal, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.ConsumerVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
	}

	if err := token.Claims(&claims); err != nil {
		v.logger.Debugf("Failed to extract claims: %v", err)
		return nil, err
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token carries no subject")
	}

	principal := &types.Principal{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Role:     types.RoleParent,
		Provider: types.ProviderConsumer,
	}

	// An enrolled parent inherits tenant and role from their user row. A
	// verified identity with no user row is still a valid principal; it
	// just has no tenant yet.
	user, err := v.storage.GetUserByExternalID(ctx, types.ProviderConsumer, claims.Subject)
	switch {
	case err == nil:
		principal.TenantID = user.TenantID
		principal.Role = user.Role
	case errors.Is(err, storage.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to resolve user for principal: %w", err)
	}

	// Shadow record is observability only, never an authn gate.
	if err := v.storage.UpsertShadowIdentity(ctx, &types.ShadowIdentity{
		Provider:   types.ProviderConsumer,
		ExternalID: claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
		Role:       principal.Role,
	}); err != nil {
		v.logger.Warnf("failed to upsert shadow identity for %s: %v", claims.Subject, err)
	}

	return principal, nil
}
