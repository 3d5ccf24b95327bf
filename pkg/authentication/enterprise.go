// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

// Job titles that map to the admin role. Anything else in the directory
// resolves to a plain employee.
var adminJobTitleKeywords = []string{"admin", "manager", "director"}

var _ TokenVerifierInterface = (*EnterpriseVerifier)(nil)

// EnterpriseVerifier validates opaque directory access tokens by calling
// the directory's userinfo endpoint. The directory owns signature and
// expiry checks; a profile response is the proof of validity.
type EnterpriseVerifier struct {
	directory DirectoryInterface
	storage   StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewEnterpriseVerifier(
	d DirectoryInterface,
	s StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *EnterpriseVerifier {
	return &EnterpriseVerifier{
		directory: d,
		storage:   s,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

func (v *EnterpriseVerifier) VerifyToken(ctx context.Context, rawToken string) (*types.Principal, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.EnterpriseVerifier.VerifyToken")
	defer span.End()

	// Cheap structural check before spending a network round trip.
	if strings.Count(rawToken, ".") != 2 {
		return nil, fmt.Errorf("malformed directory token")
	}

	profile, err := v.directory.GetProfile(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("directory rejected token: %w", err)
	}

	if profile.ID == "" {
		return nil, fmt.Errorf("directory profile carries no id")
	}

	principal := &types.Principal{
		Subject:    profile.ID,
		Email:      profile.Email(),
		Name:       profile.DisplayName,
		Role:       roleFromJobTitle(profile.JobTitle),
		Provider:   types.ProviderEnterprise,
		JobTitle:   profile.JobTitle,
		Department: profile.Department,
	}

	tenant, err := v.storage.GetTenantByUserEmail(ctx, principal.Email)
	switch {
	case err == nil:
		principal.TenantID = tenant.ID
	case errors.Is(err, storage.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to resolve tenant for principal: %w", err)
	}

	if err := v.storage.UpsertShadowIdentity(ctx, &types.ShadowIdentity{
		Provider:   types.ProviderEnterprise,
		ExternalID: profile.ID,
		Email:      principal.Email,
		Name:       profile.DisplayName,
		Role:       principal.Role,
	}); err != nil {
		v.logger.Warnf("failed to upsert shadow identity for %s: %v", profile.ID, err)
	}

	return principal, nil
}

func roleFromJobTitle(jobTitle string) string {
	title := strings.ToLower(jobTitle)
	for _, keyword := range adminJobTitleKeywords {
		if strings.Contains(title, keyword) {
			return types.RoleAdmin
		}
	}
	return types.RoleEmployee
}
