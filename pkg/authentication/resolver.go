// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
)

// Principal categories a caller can declare. The set is closed; a
// category that is not registered here is rejected before any
// credential is inspected.
const (
	CategoryParent   = "parent"
	CategoryAdmin    = "admin"
	CategoryEmployee = "employee"
	CategoryDevice   = "device"
)

var _ ResolverInterface = (*Resolver)(nil)

// Resolver maps a declared principal category to the verifier for its
// trust source. The category only selects which verification path runs;
// the resolved role always comes from the verified credential, so a
// caller cannot upgrade or downgrade trust by lying about the category.
type Resolver struct {
	verifiers map[string]TokenVerifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewResolver(
	consumer, enterprise, device TokenVerifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Resolver {
	return &Resolver{
		verifiers: map[string]TokenVerifierInterface{
			CategoryParent:   consumer,
			CategoryAdmin:    enterprise,
			CategoryEmployee: enterprise,
			CategoryDevice:   device,
		},
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (r *Resolver) Resolve(ctx context.Context, category, rawToken string) (*types.Principal, error) {
	ctx, span := r.tracer.Start(ctx, "authentication.Resolver.Resolve")
	defer span.End()

	verifier, ok := r.verifiers[category]
	if !ok {
		r.logger.Security().AuthnFailure("", fmt.Sprintf("unknown principal category %q", category))
		return nil, fmt.Errorf("unknown principal category: %s", category)
	}

	principal, err := verifier.VerifyToken(ctx, rawToken)
	if err != nil {
		r.logger.Security().AuthnFailure("", err.Error())
		return nil, err
	}

	r.logger.Security().AuthnSuccess(principal.Subject, principal.Provider)
	return principal, nil
}
