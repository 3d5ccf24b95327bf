// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/guard-api/internal/db"
	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/pkg/device"
	"github.com/canonical/guard-api/pkg/invites"
	"github.com/canonical/guard-api/pkg/metrics"
	"github.com/canonical/guard-api/pkg/provisioning"
	"github.com/canonical/guard-api/pkg/status"
	"github.com/canonical/guard-api/pkg/tenant"
)

func NewRouter(
	provisioningAPI *provisioning.API,
	invitesAPI *invites.API,
	tenantAPI *tenant.API,
	deviceAPI *device.API,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dbClient, tracer, monitor, logger).RegisterEndpoints(router)

	provisioningAPI.RegisterEndpoints(router)
	invitesAPI.RegisterEndpoints(router)
	tenantAPI.RegisterEndpoints(router)
	deviceAPI.RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
