// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/guard-api/internal/db"
	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/version"
)

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type API struct {
	db db.DBClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		db:      dbClient,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/status/ready", a.ready)
	mux.Get("/api/v0/version", a.buildVersion)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusOK, statusResponse{Status: "ok", Version: version.Version})
}

// ready reports whether the database answers a trivial query.
func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.ready")
	defer span.End()

	var one int
	err := a.db.Statement(ctx).Select("1").QueryRowContext(ctx).Scan(&one)
	if err != nil {
		a.logger.Errorf("readiness check failed: %v", err)
		writeResponse(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable", Version: version.Version})
		return
	}

	writeResponse(w, http.StatusOK, statusResponse{Status: "ok", Version: version.Version})
}

func (a *API) buildVersion(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusOK, map[string]string{"version": version.Version})
}

func writeResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
