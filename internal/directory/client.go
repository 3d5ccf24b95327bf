// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
)

// Profile is the userinfo payload returned by the enterprise directory.
type Profile struct {
	ID                string `json:"id"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
	DisplayName       string `json:"displayName"`
	JobTitle          string `json:"jobTitle"`
	Department        string `json:"department"`
}

// Email prefers the mail attribute and falls back to the principal name.
func (p *Profile) Email() string {
	if p.Mail != "" {
		return p.Mail
	}
	return p.UserPrincipalName
}

type ClientInterface interface {
	GetProfile(ctx context.Context, token string) (*Profile, error)
}

var _ ClientInterface = (*Client)(nil)

// Client fetches profiles from the directory's userinfo endpoint. The
// call carries its own timeout so an unresponsive directory surfaces as
// an error instead of hanging the request.
type Client struct {
	userinfoURL string
	client      *http.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(userinfoURL string, timeout time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	return &Client{
		userinfoURL: userinfoURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (c *Client) GetProfile(ctx context.Context, token string) (*Profile, error) {
	ctx, span := c.tracer.Start(ctx, "directory.Client.GetProfile")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	return &profile, nil
}
