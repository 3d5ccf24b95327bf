// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"20"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"4"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// Consumer identity provider (OIDC) used for parent sign-in.
	ConsumerIssuer  string `envconfig:"consumer_issuer" required:"true"`
	ConsumerJWKSURL string `envconfig:"consumer_jwks_url"`

	// Enterprise directory userinfo endpoint used for admin/employee sign-in.
	DirectoryUserinfoURL string        `envconfig:"directory_userinfo_url" default:"https://graph.microsoft.com/v1.0/me"`
	DirectoryTimeout     time.Duration `envconfig:"directory_timeout" default:"10s"`

	// Human-typed codes stay guessable only within a short window.
	InviteLifetime time.Duration `envconfig:"invite_lifetime" default:"24h"`

	AccessTokenSecret  string        `envconfig:"access_token_secret" required:"true"`
	RefreshTokenSecret string        `envconfig:"refresh_token_secret" required:"true"`
	AccessTokenTTL     time.Duration `envconfig:"access_token_ttl" default:"15m"`
	RefreshTokenTTL    time.Duration `envconfig:"refresh_token_ttl" default:"168h"`
}
