// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/guard-api/internal/config"
	"github.com/canonical/guard-api/internal/db"
	"github.com/canonical/guard-api/internal/directory"
	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring/prometheus"
	"github.com/canonical/guard-api/internal/storage"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/pkg/authentication"
	"github.com/canonical/guard-api/pkg/device"
	"github.com/canonical/guard-api/pkg/devicetoken"
	"github.com/canonical/guard-api/pkg/invites"
	"github.com/canonical/guard-api/pkg/provisioning"
	"github.com/canonical/guard-api/pkg/tenant"
	"github.com/canonical/guard-api/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("guard-api", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	issuer := devicetoken.NewIssuer(
		s,
		specs.AccessTokenSecret,
		specs.RefreshTokenSecret,
		specs.AccessTokenTTL,
		specs.RefreshTokenTTL,
		tracer,
		monitor,
		logger,
	)

	idTokenVerifier, err := consumerIDTokenVerifier(context.Background(), specs)
	if err != nil {
		return err
	}

	directoryClient := directory.NewClient(specs.DirectoryUserinfoURL, specs.DirectoryTimeout, tracer, monitor, logger)

	consumerVerifier := authentication.NewConsumerVerifier(idTokenVerifier, s, tracer, monitor, logger)
	enterpriseVerifier := authentication.NewEnterpriseVerifier(directoryClient, s, tracer, monitor, logger)
	deviceVerifier := authentication.NewDeviceCredentialVerifier(issuer, s, tracer, monitor, logger)

	resolver := authentication.NewResolver(consumerVerifier, enterpriseVerifier, deviceVerifier, tracer, monitor, logger)
	authMiddleware := authentication.NewMiddleware(resolver, tracer, monitor, logger)

	invitesService := invites.NewService(s, specs.InviteLifetime, tracer, monitor, logger)
	provisioningService := provisioning.NewService(dbClient, s, invitesService, tracer, monitor, logger)
	tenantService := tenant.NewService(dbClient, s, tracer, monitor, logger)
	deviceService := device.NewService(s, issuer, tracer, monitor, logger)

	router := web.NewRouter(
		provisioning.NewAPI(provisioningService, authMiddleware, logger),
		invites.NewAPI(invitesService, authMiddleware, logger),
		tenant.NewAPI(tenantService, authMiddleware, logger),
		device.NewAPI(deviceService, authMiddleware, logger),
		dbClient,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

// consumerIDTokenVerifier wires the consumer sign-in verifier, preferring a
// pinned JWKS URL over OIDC discovery when one is configured.
func consumerIDTokenVerifier(ctx context.Context, specs *config.EnvSpec) (*oidc.IDTokenVerifier, error) {
	if specs.ConsumerJWKSURL != "" {
		return authentication.NewProviderWithJWKS(ctx, specs.ConsumerIssuer, specs.ConsumerJWKSURL)
	}

	provider, err := authentication.NewProvider(ctx, specs.ConsumerIssuer)
	if err != nil {
		return nil, err
	}

	return provider.Verifier(&oidc.Config{SkipClientIDCheck: true}), nil
}
