// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"crypto/rand"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/canonical/guard-api/internal/db"
	"github.com/canonical/guard-api/internal/logging"
	"github.com/canonical/guard-api/internal/monitoring"
	"github.com/canonical/guard-api/internal/tracing"
	"github.com/canonical/guard-api/internal/types"
	"github.com/canonical/guard-api/migrations"
)

// newIntegrationStorage connects to the database named by TEST_DSN and
// brings its schema up to date. Tests built on it exercise the real
// SQL, including the partial indexes and the conditional redemption
// UPDATE, and are skipped when no database is available.
func newIntegrationStorage(t *testing.T) *Storage {
	t.Helper()

	dsn := os.Getenv("TEST_DSN")
	if dsn == "" {
		t.Skip("TEST_DSN not set, skipping database integration test")
	}

	ctx := context.Background()

	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("failed to parse TEST_DSN: %v", err)
	}

	sqlDB := stdlib.OpenDB(*config)
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.EmbedMigrations)
	if err != nil {
		t.Fatalf("failed to create goose provider: %v", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	_ = sqlDB.Close()

	client, err := db.NewDBClient(
		db.Config{
			DSN:             dsn,
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: time.Minute,
			MaxConnIdleTime: time.Minute,
		},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(""),
		logging.NewNoopLogger(),
	)
	if err != nil {
		t.Fatalf("failed to create db client: %v", err)
	}
	t.Cleanup(client.Close)

	return NewStorage(client, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(""), logging.NewNoopLogger())
}

func randomInviteCode(t *testing.T) string {
	t.Helper()

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("failed to generate invite code: %v", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}

func createTestTenant(t *testing.T, s *Storage) *types.Tenant {
	t.Helper()

	tenant, err := s.CreateTenant(context.Background(), &types.Tenant{
		Name:               "integration-" + randomInviteCode(t),
		SubscriptionStatus: types.SubscriptionNone,
	})
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	return tenant
}

func TestRedeemInvite_ConcurrentRedemptionsAtMostOnce(t *testing.T) {
	s := newIntegrationStorage(t)
	ctx := context.Background()

	tenant := createTestTenant(t, s)
	code := randomInviteCode(t)

	if _, err := s.CreateInvite(ctx, &types.Invite{
		TenantID:  tenant.ID,
		Code:      code,
		Type:      types.InviteTypeDevice,
		ExpiresAt: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}

	const attempts = 8
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RedeemInvite(ctx, tenant.ID, code, types.InviteTypeDevice)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var redeemed, rejected int
	for err := range results {
		switch {
		case err == nil:
			redeemed++
		case errors.Is(err, ErrNotFound):
			rejected++
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}

	if redeemed != 1 {
		t.Errorf("expected exactly one successful redemption, got %d", redeemed)
	}
	if rejected != attempts-1 {
		t.Errorf("expected %d rejected redemptions, got %d", attempts-1, rejected)
	}
}

func TestRedeemInvite_SecondRedemptionRejected(t *testing.T) {
	s := newIntegrationStorage(t)
	ctx := context.Background()

	tenant := createTestTenant(t, s)
	code := randomInviteCode(t)

	if _, err := s.CreateInvite(ctx, &types.Invite{
		TenantID:  tenant.ID,
		Code:      code,
		Type:      types.InviteTypeParent,
		ExpiresAt: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}

	redeemed, err := s.RedeemInvite(ctx, tenant.ID, code, types.InviteTypeParent)
	if err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}
	if redeemed.UsedAt == nil {
		t.Error("redeemed invite must carry a used_at timestamp")
	}

	if _, err := s.RedeemInvite(ctx, tenant.ID, code, types.InviteTypeParent); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second redemption, got %v", err)
	}
}

func TestRedeemInvite_ExpiredCodeRejected(t *testing.T) {
	s := newIntegrationStorage(t)
	ctx := context.Background()

	tenant := createTestTenant(t, s)
	code := randomInviteCode(t)

	if _, err := s.CreateInvite(ctx, &types.Invite{
		TenantID:  tenant.ID,
		Code:      code,
		Type:      types.InviteTypeParent,
		ExpiresAt: time.Now().Add(-time.Minute),
	}); err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}

	if _, err := s.RedeemInvite(ctx, tenant.ID, code, types.InviteTypeParent); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired invite, got %v", err)
	}
}
