package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stwalsh4118/estate/api/internal/config"
)

// Test configuration for local PostgreSQL
func getTestConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		Name:     getEnvOrDefault("DB_NAME", "estate"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		PoolMin:  2,
		PoolMax:  5,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		Name:     "estate",
		User:     "svc",
		Password: "p@ss/word",
	}

	dsn := DSN(cfg)

	parsed, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("DSN %q did not parse: %v", dsn, err)
	}
	if parsed.ConnConfig.Host != "db.internal" {
		t.Errorf("Expected host db.internal, got %s", parsed.ConnConfig.Host)
	}
	if parsed.ConnConfig.Port != 5433 {
		t.Errorf("Expected port 5433, got %d", parsed.ConnConfig.Port)
	}
	if parsed.ConnConfig.Password != "p@ss/word" {
		t.Errorf("Expected password to survive escaping, got %q", parsed.ConnConfig.Password)
	}
	if parsed.ConnConfig.Database != "estate" {
		t.Errorf("Expected database estate, got %s", parsed.ConnConfig.Database)
	}
	if parsed.ConnConfig.RuntimeParams["application_name"] != applicationName {
		t.Errorf("Expected application_name %s, got %s", applicationName, parsed.ConnConfig.RuntimeParams["application_name"])
	}
}

func TestPoolConfig(t *testing.T) {
	cfg := getTestConfig()
	cfg.PoolMin = 3
	cfg.PoolMax = 9

	pc, err := poolConfig(cfg)
	if err != nil {
		t.Fatalf("poolConfig failed: %v", err)
	}
	if pc.MinConns != 3 || pc.MaxConns != 9 {
		t.Errorf("Expected pool bounds 3..9, got %d..%d", pc.MinConns, pc.MaxConns)
	}
	if pc.ConnConfig.ConnectTimeout != connectTimeout {
		t.Errorf("Expected connect timeout %s, got %s", connectTimeout, pc.ConnConfig.ConnectTimeout)
	}
	if pc.MaxConnIdleTime != maxConnIdleTime {
		t.Errorf("Expected idle time %s, got %s", maxConnIdleTime, pc.MaxConnIdleTime)
	}
}

func TestPoolConfig_InvalidPort(t *testing.T) {
	cfg := getTestConfig()
	cfg.Port = "not-a-port"

	if _, err := poolConfig(cfg); err == nil {
		t.Error("Expected an error for a non-numeric port")
	}
}

func TestNewPostgresPool_Success(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := getTestConfig()

	db, err := NewPostgresPool(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	defer db.Close()

	if db.Pool == nil {
		t.Error("Expected Pool to be initialized")
	}

	stats := db.Stats()
	if stats.Max != int32(cfg.PoolMax) {
		t.Errorf("Expected Max %d, got %d", cfg.PoolMax, stats.Max)
	}
	if stats.Total < stats.Idle+stats.Acquired {
		t.Errorf("Expected total %d to cover idle %d and acquired %d", stats.Total, stats.Idle, stats.Acquired)
	}
}

func TestNewPostgresPool_InvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	cfg := getTestConfig()
	cfg.Host = "invalid-host-that-does-not-exist"

	_, err := NewPostgresPool(ctx, cfg)
	if err == nil {
		t.Error("Expected error when connecting to invalid host")
	}
}

func TestPing_AfterClose(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	db, err := NewPostgresPool(ctx, getTestConfig())
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	db.Close()

	// Ping should fail after close
	if err := db.Ping(ctx); err == nil {
		t.Error("Expected ping to fail after pool is closed")
	}
}

func TestClose_MultipleCalls(t *testing.T) {
	// A zero Database has no pool; Close and Stats must cope.
	db := &Database{}
	db.Close()
	db.Close()

	if db.Stats() != (PoolStats{}) {
		t.Errorf("Expected zero stats without a pool, got %+v", db.Stats())
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	db, err := NewPostgresPool(ctx, getTestConfig())
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := db.EnsureSchema(ctx); err != nil {
			t.Fatalf("EnsureSchema run %d failed: %v", i+1, err)
		}
	}

	var exists bool
	err = db.Pool.QueryRow(ctx, "SELECT to_regclass('catalog_items') IS NOT NULL").Scan(&exists)
	if err != nil {
		t.Fatalf("Failed to check table: %v", err)
	}
	if !exists {
		t.Error("Expected catalog_items table to exist")
	}
}
