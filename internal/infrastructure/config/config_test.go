package config_test

import (
	"testing"
	"time"

	"github.com/apper-canvas/pennywise/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.StorageDriver != "postgres" {
		t.Fatalf("expected default storage driver postgres, got %s", cfg.StorageDriver)
	}

	if cfg.RedisURL != "" {
		t.Fatalf("expected redis URL default to be empty, got %q", cfg.RedisURL)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.ReportCacheTTL != time.Minute {
		t.Fatalf("expected default report cache TTL 1m, got %s", cfg.ReportCacheTTL)
	}

	if cfg.RateLimitEnabled {
		t.Fatalf("expected rate limiting to be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SEED_PATH", "/tmp/seed.json")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("REPORT_CACHE_TTL", "5m")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "10")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StorageDriver != "memory" {
		t.Fatalf("expected storage driver override, got %s", cfg.StorageDriver)
	}

	if cfg.SeedPath != "/tmp/seed.json" {
		t.Fatalf("expected seed path override, got %s", cfg.SeedPath)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.ReportCacheTTL != 5*time.Minute {
		t.Fatalf("expected report cache TTL override, got %s", cfg.ReportCacheTTL)
	}

	if !cfg.RateLimitEnabled || cfg.RateLimitRPS != 10 {
		t.Fatalf("expected rate limit overrides, got enabled=%v rps=%v", cfg.RateLimitEnabled, cfg.RateLimitRPS)
	}
}
