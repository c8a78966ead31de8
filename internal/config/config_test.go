package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":8084" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != "file" {
		t.Fatalf("StorageDriver = %q", cfg.StorageDriver)
	}
	if cfg.SnapshotPath != "data/snapshot.json" {
		t.Fatalf("SnapshotPath = %q", cfg.SnapshotPath)
	}
	if cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("AccessTokenTTL = %v", cfg.AccessTokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")

	cfg := Load()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != "redis" {
		t.Fatalf("StorageDriver = %q", cfg.StorageDriver)
	}
	if cfg.RedisAddr != "127.0.0.1:6379" {
		t.Fatalf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Fatalf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("AccessTokenTTL = %v", cfg.AccessTokenTTL)
	}
}

func TestDurationSecondsFallback(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_SECONDS", "90")
	if cfg := Load(); cfg.AccessTokenTTL != 90*time.Second {
		t.Fatalf("AccessTokenTTL = %v", cfg.AccessTokenTTL)
	}
}

func TestDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "not-a-duration")
	if cfg := Load(); cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("AccessTokenTTL = %v", cfg.AccessTokenTTL)
	}
}
