package config

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default TTL 24h, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.Roles != "ADMIN,AGENT,EXPERT,USER" {
		t.Fatalf("unexpected default roles: %s", cfg.Auth.Roles)
	}
	if cfg.Auth.RequireActive {
		t.Fatalf("active-account gating must be off by default")
	}
	if cfg.AlertWorkers != 8 {
		t.Fatalf("expected 8 alert workers, got %d", cfg.AlertWorkers)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(context.Background()); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("ROLES", "ADMIN,USER")
	t.Setenv("AUTH_REQUIRE_ACTIVE", "true")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("expected TTL 1h, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.Roles != "ADMIN,USER" {
		t.Fatalf("unexpected roles: %s", cfg.Auth.Roles)
	}
	if !cfg.Auth.RequireActive {
		t.Fatalf("expected active-account gating enabled")
	}
}
