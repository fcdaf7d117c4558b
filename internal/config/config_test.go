package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/moneyseed/moneyseed/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	// empty values read as unset
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "")

	cfg, err := config.Load()

	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Env != "dev" {
		t.Fatalf("Env = %q, want dev", cfg.Env)
	}

	if cfg.Port != 8080 {
		t.Fatalf("Port = %d, want 8080", cfg.Port)
	}

	if cfg.JWTAccessTTLMinutes != 60 {
		t.Fatalf("JWTAccessTTLMinutes = %d, want 60", cfg.JWTAccessTTLMinutes)
	}

	if cfg.AccessTTL() != time.Hour {
		t.Fatalf("AccessTTL = %v, want 1h", cfg.AccessTTL())
	}

	if !cfg.UsingDevSecret() {
		t.Fatalf("expected dev secret fallback when JWT_SECRET unset")
	}
}

func TestLoadProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	// guard against an ambient JWT_SECRET leaking in
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()

	if !errors.Is(err, config.ErrMissingJWTSecret) {
		t.Fatalf("Load(prod, no secret) = %v, want ErrMissingJWTSecret", err)
	}

	t.Setenv("JWT_SECRET", "an-actual-secret")

	cfg, err := config.Load()

	if err != nil {
		t.Fatalf("Load(prod, with secret) returned error: %v", err)
	}

	if cfg.UsingDevSecret() {
		t.Fatalf("prod config should not report the dev secret")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "15")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app?sslmode=disable")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := config.Load()

	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Fatalf("Port = %d, want 9090", cfg.Port)
	}

	if cfg.AccessTTL() != 15*time.Minute {
		t.Fatalf("AccessTTL = %v, want 15m", cfg.AccessTTL())
	}

	if cfg.DBURL != "postgres://u:p@db:5432/app?sslmode=disable" {
		t.Fatalf("DBURL = %q", cfg.DBURL)
	}

	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}
