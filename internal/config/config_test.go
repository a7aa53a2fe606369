package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
env: prod
upstream:
  base_url: http://api.internal:4000
  timeout: 3s
auth:
  jwt_secret: yaml-secret
  cookie_ttl: 12h
rate_limit:
  login_per_minute: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Env != "prod" || !cfg.IsProd() {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.Upstream.BaseURL != "http://api.internal:4000" {
		t.Fatalf("unexpected upstream base url: %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 3*time.Second {
		t.Fatalf("unexpected upstream timeout: %s", cfg.Upstream.Timeout)
	}
	if cfg.Auth.JWTSecret != "yaml-secret" {
		t.Fatalf("unexpected jwt secret: %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.CookieTTL != 12*time.Hour {
		t.Fatalf("unexpected cookie ttl: %s", cfg.Auth.CookieTTL)
	}
	if cfg.RateLimit.LoginPerMinute != 5 {
		t.Fatalf("unexpected login rate: %d", cfg.RateLimit.LoginPerMinute)
	}

	if cfg.HTTP.Addr != ":3000" {
		t.Fatalf("http addr default should stay :3000, got %q", cfg.HTTP.Addr)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("redis addr default should stay, got %q", cfg.Redis.Addr)
	}
}

func TestEnvOverridesWinOverYAML(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("UPSTREAM_BASE_URL", "http://api.env:5000")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("COOKIE_TTL", "6h")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Env != "prod" {
		t.Fatalf("unexpected env: %q", cfg.Env)
	}
	if cfg.Upstream.BaseURL != "http://api.env:5000" {
		t.Fatalf("unexpected upstream base url: %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 2*time.Second {
		t.Fatalf("unexpected upstream timeout: %s", cfg.Upstream.Timeout)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("unexpected jwt secret: %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.CookieTTL != 6*time.Hour {
		t.Fatalf("unexpected cookie ttl: %s", cfg.Auth.CookieTTL)
	}
	if cfg.RateLimit.LoginPerMinute != 3 {
		t.Fatalf("unexpected login rate: %d", cfg.RateLimit.LoginPerMinute)
	}
}

func TestJWTSecretHasNoDefault(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Auth.JWTSecret != "" {
		t.Fatalf("jwt secret must default to empty so validation fails closed, got %q", cfg.Auth.JWTSecret)
	}
}

func TestLoadRejectsInvalidDurationEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("UPSTREAM_TIMEOUT", "not-a-duration")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for invalid UPSTREAM_TIMEOUT")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"UPSTREAM_BASE_URL",
		"UPSTREAM_TIMEOUT",
		"JWT_SECRET",
		"COOKIE_TTL",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"LOGIN_RATE_PER_MINUTE",
		"STATIC_DIR",
	} {
		t.Setenv(key, "")
	}
}
