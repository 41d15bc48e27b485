package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected base defaults: %+v", cfg)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development by default")
	}
	if cfg.Web.RosterFetchTimeout != 5*time.Second {
		t.Fatalf("expected 5s fetch timeout, got %s", cfg.Web.RosterFetchTimeout)
	}
	if cfg.Web.RosterMaxConcurrency != 8 {
		t.Fatalf("expected concurrency 8, got %d", cfg.Web.RosterMaxConcurrency)
	}
	if cfg.Enrich.Workers != 4 {
		t.Fatalf("expected 4 enrich workers, got %d", cfg.Enrich.Workers)
	}
	if cfg.Neople.BaseURL != "https://api.neople.co.kr/df" {
		t.Fatalf("unexpected neople base url %q", cfg.Neople.BaseURL)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":             "secret",
		"ENV":                    "production",
		"REDIS_DB":               "3",
		"ROSTER_FETCH_TIMEOUT":   "750ms",
		"ROSTER_MAX_CONCURRENCY": "2",
		"COOKIE_SECURE":          "true",
		"NEOPLE_RATE_PER_SEC":    "2.5",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Fatalf("expected production")
	}
	if cfg.Redis.DB != 3 {
		t.Fatalf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.Web.RosterFetchTimeout != 750*time.Millisecond || cfg.Web.RosterMaxConcurrency != 2 {
		t.Fatalf("unexpected roster config: %+v", cfg.Web)
	}
	if !cfg.Web.CookieSecure {
		t.Fatalf("expected secure cookies")
	}
	if cfg.Neople.RatePerSec != 2.5 {
		t.Fatalf("expected rate 2.5, got %v", cfg.Neople.RatePerSec)
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":   {},
		"zero concurrency": {"JWT_SECRET": "s", "ROSTER_MAX_CONCURRENCY": "0"},
		"bad duration":     {"JWT_SECRET": "s", "ROSTER_FETCH_TIMEOUT": "soon"},
	}
	for name, env := range cases {
		if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
