package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.MaxBodyBytes != 8<<20 {
		t.Errorf("MaxBodyBytes = %d", cfg.MaxBodyBytes)
	}
	if cfg.VideoPollInterval != 5*time.Second || cfg.VideoPollBudget != 6*time.Minute {
		t.Errorf("video budgets = %v / %v", cfg.VideoPollInterval, cfg.VideoPollBudget)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("COLLEGEGATE_ADDR", ":9090")
	t.Setenv("COLLEGEGATE_DATABASE_URL", "postgres://localhost/collegegate")
	t.Setenv("COLLEGEGATE_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("COLLEGEGATE_VIDEO_POLL_INTERVAL", "1s")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.DatabaseURL != "postgres://localhost/collegegate" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.VideoPollInterval != time.Second {
		t.Errorf("poll interval = %v", cfg.VideoPollInterval)
	}
}

func TestLoadFromEnv_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("COLLEGEGATE_READ_TIMEOUT", "not-a-duration")
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error: %v", err)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout = %v, want default", cfg.ReadTimeout)
	}
}

func TestLoadFromEnv_RejectsZeroBody(t *testing.T) {
	t.Setenv("COLLEGEGATE_MAX_BODY_BYTES", "-1")
	if _, err := LoadFromEnv(); err == nil {
		t.Error("expected error for negative body limit")
	}
}
