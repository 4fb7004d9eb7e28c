package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr string

	// GeminiAPIKey backs research, campus media, and live sessions.
	GeminiAPIKey string

	// DatabaseURL selects the Postgres store; empty runs in-memory.
	DatabaseURL string

	// AdminToken guards the admin export; empty disables the route.
	AdminToken string

	MaxBodyBytes int64

	// CORS
	CORSAllowedOrigins map[string]struct{} // empty => disabled

	// Campus media budgets.
	VideoPollInterval time.Duration
	VideoPollBudget   time.Duration

	// Operational defaults
	ReadHeaderTimeout   time.Duration
	ReadTimeout         time.Duration
	HandlerTimeout      time.Duration
	ShutdownGracePeriod time.Duration
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Addr:                envOr("COLLEGEGATE_ADDR", ":8080"),
		GeminiAPIKey:        strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		DatabaseURL:         strings.TrimSpace(os.Getenv("COLLEGEGATE_DATABASE_URL")),
		AdminToken:          strings.TrimSpace(os.Getenv("COLLEGEGATE_ADMIN_TOKEN")),
		MaxBodyBytes:        envInt64Or("COLLEGEGATE_MAX_BODY_BYTES", 8<<20), // 8 MiB
		CORSAllowedOrigins:  make(map[string]struct{}),
		VideoPollInterval:   envDurationOr("COLLEGEGATE_VIDEO_POLL_INTERVAL", 5*time.Second),
		VideoPollBudget:     envDurationOr("COLLEGEGATE_VIDEO_POLL_BUDGET", 6*time.Minute),
		ReadHeaderTimeout:   envDurationOr("COLLEGEGATE_READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:         envDurationOr("COLLEGEGATE_READ_TIMEOUT", 30*time.Second),
		HandlerTimeout:      envDurationOr("COLLEGEGATE_TOTAL_REQUEST_TIMEOUT", 10*time.Minute),
		ShutdownGracePeriod: envDurationOr("COLLEGEGATE_SHUTDOWN_GRACE_PERIOD", 30*time.Second),
	}

	for _, origin := range splitCSV(os.Getenv("COLLEGEGATE_CORS_ORIGINS")) {
		cfg.CORSAllowedOrigins[origin] = struct{}{}
	}

	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("COLLEGEGATE_MAX_BODY_BYTES must be > 0")
	}
	if cfg.VideoPollInterval <= 0 {
		return Config{}, fmt.Errorf("COLLEGEGATE_VIDEO_POLL_INTERVAL must be > 0")
	}
	if cfg.VideoPollBudget <= 0 {
		return Config{}, fmt.Errorf("COLLEGEGATE_VIDEO_POLL_BUDGET must be > 0")
	}
	if cfg.ReadHeaderTimeout <= 0 {
		return Config{}, fmt.Errorf("COLLEGEGATE_READ_HEADER_TIMEOUT must be > 0")
	}
	if cfg.ReadTimeout <= 0 {
		return Config{}, fmt.Errorf("COLLEGEGATE_READ_TIMEOUT must be > 0")
	}
	if cfg.HandlerTimeout <= 0 {
		return Config{}, fmt.Errorf("COLLEGEGATE_TOTAL_REQUEST_TIMEOUT must be > 0")
	}
	if cfg.ShutdownGracePeriod <= 0 {
		return Config{}, fmt.Errorf("COLLEGEGATE_SHUTDOWN_GRACE_PERIOD must be > 0")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt64Or(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envDurationOr(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
