package server

import (
	"testing"
	"time"

	"github.com/NVIDIA/restaurant-gateway/pkg/defaults"
)

func TestParseConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		cfg := parseConfig()

		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}

		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}

		if cfg.RateLimit != 100 {
			t.Errorf("expected rate limit 100, got %v", cfg.RateLimit)
		}

		if cfg.RateLimitBurst != 200 {
			t.Errorf("expected rate limit burst 200, got %d", cfg.RateLimitBurst)
		}

		if cfg.ReadTimeout != 10*time.Second {
			t.Errorf("expected read timeout 10s, got %v", cfg.ReadTimeout)
		}

		if cfg.WriteTimeout != defaults.ServerWriteTimeout {
			t.Errorf("expected write timeout %v, got %v", defaults.ServerWriteTimeout, cfg.WriteTimeout)
		}

		if cfg.IdleTimeout != 120*time.Second {
			t.Errorf("expected idle timeout 120s, got %v", cfg.IdleTimeout)
		}

		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
		}

		if len(cfg.CORSAllowedOrigins) != 0 {
			t.Errorf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("custom port from environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")

		cfg := parseConfig()

		if cfg.Port != 9090 {
			t.Errorf("expected port 9090 from env, got %d", cfg.Port)
		}
	})

	t.Run("invalid port from environment uses default", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg := parseConfig()

		if cfg.Port != 8080 {
			t.Errorf("expected default port 8080 for invalid env, got %d", cfg.Port)
		}
	})

	t.Run("shutdown timeout from environment", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")

		cfg := parseConfig()

		if cfg.ShutdownTimeout != 5*time.Second {
			t.Errorf("expected shutdown timeout 5s, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("non-positive shutdown timeout ignored", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "0")

		cfg := parseConfig()

		if cfg.ShutdownTimeout != defaults.ServerShutdownTimeout {
			t.Errorf("expected default shutdown timeout, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("rate limit from environment", func(t *testing.T) {
		t.Setenv("RATE_LIMIT", "10")
		t.Setenv("RATE_LIMIT_BURST", "20")

		cfg := parseConfig()

		if cfg.RateLimit != 10 || cfg.RateLimitBurst != 20 {
			t.Errorf("expected 10/20, got %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
		}
	})

	t.Run("cors origins from environment", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

		cfg := parseConfig()

		if len(cfg.CORSAllowedOrigins) != 2 ||
			cfg.CORSAllowedOrigins[0] != "https://a.example" ||
			cfg.CORSAllowedOrigins[1] != "https://b.example" {
			t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
		}
	})
}
