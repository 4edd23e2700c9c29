package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_CFBDConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CFBD_BASE_URL", "")
		t.Setenv("CFBD_MAX_PAGES", "")
		t.Setenv("CFBD_TIMEOUT", "")
		t.Setenv("CFBD_CIRCUIT_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CFBDBaseURL != "https://api.collegefootballdata.com" {
			t.Fatalf("unexpected default base url: %q", cfg.CFBDBaseURL)
		}
		if cfg.CFBDMaxPages != 200 {
			t.Fatalf("unexpected default max pages: %d", cfg.CFBDMaxPages)
		}
		if cfg.CFBDTimeout != 20*time.Second {
			t.Fatalf("unexpected default timeout: %s", cfg.CFBDTimeout)
		}
		if cfg.CFBDCircuitEnabled {
			t.Fatalf("expected circuit breaker disabled by default")
		}
		if cfg.CFBDSeason < 1869 {
			t.Fatalf("unexpected default season: %d", cfg.CFBDSeason)
		}
	})

	t.Run("season override", func(t *testing.T) {
		t.Setenv("CFBD_SEASON", "2023")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CFBDSeason != 2023 {
			t.Fatalf("unexpected season: %d", cfg.CFBDSeason)
		}
	})

	t.Run("invalid season", func(t *testing.T) {
		t.Setenv("CFBD_SEASON", "1776")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for CFBD_SEASON before 1869")
		}
	})

	t.Run("invalid max pages", func(t *testing.T) {
		t.Setenv("CFBD_SEASON", "")
		t.Setenv("CFBD_MAX_PAGES", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for CFBD_MAX_PAGES < 1")
		}
	})
}

func TestLoad_CircuitBreakerKnobs(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CFBD_CIRCUIT_ENABLED", "true")
	t.Setenv("CFBD_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("CFBD_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("CFBD_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.CFBDCircuitEnabled {
		t.Fatalf("expected circuit breaker enabled")
	}
	if cfg.CFBDCircuitFailureCount != 3 {
		t.Fatalf("unexpected failure count: %d", cfg.CFBDCircuitFailureCount)
	}
	if cfg.CFBDCircuitOpenTimeout != 30*time.Second {
		t.Fatalf("unexpected open timeout: %s", cfg.CFBDCircuitOpenTimeout)
	}
	if cfg.CFBDCircuitHalfOpenMax != 1 {
		t.Fatalf("unexpected half open max: %d", cfg.CFBDCircuitHalfOpenMax)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"WARN", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"", "info"},
		{"nonsense", "info"},
	}
	for _, tc := range cases {
		if got := parseLogLevel(tc.in).String(); got != tc.want {
			t.Fatalf("parseLogLevel(%q)=%s, want=%s", tc.in, got, tc.want)
		}
	}
}
