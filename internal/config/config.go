package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cfb-catalog/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	DBURL                   string
	DBDisablePreparedBinary bool
	CORSAllowedOrigins      []string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	PprofEnabled            bool
	PprofAddr               string
	CFBDBaseURL             string
	CFBDAPIKey              string
	CFBDSeason              int
	CFBDMaxPages            int
	CFBDTimeout             time.Duration
	CFBDCircuitEnabled      bool
	CFBDCircuitFailureCount int
	CFBDCircuitOpenTimeout  time.Duration
	CFBDCircuitHalfOpenMax  int
	LogLevel                logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	season, err := getEnvAsInt("CFBD_SEASON", time.Now().Year())
	if err != nil {
		return Config{}, fmt.Errorf("parse CFBD_SEASON: %w", err)
	}
	if season < 1869 {
		return Config{}, fmt.Errorf("CFBD_SEASON must be >= 1869")
	}

	maxPages, err := getEnvAsInt("CFBD_MAX_PAGES", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse CFBD_MAX_PAGES: %w", err)
	}
	if maxPages < 1 {
		return Config{}, fmt.Errorf("CFBD_MAX_PAGES must be >= 1")
	}

	cfbdTimeout, err := time.ParseDuration(getEnv("CFBD_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CFBD_TIMEOUT: %w", err)
	}
	if cfbdTimeout <= 0 {
		return Config{}, fmt.Errorf("CFBD_TIMEOUT must be > 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("CFBD_CIRCUIT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CFBD_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("CFBD_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CFBD_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("CFBD_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("CFBD_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CFBD_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("CFBD_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMax, err := getEnvAsInt("CFBD_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CFBD_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("CFBD_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "cfb-catalog-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                   getEnv("DB_URL", ""),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		PprofEnabled:            pprofEnabled,
		PprofAddr:               pprofAddr,
		CFBDBaseURL:             strings.TrimSpace(getEnv("CFBD_BASE_URL", "https://api.collegefootballdata.com")),
		CFBDAPIKey:              strings.TrimSpace(getEnv("CFBD_API_KEY", "")),
		CFBDSeason:              season,
		CFBDMaxPages:            maxPages,
		CFBDTimeout:             cfbdTimeout,
		CFBDCircuitEnabled:      circuitEnabled,
		CFBDCircuitFailureCount: circuitFailureCount,
		CFBDCircuitOpenTimeout:  circuitOpenTimeout,
		CFBDCircuitHalfOpenMax:  circuitHalfOpenMax,
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
