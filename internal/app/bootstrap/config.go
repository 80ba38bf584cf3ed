// Package bootstrap wires configuration and adapters into a runnable
// service.
package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration. File defaults come from
// configs/default.yaml; environment variables override for deployed
// runs.
type Config struct {
	ServiceID string
	HTTPPort  int

	DatabaseURL string
	RedisURL    string

	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	BcryptCost int

	AllowedOrigins []string

	APIRateLimit     int
	APIRateWindow    time.Duration
	AuthRateLimit    int
	AuthRateWindow   time.Duration
	SearchRateLimit  int
	SearchRateWindow time.Duration
	UploadRateLimit  int
	UploadRateWindow time.Duration

	MaxDBConns         int32
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

// configFile mirrors the YAML schema of configs/default.yaml. It stays
// separate from Config so runtime-only fields remain internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Auth struct {
		JWTIssuer      string `yaml:"jwt_issuer"`
		AccessTTLHours int    `yaml:"access_ttl_hours"`
		RefreshTTLDays int    `yaml:"refresh_ttl_days"`
		BcryptCost     int    `yaml:"bcrypt_cost"`
	} `yaml:"auth"`
	HTTP struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
}

// LoadConfig resolves configuration in priority order: defaults -> file
// -> env.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:          "openlance-api",
		HTTPPort:           8080,
		JWTIssuer:          "openlance",
		AccessTTL:          24 * time.Hour,
		RefreshTTL:         30 * 24 * time.Hour,
		BcryptCost:         12,
		AllowedOrigins:     []string{"*"},
		APIRateLimit:       100,
		APIRateWindow:      time.Minute,
		AuthRateLimit:      5,
		AuthRateWindow:     15 * time.Minute,
		SearchRateLimit:    20,
		SearchRateWindow:   time.Minute,
		UploadRateLimit:    5,
		UploadRateWindow:   time.Minute,
		MaxDBConns:         20,
		OutboxPollInterval: 2 * time.Second,
		OutboxBatchSize:    100,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Auth.JWTIssuer != "" {
			cfg.JWTIssuer = f.Auth.JWTIssuer
		}
		if f.Auth.AccessTTLHours > 0 {
			cfg.AccessTTL = time.Duration(f.Auth.AccessTTLHours) * time.Hour
		}
		if f.Auth.RefreshTTLDays > 0 {
			cfg.RefreshTTL = time.Duration(f.Auth.RefreshTTLDays) * 24 * time.Hour
		}
		if f.Auth.BcryptCost > 0 {
			cfg.BcryptCost = f.Auth.BcryptCost
		}
		if len(f.HTTP.AllowedOrigins) > 0 {
			cfg.AllowedOrigins = f.HTTP.AllowedOrigins
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = envOrDefault("JWT_ISSUER", cfg.JWTIssuer)
	cfg.AllowedOrigins = envCSV("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))

	cfg.AccessTTL = time.Duration(envInt("ACCESS_TOKEN_EXPIRY_HOURS", int(cfg.AccessTTL.Hours()))) * time.Hour
	cfg.RefreshTTL = time.Duration(envInt("REFRESH_TOKEN_EXPIRY_DAYS", int(cfg.RefreshTTL.Hours()/24))) * 24 * time.Hour

	cfg.APIRateLimit = envInt("RATE_LIMIT_API", cfg.APIRateLimit)
	cfg.APIRateWindow = time.Duration(envInt("RATE_LIMIT_API_WINDOW_SECONDS", int(cfg.APIRateWindow.Seconds()))) * time.Second
	cfg.AuthRateLimit = envInt("RATE_LIMIT_AUTH", cfg.AuthRateLimit)
	cfg.AuthRateWindow = time.Duration(envInt("RATE_LIMIT_AUTH_WINDOW_SECONDS", int(cfg.AuthRateWindow.Seconds()))) * time.Second
	cfg.SearchRateLimit = envInt("RATE_LIMIT_SEARCH", cfg.SearchRateLimit)
	cfg.SearchRateWindow = time.Duration(envInt("RATE_LIMIT_SEARCH_WINDOW_SECONDS", int(cfg.SearchRateWindow.Seconds()))) * time.Second
	cfg.UploadRateLimit = envInt("RATE_LIMIT_UPLOAD", cfg.UploadRateLimit)
	cfg.UploadRateWindow = time.Duration(envInt("RATE_LIMIT_UPLOAD_WINDOW_SECONDS", int(cfg.UploadRateWindow.Seconds()))) * time.Second

	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}

	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid
// values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envCSV parses comma-separated env vars and removes empty segments.
func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	if len(parts) == 0 {
		return fallback
	}
	return parts
}
