// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string        `env:"NXT_DB_PATH" envDefault:"./data/nxtech.db"`
	SessionSecret string        `env:"NXT_SESSION_SECRET,required"`
	TokenTTL      time.Duration `env:"NXT_TOKEN_TTL" envDefault:"24h"`
	ServerHost    string        `env:"NXT_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int           `env:"NXT_SERVER_PORT" envDefault:"8080"`
	Env           string        `env:"NXT_ENV" envDefault:"development"`
	LogLevel      string        `env:"NXT_LOG_LEVEL" envDefault:"info"`
	SiteURL       string        `env:"NXT_SITE_URL"` // Public origin for sitemap links; the request host when empty

	// Revalidation
	RevalidateSecret  string `env:"NXT_REVALIDATE_SECRET"`   // Shared secret for POST /api/revalidate
	RevalidateHookURL string `env:"NXT_REVALIDATE_HOOK_URL"` // Optional remote frontend hook

	// Cache configuration
	RedisURL     string `env:"NXT_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"NXT_CACHE_PREFIX" envDefault:"nxt:"`   // Redis key prefix
	CacheTTL     int    `env:"NXT_CACHE_TTL" envDefault:"3600"`      // Page cache TTL in seconds
	CacheMaxSize int    `env:"NXT_CACHE_MAX_SIZE" envDefault:"5000"` // Max memory cache entries

	// Uploads
	UploadsDir  string `env:"NXT_UPLOADS_DIR" envDefault:"./uploads"`
	UploadMaxMB int    `env:"NXT_UPLOAD_MAX_MB" envDefault:"10"`
	S3Bucket    string `env:"NXT_S3_BUCKET"`
	S3Region    string `env:"NXT_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"NXT_S3_ENDPOINT"`
	S3AccessKey string `env:"NXT_S3_ACCESS_KEY"`
	S3SecretKey string `env:"NXT_S3_SECRET_KEY"`
	S3PublicURL string `env:"NXT_S3_PUBLIC_URL"`

	// GeoIP configuration
	GeoIPDBPath string `env:"NXT_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Bootstrap admin, created when the users table is empty
	AdminEmail    string `env:"NXT_ADMIN_EMAIL" envDefault:"admin@nxtech.local"`
	AdminPassword string `env:"NXT_ADMIN_PASSWORD"`

	APIRateLimit       float64 `env:"NXT_API_RATE_LIMIT" envDefault:"10"`
	EventRetentionDays int     `env:"NXT_EVENT_RETENTION_DAYS" envDefault:"30"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseS3 returns true if uploads should be stored in an S3 bucket.
func (c Config) UseS3() bool {
	return c.S3Bucket != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// UploadMaxBytes returns the upload size limit in bytes.
func (c Config) UploadMaxBytes() int64 {
	return int64(c.UploadMaxMB) << 20
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("NXT_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("NXT_SESSION_SECRET is a known default value and must not be used")
		}
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("NXT_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	if cfg.UseS3() && (cfg.S3AccessKey == "" || cfg.S3SecretKey == "") {
		return nil, fmt.Errorf("NXT_S3_ACCESS_KEY and NXT_S3_SECRET_KEY are required when NXT_S3_BUCKET is set")
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("NXT_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
