// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration. Values start from
// development defaults, are overlaid by an optional YAML file named in
// CONFIG_FILE, and finally by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ProviderConfig holds per-provider overrides.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Env      string `yaml:"env"` // "development", "production", "testing"
	LogLevel string `yaml:"log_level"`

	// RateLimit is the sustained requests per second allowed per client on
	// the generation and probe endpoints; RateBurst the bucket size.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	// Generation
	Provider        string                    `yaml:"provider"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
	AITimeout       time.Duration             `yaml:"ai_timeout"`
	AIRetryCount    int                       `yaml:"ai_retry_count"`
	AIRetryDelay    time.Duration             `yaml:"ai_retry_delay"`
	DisableFallback bool                      `yaml:"disable_fallback"`

	// Generation cache
	CacheEnabled bool          `yaml:"cache_enabled"`
	CacheBackend string        `yaml:"cache_backend"` // "memory" or "valkey"
	CacheTTL     time.Duration `yaml:"cache_ttl"`

	// Valkey (Redis-compatible cache)
	ValkeyHost     string `yaml:"valkey_host"`
	ValkeyPort     string `yaml:"valkey_port"`
	ValkeyPassword string `yaml:"valkey_password"`
	ValkeyDB       int    `yaml:"valkey_db"`

	// Settings persistence
	SettingsBackend string `yaml:"settings_backend"` // "none", "file" or "postgres"
	SettingsFile    string `yaml:"settings_file"`
	SecretKey       string `yaml:"secret_key"` // 64 hex chars; seals stored credentials

	// PostgreSQL connection
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
}

func defaults() *Config {
	return &Config{
		Host:     "0.0.0.0",
		Port:     "8080",
		Env:      "development",
		LogLevel: "info",

		RateLimit: 2,
		RateBurst: 10,

		Provider:     "deepseek",
		Providers:    map[string]ProviderConfig{},
		AITimeout:    30 * time.Second,
		AIRetryCount: 2,
		AIRetryDelay: 500 * time.Millisecond,

		CacheEnabled: true,
		CacheBackend: "memory",
		CacheTTL:     time.Hour,

		ValkeyHost: "localhost",
		ValkeyPort: "6379",

		SettingsBackend: "file",
		SettingsFile:    "data/settings.json",

		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "weeklyreport",
		DBPassword: "changeme",
		DBName:     "weeklyreport",
	}
}

// Load builds the configuration. providerIDs names the providers whose
// <ID>_API_KEY, <ID>_MODEL and <ID>_BASE_URL variables are read. Returns an
// error for unparsable values or when critical values are missing in
// production mode.
func Load(providerIDs ...string) (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Host = envOrDefault("APP_HOST", cfg.Host)
	cfg.Port = envOrDefault("APP_PORT", cfg.Port)
	cfg.Env = envOrDefault("APP_ENV", cfg.Env)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)

	cfg.Provider = envOrDefault("REPORT_PROVIDER", cfg.Provider)
	for _, id := range providerIDs {
		prefix := strings.ToUpper(id) + "_"
		p := cfg.Providers[id]
		p.APIKey = envOrDefault(prefix+"API_KEY", p.APIKey)
		p.Model = envOrDefault(prefix+"MODEL", p.Model)
		p.BaseURL = envOrDefault(prefix+"BASE_URL", p.BaseURL)
		if p != (ProviderConfig{}) {
			cfg.Providers[id] = p
		}
	}

	cfg.CacheBackend = envOrDefault("CACHE_BACKEND", cfg.CacheBackend)
	cfg.ValkeyHost = envOrDefault("VALKEY_HOST", cfg.ValkeyHost)
	cfg.ValkeyPort = envOrDefault("VALKEY_PORT", cfg.ValkeyPort)
	cfg.ValkeyPassword = envOrDefault("VALKEY_PASSWORD", cfg.ValkeyPassword)

	cfg.SettingsBackend = envOrDefault("SETTINGS_BACKEND", cfg.SettingsBackend)
	cfg.SettingsFile = envOrDefault("SETTINGS_FILE", cfg.SettingsFile)
	cfg.SecretKey = envOrDefault("SECRET_KEY", cfg.SecretKey)

	cfg.DBHost = envOrDefault("POSTGRES_HOST", cfg.DBHost)
	cfg.DBPort = envOrDefault("POSTGRES_PORT", cfg.DBPort)
	cfg.DBUser = envOrDefault("POSTGRES_USER", cfg.DBUser)
	cfg.DBPassword = envOrDefault("POSTGRES_PASSWORD", cfg.DBPassword)
	cfg.DBName = envOrDefault("POSTGRES_DB", cfg.DBName)

	var errs []error
	cfg.AITimeout = envDuration("AI_TIMEOUT", cfg.AITimeout, &errs)
	cfg.AIRetryCount = envInt("AI_RETRY_COUNT", cfg.AIRetryCount, &errs)
	cfg.AIRetryDelay = envDuration("AI_RETRY_DELAY", cfg.AIRetryDelay, &errs)
	cfg.DisableFallback = envBool("AI_DISABLE_FALLBACK", cfg.DisableFallback, &errs)
	cfg.CacheEnabled = envBool("CACHE_ENABLED", cfg.CacheEnabled, &errs)
	cfg.CacheTTL = envDuration("CACHE_TTL", cfg.CacheTTL, &errs)
	cfg.ValkeyDB = envInt("VALKEY_DB", cfg.ValkeyDB, &errs)
	cfg.RateLimit = envFloat("RATE_LIMIT", cfg.RateLimit, &errs)
	cfg.RateBurst = envInt("RATE_BURST", cfg.RateBurst, &errs)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.CacheBackend {
	case "memory", "valkey":
	default:
		return fmt.Errorf("CACHE_BACKEND must be memory or valkey, got %q", c.CacheBackend)
	}
	switch c.SettingsBackend {
	case "none", "file", "postgres":
	default:
		return fmt.Errorf("SETTINGS_BACKEND must be none, file or postgres, got %q", c.SettingsBackend)
	}
	if c.SettingsBackend == "file" && c.SettingsFile == "" {
		return fmt.Errorf("SETTINGS_FILE must be set for the file settings backend")
	}
	if c.AIRetryCount < 1 {
		return fmt.Errorf("AI_RETRY_COUNT must be at least 1, got %d", c.AIRetryCount)
	}

	if c.Env == "production" && c.SettingsBackend == "postgres" {
		if c.DBPassword == "changeme" {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if c.SecretKey == "" {
			return fmt.Errorf("SECRET_KEY must be set in production")
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Credentials returns the API keys configured per provider.
func (c *Config) Credentials() map[string]string {
	out := make(map[string]string, len(c.Providers))
	for id, p := range c.Providers {
		if p.APIKey != "" {
			out[id] = p.APIKey
		}
	}
	return out
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid number %q", key, v))
		return fallback
	}
	return f
}

func envBool(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, v))
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}
