package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Auth struct {
		Secret   string `yaml:"secret" env:"JWT_SECRET"`
		TokenTTL string `yaml:"token_ttl" env:"JWT_TOKEN_TTL"`
		Issuer   string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"auth"`

	Assignment struct {
		BatchSize int `yaml:"batch_size" env:"ASSIGNMENT_BATCH_SIZE"`
	} `yaml:"assignment"`

	Presence struct {
		MaxMeters float64 `yaml:"max_meters" env:"PRESENCE_MAX_METERS"`
	} `yaml:"presence"`

	Jobs struct {
		BlacklistPurgeInterval string `yaml:"blacklist_purge_interval" env:"JOBS_BLACKLIST_PURGE_INTERVAL"`
	} `yaml:"jobs"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Sentry struct {
		DSN         string `yaml:"dsn" env:"SENTRY_DSN"`
		Environment string `yaml:"environment" env:"SENTRY_ENVIRONMENT"`
		Release     string `yaml:"release" env:"SENTRY_RELEASE"`
	} `yaml:"sentry"`

	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICS_ENABLED"`
	} `yaml:"metrics"`

	Seed SeedConfig `yaml:"seed"`

	// envApplied lists the variables that overrode file values
	envApplied []string
}

// SeedConfig describes the bootstrap data created on startup
type SeedConfig struct {
	Enabled        bool   `yaml:"enabled" env:"SEED_ENABLED"`
	AppID          string `yaml:"app_id" env:"SEED_APP_ID"`
	AppKey         string `yaml:"app_key" env:"SEED_APP_KEY"`
	LeaderEmail    string `yaml:"leader_email" env:"SEED_LEADER_EMAIL"`
	LeaderPassword string `yaml:"leader_password" env:"SEED_LEADER_PASSWORD"`
	ZoneName       string `yaml:"zone_name" env:"SEED_ZONE_NAME"`
}

// LoadConfig loads configuration from .env, a YAML file and environment variables,
// in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	// .env only fills variables that are not already set in the process environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applied, err := applyEnv(config, prefixedEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	config.envApplied = applied

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "supervision"
	config.Database.SSLMode = "disable"
	config.Database.MinConns = 2
	config.Database.MaxConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Auth.TokenTTL = "720h"
	config.Auth.Issuer = "supervision.app"

	config.Assignment.BatchSize = 10
	config.Presence.MaxMeters = 200
	config.Jobs.BlacklistPurgeInterval = "1h"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Sentry.Environment = "development"
	config.Metrics.Enabled = true

	config.Seed.ZoneName = "Default Zone"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Auth.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.Auth.TokenTTL); err != nil {
		return fmt.Errorf("invalid token ttl format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime: %w", err)
	}

	if d, err := time.ParseDuration(config.Jobs.BlacklistPurgeInterval); err != nil || d <= 0 {
		return fmt.Errorf("invalid blacklist purge interval %q", config.Jobs.BlacklistPurgeInterval)
	}

	if config.Assignment.BatchSize <= 0 {
		return fmt.Errorf("assignment batch size must be positive")
	}

	if config.Presence.MaxMeters < 0 {
		return fmt.Errorf("presence max meters cannot be negative")
	}

	if config.Seed.Enabled && (config.Seed.AppID == "" || config.Seed.AppKey == "") {
		return fmt.Errorf("seed app id and key are required when seeding is enabled")
	}

	return nil
}

// EnvOverrides names the environment variables that were applied, without values
func (c *Config) EnvOverrides() []string {
	return c.envApplied
}

// TokenTTL returns the parsed session token lifetime
func (c *Config) TokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.Auth.TokenTTL)
	return d
}

// BlacklistPurgeInterval returns the parsed retention job interval
func (c *Config) BlacklistPurgeInterval() time.Duration {
	d, _ := time.ParseDuration(c.Jobs.BlacklistPurgeInterval)
	return d
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
