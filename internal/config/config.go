package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Snapshot sources.
const (
	SnapshotSourceNone     = "none"
	SnapshotSourceFile     = "file"
	SnapshotSourceS3       = "s3"
	SnapshotSourceUpstream = "upstream"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Upstream UpstreamConfig
	Snapshot SnapshotConfig
	S3       S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            int    `env:"DB_PORT" envDefault:"5432"`
	User            string `env:"DB_USER" envDefault:"postgres"`
	Password        string `env:"DB_PASSWORD"`
	Database        string `env:"DB_NAME" envDefault:"catalog"`
	SSLMode         string `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME" envDefault:"300"` // seconds

	// Destructive; both off unless asked for.
	ResetOnStart bool `env:"DB_RESET_ON_START" envDefault:"false"`
	SeedOnStart  bool `env:"DB_SEED_ON_START" envDefault:"false"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "console"
}

// AuthConfig holds authentication configuration. An empty key disables auth.
type AuthConfig struct {
	APIKey string `env:"API_KEY"`
}

// UpstreamConfig describes the external product and brand APIs.
type UpstreamConfig struct {
	ElectronicsURL string        `env:"UPSTREAM_ELECTRONICS_URL" envDefault:"http://interview.surya-digital.in/get-electronics"`
	BrandsURL      string        `env:"UPSTREAM_BRANDS_URL" envDefault:"http://interview.surya-digital.in/get-electronics-brands"`
	Timeout        time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	MaxRetries     int           `env:"UPSTREAM_MAX_RETRIES" envDefault:"0"`

	BreakerMaxFailures uint32        `env:"UPSTREAM_BREAKER_MAX_FAILURES" envDefault:"5"`
	BreakerOpenTimeout time.Duration `env:"UPSTREAM_BREAKER_OPEN_TIMEOUT" envDefault:"30s"`
}

// SnapshotConfig selects where the in-memory product snapshot is loaded from.
type SnapshotConfig struct {
	Source string `env:"SNAPSHOT_SOURCE" envDefault:"file"`
	Path   string `env:"SNAPSHOT_PATH" envDefault:"data/electronics.json"`
}

// S3Config holds AWS S3 configuration for snapshot files.
type S3Config struct {
	Bucket string `env:"S3_BUCKET"`
	Region string `env:"S3_REGION" envDefault:"us-east-1"`
	Key    string `env:"S3_KEY" envDefault:"snapshots/electronics.json.gz"`
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding values that are already set. Missing files
// are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Upstream.ElectronicsURL == "" {
		return fmt.Errorf("upstream electronics URL is required")
	}

	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}

	if c.Upstream.MaxRetries < 0 {
		return fmt.Errorf("upstream max retries cannot be negative")
	}

	switch c.Snapshot.Source {
	case SnapshotSourceNone, SnapshotSourceUpstream:
	case SnapshotSourceFile:
		if c.Snapshot.Path == "" {
			return fmt.Errorf("snapshot path is required when snapshot source is file")
		}
	case SnapshotSourceS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when snapshot source is s3")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when snapshot source is s3")
		}
	default:
		return fmt.Errorf("invalid snapshot source: %s (must be none, file, s3, or upstream)", c.Snapshot.Source)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
