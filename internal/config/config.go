// Package config loads process configuration from the environment
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/mech-api/internal/errors"
)

// Storage backends
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds the settings the CLI needs to wire repositories.
// A non-empty RedisClusterAddrs switches to a cluster client.
type Config struct {
	Storage           string   `env:"CAREER_STORAGE"      envDefault:"redis"`
	RedisAddr         string   `env:"REDIS_ADDR"          envDefault:"localhost:6379"`
	RedisClusterAddrs []string `env:"REDIS_CLUSTER_ADDRS" envSeparator:","`
	SQLitePath        string   `env:"CAREER_SQLITE_PATH"  envDefault:"career.db"`
	LogLevel          string   `env:"LOG_LEVEL"           envDefault:"info"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the Config.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("CAREER_STORAGE", c.Storage, []string{StorageRedis, StorageSQLite}, vb)
	switch c.Storage {
	case StorageRedis:
		if !c.UseRedisCluster() {
			errors.ValidateRequired("REDIS_ADDR", c.RedisAddr, vb)
		}
	case StorageSQLite:
		errors.ValidateRequired("CAREER_SQLITE_PATH", c.SQLitePath, vb)
	}

	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.Fieldf("LOG_LEVEL", "unknown log level %q", c.LogLevel)
	}

	return vb.Build()
}

// UseRedisCluster reports whether cluster endpoints were configured
func (c *Config) UseRedisCluster() bool {
	return len(c.RedisClusterAddrs) > 0
}

// Level returns the slog level for LogLevel, defaulting to info
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
