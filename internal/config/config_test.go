package config_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/config"
	"github.com/KirkDiggler/mech-api/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	for _, key := range []string{"CAREER_STORAGE", "REDIS_ADDR", "REDIS_CLUSTER_ADDRS", "CAREER_SQLITE_PATH", "LOG_LEVEL"} {
		// Setenv registers the restore, Unsetenv makes the variable absent
		s.T().Setenv(key, "")
		s.Require().NoError(os.Unsetenv(key))
	}

	cfg, err := config.Load()
	s.Require().NoError(err)
	s.Equal(config.StorageRedis, cfg.Storage)
	s.Equal("localhost:6379", cfg.RedisAddr)
	s.Equal("career.db", cfg.SQLitePath)
	s.Equal(slog.LevelInfo, cfg.Level())
	s.False(cfg.UseRedisCluster())
}

func (s *ConfigTestSuite) TestRedisCluster() {
	s.T().Setenv("CAREER_STORAGE", "redis")
	s.T().Setenv("REDIS_ADDR", "")
	s.T().Setenv("REDIS_CLUSTER_ADDRS", "redis-0:6379,redis-1:6379,redis-2:6379")

	cfg, err := config.Load()
	s.Require().NoError(err)
	s.True(cfg.UseRedisCluster())
	s.Equal([]string{"redis-0:6379", "redis-1:6379", "redis-2:6379"}, cfg.RedisClusterAddrs)
}

func (s *ConfigTestSuite) TestFromEnvironment() {
	s.T().Setenv("CAREER_STORAGE", "sqlite")
	s.T().Setenv("CAREER_SQLITE_PATH", "/var/lib/career/pilots.db")
	s.T().Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	s.Require().NoError(err)
	s.Equal(config.StorageSQLite, cfg.Storage)
	s.Equal("/var/lib/career/pilots.db", cfg.SQLitePath)
	s.Equal(slog.LevelDebug, cfg.Level())
}

func (s *ConfigTestSuite) TestValidate() {
	testCases := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "redis",
			cfg:  config.Config{Storage: config.StorageRedis, RedisAddr: "redis:6379", LogLevel: "warn"},
		},
		{
			name: "sqlite",
			cfg:  config.Config{Storage: config.StorageSQLite, SQLitePath: "career.db"},
		},
		{
			name:    "unknown backend",
			cfg:     config.Config{Storage: "postgres", LogLevel: "info"},
			wantErr: true,
		},
		{
			name:    "redis without address",
			cfg:     config.Config{Storage: config.StorageRedis, LogLevel: "info"},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			cfg:     config.Config{Storage: config.StorageSQLite, SQLitePath: "career.db", LogLevel: "loud"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.cfg.Validate()
			if tc.wantErr {
				s.Require().Error(err)
				s.True(errors.IsInvalidArgument(err))
				return
			}
			s.NoError(err)
		})
	}
}

func (s *ConfigTestSuite) TestLoadRejectsUnknownBackend() {
	s.T().Setenv("CAREER_STORAGE", "etcd")

	cfg, err := config.Load()
	s.Error(err)
	s.Nil(cfg)
}
