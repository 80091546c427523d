package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/mech-api/internal/config"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/orchestrators/encounter"
	"github.com/KirkDiggler/mech-api/internal/orchestrators/pilot"
	redisclient "github.com/KirkDiggler/mech-api/internal/redis"
	"github.com/KirkDiggler/mech-api/internal/repositories/encounters"
	"github.com/KirkDiggler/mech-api/internal/repositories/forces"
	"github.com/KirkDiggler/mech-api/internal/repositories/pilots"
)

// app wires repositories and orchestrators on first use, so a sqlite-only
// pilot command never dials redis.
// Encounters and forces always live in redis; CAREER_STORAGE picks the pilot store.
type app struct {
	cfg    *config.Config
	redis  redisclient.Client
	sqlite *pilots.SQLiteRepository
}

func newApp(cfg *config.Config) *app {
	return &app{cfg: cfg}
}

func (a *app) redisClient(ctx context.Context) (redisclient.Client, error) {
	if a.redis != nil {
		return a.redis, nil
	}

	var (
		client redisclient.Client
		err    error
		addr   = a.cfg.RedisAddr
	)
	if a.cfg.UseRedisCluster() {
		addr = strings.Join(a.cfg.RedisClusterAddrs, ",")
		client, err = redisclient.NewClusterClient(a.cfg.RedisClusterAddrs, nil)
	} else {
		client, err = redisclient.NewClient(a.cfg.RedisAddr, nil)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}
	if err := redisclient.Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "failed to reach redis at %s", addr)
	}

	slog.DebugContext(ctx, "connected to redis",
		"addr", addr,
		"cluster", a.cfg.UseRedisCluster())
	a.redis = client
	return client, nil
}

func (a *app) pilotRepo(ctx context.Context) (pilots.Repository, error) {
	switch a.cfg.Storage {
	case config.StorageSQLite:
		if a.sqlite == nil {
			repo, err := pilots.OpenSQLite(&pilots.SQLiteConfig{Path: a.cfg.SQLitePath})
			if err != nil {
				return nil, err
			}
			slog.DebugContext(ctx, "opened sqlite pilot store", "path", a.cfg.SQLitePath)
			a.sqlite = repo
		}
		return a.sqlite, nil
	default:
		client, err := a.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		return pilots.NewRedis(&pilots.RedisConfig{Client: client})
	}
}

func (a *app) pilotService(ctx context.Context) (pilot.Service, error) {
	repo, err := a.pilotRepo(ctx)
	if err != nil {
		return nil, err
	}
	return pilot.NewOrchestrator(&pilot.Config{PilotRepo: repo})
}

func (a *app) forceRepo(ctx context.Context) (forces.Repository, error) {
	client, err := a.redisClient(ctx)
	if err != nil {
		return nil, err
	}
	return forces.NewRedis(&forces.RedisConfig{Client: client})
}

func (a *app) encounterService(ctx context.Context) (encounter.Service, error) {
	client, err := a.redisClient(ctx)
	if err != nil {
		return nil, err
	}

	encounterRepo, err := encounters.NewRedis(&encounters.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	forceRepo, err := a.forceRepo(ctx)
	if err != nil {
		return nil, err
	}

	return encounter.NewOrchestrator(&encounter.Config{
		EncounterRepo: encounterRepo,
		ForceRepo:     forceRepo,
	})
}

// Close releases whatever connections were opened
func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			slog.Warn("failed to close sqlite store", "error", err)
		}
	}
}
