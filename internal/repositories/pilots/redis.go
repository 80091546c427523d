package pilots

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/pkg/clock"
	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/mech-api/internal/redis"
)

const (
	// KeyPrefix is the prefix of pilot documents
	KeyPrefix         = "pilot:"
	allIndexKey       = "pilots:all"
	statusIndexPrefix = "pilots:status:"

	// optimistic transactions retry this many times on WATCH conflicts
	maxTxRetries = 5
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
}

// RedisConfig contains configuration for the Redis pilot repository.
type RedisConfig struct {
	Client      redisclient.Client
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed pilot repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewPrefixed("pilot")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
		idGen:  gen,
	}, nil
}

func (r *redisRepository) now() time.Time {
	return r.clock.Now().UTC().Truncate(time.Millisecond)
}

func pilotKey(id string) string {
	return KeyPrefix + id
}

func statusKey(status entities.PilotStatus) string {
	return statusIndexPrefix + string(status)
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	pilot, err := newPilot(r.idGen.Generate(), r.now(), input)
	if err != nil {
		return nil, err
	}

	key := pilotKey(pilot.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("pilot with ID %s already exists", pilot.ID)
	}

	data, err := json.Marshal(pilot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal pilot")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, allIndexKey, pilot.ID)
	pipe.SAdd(ctx, statusKey(pilot.Status), pilot.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create pilot")
	}

	slog.DebugContext(ctx, "pilot created",
		"pilot_id", pilot.ID,
		"rank", pilot.Career.Rank)

	return &CreateOutput{Pilot: pilot}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPilotIDEmpty)
	}

	pilot, err := r.load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Pilot: pilot}, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *redisRepository) load(ctx context.Context, g getter, id string) (*entities.Pilot, error) {
	result, err := g.Get(ctx, pilotKey(id)).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFoundf("pilot with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get pilot")
	}

	var pilot entities.Pilot
	if err := json.Unmarshal([]byte(result), &pilot); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal pilot data")
	}
	return &pilot, nil
}

// mutate runs a read-modify-write under WATCH so concurrent writers cannot
// interleave. fn either changes the pilot or returns an error, in which case
// nothing is written.
func (r *redisRepository) mutate(
	ctx context.Context,
	id string,
	fn func(p *entities.Pilot, now time.Time) error,
) (*entities.Pilot, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errPilotIDEmpty)
	}

	key := pilotKey(id)
	var result *entities.Pilot

	txf := func(tx *redisclient.Tx) error {
		pilot, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		previousStatus := pilot.Status

		if err := fn(pilot, r.now()); err != nil {
			return err
		}

		data, err := json.Marshal(pilot)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal pilot")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if pilot.Status != previousStatus {
				pipe.SRem(ctx, statusKey(previousStatus), id)
				pipe.SAdd(ctx, statusKey(pilot.Status), id)
			}
			return nil
		})
		if err != nil {
			return err
		}

		result = pilot
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if redisclient.IsTxConflict(err) {
			slog.WarnContext(ctx, "pilot write conflict, retrying",
				"pilot_id", id,
				"attempt", attempt+1)
			continue
		}
		var coded *errors.Error
		if errors.As(err, &coded) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to update pilot %s", id)
	}

	return nil, errors.Internalf("pilot %s: too many concurrent updates", id)
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	pilot, err := r.mutate(ctx, input.ID, func(p *entities.Pilot, now time.Time) error {
		return applyUpdate(p, input, now)
	})
	if err != nil {
		return nil, err
	}
	return &UpdateOutput{Pilot: pilot}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, pilotKey(input.ID))
	pipe.SRem(ctx, allIndexKey, input.ID)
	pipe.SRem(ctx, statusKey(getOutput.Pilot.Status), input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete pilot")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	pilots, err := r.listByIndex(ctx, allIndexKey)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Pilots: pilots}, nil
}

func (r *redisRepository) ListByStatus(ctx context.Context, input ListByStatusInput) (*ListByStatusOutput, error) {
	if input.Status == "" {
		return nil, errors.InvalidArgument("status cannot be empty")
	}

	pilots, err := r.listByIndex(ctx, statusKey(input.Status))
	if err != nil {
		return nil, err
	}
	return &ListByStatusOutput{Pilots: pilots}, nil
}

func (r *redisRepository) Exists(ctx context.Context, input ExistsInput) (*ExistsOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPilotIDEmpty)
	}

	n, err := r.client.Exists(ctx, pilotKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	return &ExistsOutput{Exists: n > 0}, nil
}

// listByIndex loads every pilot in an index set, dropping dangling members
func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*entities.Pilot, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get pilots from index %s", indexKey)
	}

	pilots := make([]*entities.Pilot, 0, len(ids))
	for _, id := range ids {
		pilot, err := r.load(ctx, r.client, id)
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "pilot not found, cleaning up index",
					"pilot_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get pilot %s", id)
		}
		pilots = append(pilots, pilot)
	}

	sortPilots(pilots)
	return pilots, nil
}

func sortPilots(pilots []*entities.Pilot) {
	sort.SliceStable(pilots, func(i, j int) bool {
		if !pilots[i].CreatedAt.Equal(pilots[j].CreatedAt) {
			return pilots[i].CreatedAt.Before(pilots[j].CreatedAt)
		}
		return pilots[i].ID < pilots[j].ID
	})
}

func (r *redisRepository) AddAbility(ctx context.Context, input AddAbilityInput) (*AddAbilityOutput, error) {
	pilot, err := r.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return addAbility(p, input, now)
	})
	if err != nil {
		return nil, err
	}
	return &AddAbilityOutput{Pilot: pilot}, nil
}

func (r *redisRepository) RemoveAbility(ctx context.Context, input RemoveAbilityInput) (*RemoveAbilityOutput, error) {
	pilot, err := r.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return removeAbility(p, input.AbilityID, now)
	})
	if err != nil {
		return nil, err
	}
	return &RemoveAbilityOutput{Pilot: pilot}, nil
}

func (r *redisRepository) RecordKill(ctx context.Context, input RecordKillInput) (*RecordKillOutput, error) {
	pilot, err := r.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return recordKill(p, input.Kill, now)
	})
	if err != nil {
		return nil, err
	}
	return &RecordKillOutput{Pilot: pilot}, nil
}

func (r *redisRepository) RecordMission(ctx context.Context, input RecordMissionInput) (*RecordMissionOutput, error) {
	pilot, err := r.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return recordMission(p, input.Mission, now)
	})
	if err != nil {
		return nil, err
	}
	return &RecordMissionOutput{Pilot: pilot}, nil
}

func (r *redisRepository) AddXP(ctx context.Context, input AddXPInput) (*AddXPOutput, error) {
	pilot, err := r.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return addXP(p, input.Amount, now)
	})
	if err != nil {
		return nil, err
	}
	return &AddXPOutput{Pilot: pilot}, nil
}

func (r *redisRepository) SpendXP(ctx context.Context, input SpendXPInput) (*SpendXPOutput, error) {
	pilot, err := r.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return spendXP(p, input.Amount, now)
	})
	if err != nil {
		return nil, err
	}
	return &SpendXPOutput{Pilot: pilot}, nil
}

func (r *redisRepository) ImproveSkill(ctx context.Context, input ImproveSkillInput) (*ImproveSkillOutput, error) {
	pilot, err := r.mutate(ctx, input.PilotID, func(p *entities.Pilot, now time.Time) error {
		return improveSkill(p, input, now)
	})
	if err != nil {
		return nil, err
	}
	return &ImproveSkillOutput{Pilot: pilot}, nil
}
