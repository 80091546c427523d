package forces

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	redisclient "github.com/KirkDiggler/mech-api/internal/redis"
)

const (
	// KeyPrefix is the prefix of force documents
	KeyPrefix   = "force:"
	allIndexKey = "forces:all"

	errForceIDEmpty = "force ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis force repository.
type RedisConfig struct {
	Client redisclient.Client
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

// NewRedis creates a new Redis-backed force repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func forceKey(id string) string {
	return KeyPrefix + id
}

func validateForce(f *entities.Force) error {
	if f == nil {
		return errors.InvalidArgument("force cannot be nil")
	}
	if strings.TrimSpace(f.ID) == "" {
		return errors.InvalidArgument(errForceIDEmpty)
	}
	if f.Stats.TotalBV < 0 || f.Stats.AssignedUnits < 0 {
		return errors.InvalidArgument("force stats cannot be negative")
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errForceIDEmpty)
	}

	result, err := r.client.Get(ctx, forceKey(input.ID)).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFoundf("force with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get force")
	}

	var force entities.Force
	if err := json.Unmarshal([]byte(result), &force); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal force data")
	}
	return &GetOutput{Force: &force}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateForce(input.Force); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Force)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal force")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, forceKey(input.Force.ID), data, 0)
	pipe.SAdd(ctx, allIndexKey, input.Force.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save force")
	}

	slog.DebugContext(ctx, "force saved",
		"force_id", input.Force.ID,
		"total_bv", input.Force.Stats.TotalBV)

	saved := *input.Force
	return &SaveOutput{Force: &saved}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, allIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list forces")
	}
	sort.Strings(ids)

	forces := make([]*entities.Force, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "force not found, cleaning up index", "force_id", id)
				r.client.SRem(ctx, allIndexKey, id)
				continue
			}
			return nil, err
		}
		forces = append(forces, out.Force)
	}
	return &ListOutput{Forces: forces}, nil
}
