package encounters

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/pkg/clock"
	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/mech-api/internal/redis"
)

const (
	// KeyPrefix is the prefix of encounter documents
	KeyPrefix         = "encounter:"
	allIndexKey       = "encounters:all"
	statusIndexPrefix = "encounters:status:"

	maxTxRetries = 5
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
}

// RedisConfig contains configuration for the Redis encounter repository.
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

// NewRedis creates a new Redis-backed encounter repository
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
		gen = idgen.NewPrefixed("encounter")
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

func encounterKey(id string) string {
	return KeyPrefix + id
}

func statusKey(status entities.EncounterStatus) string {
	return statusIndexPrefix + string(status)
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateEncounter(input.Encounter); err != nil {
		return nil, err
	}

	encounter := input.Encounter.Clone()
	encounter.ID = r.idGen.Generate()
	encounter.CreatedAt = r.now()
	encounter.UpdatedAt = encounter.CreatedAt

	key := encounterKey(encounter.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("encounter with ID %s already exists", encounter.ID)
	}

	data, err := json.Marshal(encounter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal encounter")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, allIndexKey, encounter.ID)
	pipe.SAdd(ctx, statusKey(encounter.Status), encounter.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create encounter")
	}

	slog.DebugContext(ctx, "encounter created",
		"encounter_id", encounter.ID,
		"status", encounter.Status)

	return &CreateOutput{Encounter: encounter}, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *redisRepository) load(ctx context.Context, g getter, id string) (*entities.Encounter, error) {
	result, err := g.Get(ctx, encounterKey(id)).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, notFound(id)
		}
		return nil, errors.Wrapf(err, "failed to get encounter")
	}

	var encounter entities.Encounter
	if err := json.Unmarshal([]byte(result), &encounter); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal encounter data")
	}
	return &encounter, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	encounter, err := r.load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Encounter: encounter}, nil
}

// Update replaces the document under WATCH so the status index follows
// the stored status even with concurrent writers.
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateEncounter(input.Encounter); err != nil {
		return nil, err
	}
	id := input.Encounter.ID
	if id == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	key := encounterKey(id)
	var result *entities.Encounter

	txf := func(tx *redisclient.Tx) error {
		current, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := checkTransition(current, input.Encounter); err != nil {
			return err
		}

		encounter := input.Encounter.Clone()
		encounter.CreatedAt = current.CreatedAt
		encounter.UpdatedAt = r.now()

		data, err := json.Marshal(encounter)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal encounter")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if current.Status != encounter.Status {
				pipe.SRem(ctx, statusKey(current.Status), id)
				pipe.SAdd(ctx, statusKey(encounter.Status), id)
			}
			return nil
		})
		if err != nil {
			return err
		}

		result = encounter
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &UpdateOutput{Encounter: result}, nil
		}
		if redisclient.IsTxConflict(err) {
			slog.WarnContext(ctx, "encounter write conflict, retrying",
				"encounter_id", id,
				"attempt", attempt+1)
			continue
		}
		var coded *errors.Error
		if errors.As(err, &coded) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to update encounter %s", id)
	}

	return nil, errors.Internalf("encounter %s: too many concurrent updates", id)
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, encounterKey(input.ID))
	pipe.SRem(ctx, allIndexKey, input.ID)
	pipe.SRem(ctx, statusKey(getOutput.Encounter.Status), input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete encounter")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	encounters, err := r.listByIndex(ctx, allIndexKey)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Encounters: encounters}, nil
}

func (r *redisRepository) ListByStatus(ctx context.Context, input ListByStatusInput) (*ListByStatusOutput, error) {
	if input.Status == "" {
		return nil, errors.InvalidArgument(errStatusEmpty)
	}

	encounters, err := r.listByIndex(ctx, statusKey(input.Status))
	if err != nil {
		return nil, err
	}
	return &ListByStatusOutput{Encounters: encounters}, nil
}

func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*entities.Encounter, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get encounters from index %s", indexKey)
	}

	encounters := make([]*entities.Encounter, 0, len(ids))
	for _, id := range ids {
		encounter, err := r.load(ctx, r.client, id)
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "encounter not found, cleaning up index",
					"encounter_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get encounter %s", id)
		}
		encounters = append(encounters, encounter)
	}

	sortEncounters(encounters)
	return encounters, nil
}

func (r *redisRepository) Exists(ctx context.Context, input ExistsInput) (*ExistsOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	n, err := r.client.Exists(ctx, encounterKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	return &ExistsOutput{Exists: n > 0}, nil
}
