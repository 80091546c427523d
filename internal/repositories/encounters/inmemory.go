package encounters

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/pkg/clock"
	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
)

var _ Repository = (*InMemoryRepository)(nil)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.Encounter
	clock clock.Clock
	idGen idgen.Generator
}

// InMemoryConfig contains the optional collaborators of the in-memory repository
type InMemoryConfig struct {
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// NewInMemory creates a new in-memory repository
func NewInMemory(cfg *InMemoryConfig) *InMemoryRepository {
	if cfg == nil {
		cfg = &InMemoryConfig{}
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewPrefixed("encounter")
	}
	return &InMemoryRepository{
		store: make(map[string]*entities.Encounter),
		clock: c,
		idGen: gen,
	}
}

func (r *InMemoryRepository) now() time.Time {
	return r.clock.Now().UTC().Truncate(time.Millisecond)
}

// Create stores an encounter under a fresh ID
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateEncounter(input.Encounter); err != nil {
		return nil, err
	}

	encounter := input.Encounter.Clone()
	encounter.ID = r.idGen.Generate()
	encounter.CreatedAt = r.now()
	encounter.UpdatedAt = encounter.CreatedAt

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[encounter.ID]; exists {
		return nil, errors.AlreadyExistsf("encounter with ID %s already exists", encounter.ID)
	}
	r.store[encounter.ID] = encounter

	return &CreateOutput{Encounter: encounter.Clone()}, nil
}

// Get retrieves an encounter by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	encounter, exists := r.store[input.ID]
	if !exists {
		return nil, notFound(input.ID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Encounter: encounter.Clone()}, nil
}

// Update replaces an existing encounter
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateEncounter(input.Encounter); err != nil {
		return nil, err
	}
	if input.Encounter.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.store[input.Encounter.ID]
	if !exists {
		return nil, notFound(input.Encounter.ID)
	}
	if err := checkTransition(current, input.Encounter); err != nil {
		return nil, err
	}

	encounter := input.Encounter.Clone()
	encounter.CreatedAt = current.CreatedAt
	encounter.UpdatedAt = r.now()
	r.store[encounter.ID] = encounter

	return &UpdateOutput{Encounter: encounter.Clone()}, nil
}

// Delete removes an encounter
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, notFound(input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

// List returns every encounter
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	return &ListOutput{Encounters: r.filter("")}, nil
}

// ListByStatus returns the encounters in one status
func (r *InMemoryRepository) ListByStatus(_ context.Context, input ListByStatusInput) (*ListByStatusOutput, error) {
	if input.Status == "" {
		return nil, errors.InvalidArgument(errStatusEmpty)
	}
	return &ListByStatusOutput{Encounters: r.filter(input.Status)}, nil
}

func (r *InMemoryRepository) filter(status entities.EncounterStatus) []*entities.Encounter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Encounter, 0, len(r.store))
	for _, e := range r.store {
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e.Clone())
	}
	sortEncounters(out)
	return out
}

// Exists reports whether an encounter is stored
func (r *InMemoryRepository) Exists(_ context.Context, input ExistsInput) (*ExistsOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errEncounterIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.store[input.ID]
	return &ExistsOutput{Exists: exists}, nil
}
