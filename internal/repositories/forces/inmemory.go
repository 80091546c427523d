package forces

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
)

var _ Repository = (*InMemoryRepository)(nil)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]entities.Force
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]entities.Force),
	}
}

// Get retrieves a force by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errForceIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	force, ok := r.store[input.ID]
	if !ok {
		return nil, errors.NotFoundf("force with ID %s not found", input.ID)
	}
	return &GetOutput{Force: &force}, nil
}

// Save creates or replaces a force
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateForce(input.Force); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Force.ID] = *input.Force
	saved := *input.Force
	return &SaveOutput{Force: &saved}, nil
}

// List returns every force ordered by ID
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Force, 0, len(r.store))
	for _, f := range r.store {
		force := f
		out = append(out, &force)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return &ListOutput{Forces: out}, nil
}
