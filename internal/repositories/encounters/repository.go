// Package encounters provides the interface for encounter persistence
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=encountermock github.com/KirkDiggler/mech-api/internal/repositories/encounters Repository

import (
	"context"

	"github.com/KirkDiggler/mech-api/internal/entities"
)

// Repository defines the storage interface for encounters
type Repository interface {
	// Create stores a new encounter. The store assigns the ID and timestamps.
	// Returns errors.InvalidArgument for nil encounters
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an encounter by ID
	// Returns errors.NotFound if the encounter doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces a stored encounter and bumps UpdatedAt
	// Returns errors.NotFound if the encounter doesn't exist
	// Returns errors.FailedPrecondition when the stored encounter is launched
	// and the write is not a completion, or when it is already completed
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an encounter
	// Returns errors.NotFound if the encounter doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every encounter ordered by creation time
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// ListByStatus returns the encounters in one status ordered by creation time
	ListByStatus(ctx context.Context, input ListByStatusInput) (*ListByStatusOutput, error)

	// Exists reports whether an encounter is stored
	Exists(ctx context.Context, input ExistsInput) (*ExistsOutput, error)
}

// CreateInput defines the request for creating an encounter
type CreateInput struct {
	Encounter *entities.Encounter
}

// CreateOutput defines the response for creating an encounter
type CreateOutput struct {
	Encounter *entities.Encounter
}

// GetInput defines the request for retrieving an encounter
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving an encounter
type GetOutput struct {
	Encounter *entities.Encounter
}

// UpdateInput defines the request for updating an encounter
type UpdateInput struct {
	Encounter *entities.Encounter
}

// UpdateOutput defines the response for updating an encounter
type UpdateOutput struct {
	Encounter *entities.Encounter
}

// DeleteInput defines the request for deleting an encounter
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the response for deleting an encounter
type DeleteOutput struct{}

// ListInput defines the request for listing encounters
type ListInput struct{}

// ListOutput defines the response for listing encounters
type ListOutput struct {
	Encounters []*entities.Encounter
}

// ListByStatusInput defines the request for listing encounters in a status
type ListByStatusInput struct {
	Status entities.EncounterStatus
}

// ListByStatusOutput defines the response for listing encounters in a status
type ListByStatusOutput struct {
	Encounters []*entities.Encounter
}

// ExistsInput defines the request for checking an encounter exists
type ExistsInput struct {
	ID string
}

// ExistsOutput defines the response for checking an encounter exists
type ExistsOutput struct {
	Exists bool
}
