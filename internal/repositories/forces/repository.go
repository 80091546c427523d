// Package forces provides read access to forces owned by the force builder.
// Save exists so fixtures and the CLI can seed the store.
package forces

//go:generate mockgen -destination=mock/mock_repository.go -package=forcemock github.com/KirkDiggler/mech-api/internal/repositories/forces Repository

import (
	"context"

	"github.com/KirkDiggler/mech-api/internal/entities"
)

// Repository defines the storage interface for forces
type Repository interface {
	// Get retrieves a force by ID
	// Returns errors.NotFound if the force doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save creates or replaces a force
	// Returns errors.InvalidArgument for nil forces or empty IDs
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// List returns every force ordered by ID
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// GetInput defines the request for retrieving a force
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving a force
type GetOutput struct {
	Force *entities.Force
}

// SaveInput defines the request for saving a force
type SaveInput struct {
	Force *entities.Force
}

// SaveOutput defines the response for saving a force
type SaveOutput struct {
	Force *entities.Force
}

// ListInput defines the request for listing forces
type ListInput struct{}

// ListOutput defines the response for listing forces
type ListOutput struct {
	Forces []*entities.Force
}
