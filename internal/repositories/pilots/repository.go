// Package pilots provides the interface for pilot persistence
package pilots

//go:generate mockgen -destination=mock/mock_repository.go -package=pilotmock github.com/KirkDiggler/mech-api/internal/repositories/pilots Repository

import (
	"context"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/pkg/patch"
)

// Repository defines the interface for pilot persistence
type Repository interface {
	// Create stores a new pilot seeded as active with zero wounds and,
	// for persistent pilots, a zeroed career holding the starting XP
	// Returns errors.InvalidArgument for statblock pilots (they are never stored)
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a pilot by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the pilot doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update applies a partial update
	// Returns errors.NotFound if the pilot doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a pilot with its abilities and history
	// Returns errors.NotFound if the pilot doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every pilot ordered by creation time
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// ListByStatus returns the pilots in one status ordered by creation time
	ListByStatus(ctx context.Context, input ListByStatusInput) (*ListByStatusOutput, error)

	// Exists reports whether a pilot is stored
	Exists(ctx context.Context, input ExistsInput) (*ExistsOutput, error)

	// AddAbility appends an ability
	// Returns errors.AlreadyExists if the pilot already has it
	AddAbility(ctx context.Context, input AddAbilityInput) (*AddAbilityOutput, error)

	// RemoveAbility removes an ability
	// Returns errors.NotFound if the pilot doesn't have it
	RemoveAbility(ctx context.Context, input RemoveAbilityInput) (*RemoveAbilityOutput, error)

	// RecordKill appends a kill record and bumps the kill total
	// Returns errors.FailedPrecondition for pilots without a career
	RecordKill(ctx context.Context, input RecordKillInput) (*RecordKillOutput, error)

	// RecordMission appends mission history, bumps the outcome counter and
	// credits the mission XP to both the balance and the lifetime total
	// Returns errors.FailedPrecondition for pilots without a career
	RecordMission(ctx context.Context, input RecordMissionInput) (*RecordMissionOutput, error)

	// AddXP credits XP to the balance and the lifetime total
	// Returns errors.FailedPrecondition for pilots without a career
	AddXP(ctx context.Context, input AddXPInput) (*AddXPOutput, error)

	// SpendXP debits XP from the balance
	// Returns errors.InsufficientXP if the amount exceeds the balance; nothing changes
	// Returns errors.FailedPrecondition for pilots without a career
	SpendXP(ctx context.Context, input SpendXPInput) (*SpendXPOutput, error)

	// ImproveSkill debits Cost and replaces Expected with Skills in one write
	// Returns errors.FailedPrecondition if the stored skills no longer match Expected
	// Returns errors.InsufficientXP if Cost exceeds the balance; nothing changes
	ImproveSkill(ctx context.Context, input ImproveSkillInput) (*ImproveSkillOutput, error)
}

// CreateInput defines the input for creating a pilot
type CreateInput struct {
	Identity   entities.Identity
	Type       entities.PilotType
	Skills     entities.Skills
	StartingXP int
	Rank       string
}

// CreateOutput defines the output for creating a pilot
type CreateOutput struct {
	Pilot *entities.Pilot
}

// GetInput defines the input for getting a pilot
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a pilot
type GetOutput struct {
	Pilot *entities.Pilot
}

// UpdateInput defines a partial pilot update. Nil pointers and absent
// patch fields leave the stored value unchanged.
type UpdateInput struct {
	ID          string
	Name        *string
	Callsign    patch.Field[string]
	Affiliation patch.Field[string]
	Portrait    patch.Field[string]
	Background  patch.Field[string]
	Skills      *entities.Skills
	Wounds      *int
	Status      *entities.PilotStatus
	Rank        *string
}

// UpdateOutput defines the output for updating a pilot
type UpdateOutput struct {
	Pilot *entities.Pilot
}

// DeleteInput defines the input for deleting a pilot
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a pilot
type DeleteOutput struct{}

// ListInput defines the input for listing pilots
type ListInput struct{}

// ListOutput defines the output for listing pilots
type ListOutput struct {
	Pilots []*entities.Pilot
}

// ListByStatusInput defines the input for listing pilots by status
type ListByStatusInput struct {
	Status entities.PilotStatus
}

// ListByStatusOutput defines the output for listing pilots by status
type ListByStatusOutput struct {
	Pilots []*entities.Pilot
}

// ExistsInput defines the input for checking a pilot exists
type ExistsInput struct {
	ID string
}

// ExistsOutput defines the output for checking a pilot exists
type ExistsOutput struct {
	Exists bool
}

// AddAbilityInput defines the input for granting an ability
type AddAbilityInput struct {
	PilotID   string
	AbilityID string
	GameID    string
}

// AddAbilityOutput defines the output for granting an ability
type AddAbilityOutput struct {
	Pilot *entities.Pilot
}

// RemoveAbilityInput defines the input for revoking an ability
type RemoveAbilityInput struct {
	PilotID   string
	AbilityID string
}

// RemoveAbilityOutput defines the output for revoking an ability
type RemoveAbilityOutput struct {
	Pilot *entities.Pilot
}

// RecordKillInput defines the input for recording a kill
type RecordKillInput struct {
	PilotID string
	Kill    entities.KillRecord
}

// RecordKillOutput defines the output for recording a kill
type RecordKillOutput struct {
	Pilot *entities.Pilot
}

// RecordMissionInput defines the input for recording a mission.
// Mission.XPEarned is credited to the career.
type RecordMissionInput struct {
	PilotID string
	Mission entities.MissionRecord
}

// RecordMissionOutput defines the output for recording a mission
type RecordMissionOutput struct {
	Pilot *entities.Pilot
}

// AddXPInput defines the input for crediting XP
type AddXPInput struct {
	PilotID string
	Amount  int
}

// AddXPOutput defines the output for crediting XP
type AddXPOutput struct {
	Pilot *entities.Pilot
}

// SpendXPInput defines the input for debiting XP
type SpendXPInput struct {
	PilotID string
	Amount  int
}

// SpendXPOutput defines the output for debiting XP
type SpendXPOutput struct {
	Pilot *entities.Pilot
}

// ImproveSkillInput defines the input for buying a skill improvement.
// Expected guards against a concurrent skill change between read and write.
type ImproveSkillInput struct {
	PilotID  string
	Expected entities.Skills
	Skills   entities.Skills
	Cost     int
}

// ImproveSkillOutput defines the output for buying a skill improvement
type ImproveSkillOutput struct {
	Pilot *entities.Pilot
}
