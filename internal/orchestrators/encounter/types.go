package encounter

import (
	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/pkg/patch"
)

// CreateEncounterInput defines the request for creating an encounter
type CreateEncounterInput struct {
	Name        string
	Description string
	// Template seeds the map and victory conditions when it names a known scenario
	Template entities.ScenarioTemplateType
}

// CreateEncounterOutput defines the response for creating an encounter
type CreateEncounterOutput struct {
	Encounter *entities.Encounter
}

// GetEncounterInput defines the request for getting an encounter
type GetEncounterInput struct {
	EncounterID string
}

// GetEncounterOutput defines the response for getting an encounter
type GetEncounterOutput struct {
	Encounter *entities.Encounter
}

// ListEncountersInput defines the request for listing encounters
type ListEncountersInput struct {
	// Status filters the list when set
	Status entities.EncounterStatus
}

// ListEncountersOutput defines the response for listing encounters
type ListEncountersOutput struct {
	Encounters []*entities.Encounter
}

// UpdateEncounterInput defines a partial update. Absent patch fields and nil
// pointers leave the stored value unchanged.
type UpdateEncounterInput struct {
	EncounterID       string
	Name              *string
	Description       patch.Field[string]
	MapConfig         *entities.MapConfig
	VictoryConditions patch.Field[[]entities.VictoryCondition]
	OptionalRules     patch.Field[[]string]
	PlayerForceID     patch.Field[string]
	// Setting OpponentForceID without touching OpForConfig clears the config
	OpponentForceID patch.Field[string]
	OpForConfig     patch.Field[entities.OpForConfig]
}

// UpdateEncounterOutput defines the response for updating an encounter
type UpdateEncounterOutput struct {
	Encounter *entities.Encounter
}

// DeleteEncounterInput defines the request for deleting an encounter
type DeleteEncounterInput struct {
	EncounterID string
}

// DeleteEncounterOutput defines the response for deleting an encounter
type DeleteEncounterOutput struct{}

// SetForceInput defines the request for assigning a force to one side
type SetForceInput struct {
	EncounterID string
	ForceID     string
}

// SetForceOutput defines the response for assigning a force
type SetForceOutput struct {
	Encounter *entities.Encounter
}

// ClearOpponentForceInput defines the request for removing the opponent force
type ClearOpponentForceInput struct {
	EncounterID string
}

// ClearOpponentForceOutput defines the response for removing the opponent force
type ClearOpponentForceOutput struct {
	Encounter *entities.Encounter
}

// ApplyTemplateInput defines the request for applying a scenario template
type ApplyTemplateInput struct {
	EncounterID string
	Template    entities.ScenarioTemplateType
}

// ApplyTemplateOutput defines the response for applying a scenario template
type ApplyTemplateOutput struct {
	Encounter *entities.Encounter
}

// ValidateEncounterInput defines the request for validating an encounter
type ValidateEncounterInput struct {
	EncounterID string
}

// ValidateEncounterOutput reports every launch blocker and warning at once
type ValidateEncounterOutput struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// CanLaunchInput defines the request for checking launch readiness
type CanLaunchInput struct {
	EncounterID string
}

// CanLaunchOutput defines the response for checking launch readiness
type CanLaunchOutput struct {
	CanLaunch bool
}

// LaunchEncounterInput defines the request for launching an encounter
type LaunchEncounterInput struct {
	EncounterID string
}

// LaunchEncounterOutput defines the response for launching an encounter
type LaunchEncounterOutput struct {
	Encounter     *entities.Encounter
	GameSessionID string
}

// CompleteEncounterInput defines the request for completing a launched encounter
type CompleteEncounterInput struct {
	EncounterID string
}

// CompleteEncounterOutput defines the response for completing an encounter
type CompleteEncounterOutput struct {
	Encounter *entities.Encounter
}

// CloneEncounterInput defines the request for cloning an encounter
type CloneEncounterInput struct {
	EncounterID string
	NewName     string
}

// CloneEncounterOutput defines the response for cloning an encounter
type CloneEncounterOutput struct {
	Encounter *entities.Encounter
}
