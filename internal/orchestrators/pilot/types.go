package pilot

import (
	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/pkg/patch"
)

// CreatePilotInput defines the request for creating a career pilot
type CreatePilotInput struct {
	Identity entities.Identity
	// Skills defaults to the regular template when nil
	Skills     *entities.Skills
	StartingXP int
	Rank       string
}

// CreatePilotOutput defines the response for creating a pilot
type CreatePilotOutput struct {
	Pilot *entities.Pilot
}

// CreateFromTemplateInput defines the request for creating a pilot from a preset
type CreateFromTemplateInput struct {
	Level    entities.SkillTemplate
	Identity entities.Identity
}

// CreateFromTemplateOutput defines the response for creating a pilot from a preset
type CreateFromTemplateOutput struct {
	Pilot *entities.Pilot
}

// CreateRandomInput defines the request for creating a pilot with rolled skills
type CreateRandomInput struct {
	Identity entities.Identity
}

// CreateRandomOutput defines the response for creating a pilot with rolled skills
type CreateRandomOutput struct {
	Pilot *entities.Pilot
}

// Statblock describes a throwaway NPC pilot
type Statblock struct {
	Name   string
	Skills entities.Skills
}

// CreateStatblockInput defines the request for building a statblock pilot
type CreateStatblockInput struct {
	Statblock Statblock
}

// CreateStatblockOutput defines the response for building a statblock pilot
type CreateStatblockOutput struct {
	Pilot *entities.Pilot
}

// GetPilotInput defines the request for getting a pilot
type GetPilotInput struct {
	PilotID string
}

// GetPilotOutput defines the response for getting a pilot
type GetPilotOutput struct {
	Pilot *entities.Pilot
}

// ListPilotsInput defines the request for listing pilots
type ListPilotsInput struct {
	// Status filters the list when set
	Status entities.PilotStatus
}

// ListPilotsOutput defines the response for listing pilots
type ListPilotsOutput struct {
	Pilots []*entities.Pilot
}

// UpdatePilotInput defines a partial identity/skill update
type UpdatePilotInput struct {
	PilotID     string
	Name        *string
	Callsign    patch.Field[string]
	Affiliation patch.Field[string]
	Portrait    patch.Field[string]
	Background  patch.Field[string]
	Skills      *entities.Skills
}

// UpdatePilotOutput defines the response for updating a pilot
type UpdatePilotOutput struct {
	Pilot *entities.Pilot
}

// DeletePilotInput defines the request for deleting a pilot
type DeletePilotInput struct {
	PilotID string
}

// DeletePilotOutput defines the response for deleting a pilot
type DeletePilotOutput struct{}

// ImprovementCheck reports whether a skill can be lowered by one
type ImprovementCheck struct {
	CanImprove bool
	// Cost is nil when the skill is already at the minimum
	Cost *int
}

// ImproveSkillInput defines the request for improving gunnery or piloting
type ImproveSkillInput struct {
	PilotID string
}

// ImproveSkillOutput defines the response for improving a skill
type ImproveSkillOutput struct {
	Pilot *entities.Pilot
	Cost  int
}

// MissionBonuses are the optional XP bonuses of a mission
type MissionBonuses struct {
	FirstBlood       bool
	HigherBVOpponent bool
}

// AwardMissionXPInput defines the request for recording a completed mission
type AwardMissionXPInput struct {
	PilotID     string
	GameID      string
	MissionName string
	Outcome     entities.MissionOutcome
	Kills       int
	Bonuses     MissionBonuses
}

// AwardMissionXPOutput defines the response for recording a completed mission
type AwardMissionXPOutput struct {
	Pilot     *entities.Pilot
	XPAwarded int
}

// RecordKillInput defines the request for recording a kill
type RecordKillInput struct {
	PilotID    string
	TargetID   string
	TargetName string
	WeaponUsed string
	GameID     string
}

// RecordKillOutput defines the response for recording a kill
type RecordKillOutput struct {
	Pilot *entities.Pilot
}

// AbilityInput defines the request for granting or revoking an ability
type AbilityInput struct {
	PilotID   string
	AbilityID string
	GameID    string
}

// AbilityOutput defines the response for granting or revoking an ability
type AbilityOutput struct {
	Pilot *entities.Pilot
}

// WoundInput defines the request for wounding or healing a pilot
type WoundInput struct {
	PilotID string
}

// WoundOutput defines the response for wounding or healing a pilot
type WoundOutput struct {
	Pilot *entities.Pilot
}

// PilotFields is a partial pilot for validation. Nil fields are skipped.
type PilotFields struct {
	Name     *string
	Gunnery  *int
	Piloting *int
	Wounds   *int
}
