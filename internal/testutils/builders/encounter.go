package builders

import (
	"time"

	"github.com/KirkDiggler/mech-api/internal/entities"
)

// EncounterBuilder provides a fluent interface for building test Encounter instances
type EncounterBuilder struct {
	encounter *entities.Encounter
}

// NewEncounterBuilder creates a draft encounter on the default map with no
// forces and no victory conditions
func NewEncounterBuilder() *EncounterBuilder {
	now := time.Date(3025, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &EncounterBuilder{
		encounter: &entities.Encounter{
			ID:     "encounter_1",
			Name:   "Operation Bulldog",
			Status: entities.EncounterStatusDraft,
			MapConfig: entities.MapConfig{
				Radius:                 6,
				Terrain:                entities.TerrainClear,
				PlayerDeploymentZone:   entities.DeploymentZoneSouth,
				OpponentDeploymentZone: entities.DeploymentZoneNorth,
			},
			VictoryConditions: []entities.VictoryCondition{},
			OptionalRules:     []string{},
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
}

// WithID sets the encounter ID
func (b *EncounterBuilder) WithID(id string) *EncounterBuilder {
	b.encounter.ID = id
	return b
}

// WithName sets the encounter name
func (b *EncounterBuilder) WithName(name string) *EncounterBuilder {
	b.encounter.Name = name
	return b
}

// WithPlayerForce snapshots a player force
func (b *EncounterBuilder) WithPlayerForce(forceID string, totalBV, units int) *EncounterBuilder {
	b.encounter.PlayerForce = &entities.ForceReference{
		ForceID:   forceID,
		ForceName: forceID,
		TotalBV:   totalBV,
		UnitCount: units,
	}
	return b
}

// WithOpponentForce snapshots an explicit opponent force
func (b *EncounterBuilder) WithOpponentForce(forceID string, totalBV, units int) *EncounterBuilder {
	b.encounter.OpponentForce = &entities.ForceReference{
		ForceID:   forceID,
		ForceName: forceID,
		TotalBV:   totalBV,
		UnitCount: units,
	}
	return b
}

// WithOpForConfig sets a generated opponent
func (b *EncounterBuilder) WithOpForConfig(cfg entities.OpForConfig) *EncounterBuilder {
	b.encounter.OpForConfig = &cfg
	return b
}

// WithVictoryCondition appends a victory condition
func (b *EncounterBuilder) WithVictoryCondition(vc entities.VictoryCondition) *EncounterBuilder {
	b.encounter.VictoryConditions = append(b.encounter.VictoryConditions, vc)
	return b
}

// Ready fills in whatever the readiness predicate still needs
func (b *EncounterBuilder) Ready() *EncounterBuilder {
	if b.encounter.PlayerForce == nil {
		b.WithPlayerForce("force_player", 5000, 4)
	}
	if !b.encounter.HasOpponent() {
		b.WithOpponentForce("force_opfor", 5000, 4)
	}
	if len(b.encounter.VictoryConditions) == 0 {
		b.WithVictoryCondition(entities.VictoryCondition{Type: entities.VictoryDestroyAll})
	}
	b.encounter.Status = entities.EncounterStatusReady
	return b
}

// Launched readies the encounter and marks it in play
func (b *EncounterBuilder) Launched(sessionID string) *EncounterBuilder {
	b.Ready()
	b.encounter.Status = entities.EncounterStatusLaunched
	b.encounter.GameSessionID = sessionID
	return b
}

// Build returns a copy of the encounter
func (b *EncounterBuilder) Build() *entities.Encounter {
	return b.encounter.Clone()
}
