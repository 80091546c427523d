// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/mech-api/internal/entities"
)

// PilotBuilder provides a fluent interface for building test Pilot instances
type PilotBuilder struct {
	pilot *entities.Pilot
}

// NewPilotBuilder creates a builder for an active, unwounded career pilot
// with regular skills and an empty record
func NewPilotBuilder() *PilotBuilder {
	now := time.Date(3025, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &PilotBuilder{
		pilot: &entities.Pilot{
			ID:        "pilot_1",
			Identity:  entities.Identity{Name: "Grayson Carlyle"},
			Type:      entities.PilotTypePersistent,
			Status:    entities.PilotStatusActive,
			Skills:    entities.Skills{Gunnery: 4, Piloting: 5},
			Abilities: []entities.PilotAbility{},
			Career: &entities.Career{
				KillRecords:    []entities.KillRecord{},
				MissionHistory: []entities.MissionRecord{},
				Rank:           "MechWarrior",
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the pilot ID
func (b *PilotBuilder) WithID(id string) *PilotBuilder {
	b.pilot.ID = id
	return b
}

// WithName sets the pilot name
func (b *PilotBuilder) WithName(name string) *PilotBuilder {
	b.pilot.Name = name
	return b
}

// WithCallsign sets the callsign
func (b *PilotBuilder) WithCallsign(callsign string) *PilotBuilder {
	b.pilot.Callsign = callsign
	return b
}

// WithSkills sets gunnery and piloting
func (b *PilotBuilder) WithSkills(gunnery, piloting int) *PilotBuilder {
	b.pilot.Skills = entities.Skills{Gunnery: gunnery, Piloting: piloting}
	return b
}

// WithXP sets the spendable balance and treats it as everything earned so far
func (b *PilotBuilder) WithXP(xp int) *PilotBuilder {
	b.pilot.Career.XP = xp
	b.pilot.Career.TotalXPEarned = xp
	return b
}

// WithWounds sets the wound count and the status it implies
func (b *PilotBuilder) WithWounds(wounds int) *PilotBuilder {
	b.pilot.Wounds = wounds
	b.pilot.Status = entities.StatusForWounds(wounds, b.pilot.Status)
	return b
}

// WithStatus overrides the status
func (b *PilotBuilder) WithStatus(status entities.PilotStatus) *PilotBuilder {
	b.pilot.Status = status
	return b
}

// KIA marks the pilot dead with maximum wounds
func (b *PilotBuilder) KIA() *PilotBuilder {
	return b.WithWounds(entities.MaxWounds)
}

// WithAbility adds a special pilot ability
func (b *PilotBuilder) WithAbility(abilityID string) *PilotBuilder {
	b.pilot.Abilities = append(b.pilot.Abilities, entities.PilotAbility{
		AbilityID:    abilityID,
		AcquiredDate: b.pilot.CreatedAt,
	})
	return b
}

// WithKill appends a kill record
func (b *PilotBuilder) WithKill(targetID, targetName string) *PilotBuilder {
	b.pilot.Career.KillRecords = append(b.pilot.Career.KillRecords, entities.KillRecord{
		TargetID:   targetID,
		TargetName: targetName,
		Date:       b.pilot.CreatedAt,
	})
	b.pilot.Career.TotalKills++
	return b
}

// AsStatblock turns the pilot into an ephemeral NPC with no career
func (b *PilotBuilder) AsStatblock() *PilotBuilder {
	b.pilot.Type = entities.PilotTypeStatblock
	b.pilot.Career = nil
	return b
}

// Build returns a copy, so one builder can seed several tests
func (b *PilotBuilder) Build() *entities.Pilot {
	return b.pilot.Clone()
}
