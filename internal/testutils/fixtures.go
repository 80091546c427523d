package testutils

import (
	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/testutils/builders"
)

// Career stages for testing
const (
	StageRookie   = "rookie"
	StageVeteran  = "veteran"
	StageInjured  = "injured"
	StageKIA      = "kia"
	TestPilotName = "Natasha Kerensky"
)

// CreateTestPilot creates a fresh regular pilot with no XP
func CreateTestPilot(pilotID string) *entities.Pilot {
	return builders.NewPilotBuilder().
		WithID(pilotID).
		WithName(TestPilotName).
		Build()
}

// CreateTestPilotAtStage creates a test pilot at various points of a career
func CreateTestPilotAtStage(pilotID, stage string) *entities.Pilot {
	b := builders.NewPilotBuilder().
		WithID(pilotID).
		WithName(TestPilotName)

	switch stage {
	case StageVeteran:
		b.WithSkills(3, 4).
			WithXP(1200).
			WithAbility("marksman").
			WithKill("unit_1", "Atlas AS7-D")
	case StageInjured:
		b.WithXP(300).WithWounds(entities.InjuredWoundThreshold)
	case StageKIA:
		b.WithXP(300).KIA()
	}

	return b.Build()
}

// CreateTestForce creates a force with the given battle value and unit count
func CreateTestForce(forceID string, totalBV, units int) *entities.Force {
	return &entities.Force{
		ID:   forceID,
		Name: forceID,
		Stats: entities.ForceStats{
			TotalBV:       totalBV,
			AssignedUnits: units,
			TotalTonnage:  units * 55,
		},
	}
}
