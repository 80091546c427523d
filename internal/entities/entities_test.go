package entities_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
)

type EntitiesTestSuite struct {
	suite.Suite
}

func TestEntitiesSuite(t *testing.T) {
	suite.Run(t, new(EntitiesTestSuite))
}

func (s *EntitiesTestSuite) TestStatusForWounds() {
	testCases := []struct {
		wounds   int
		current  entities.PilotStatus
		expected entities.PilotStatus
	}{
		{1, entities.PilotStatusActive, entities.PilotStatusActive},
		{2, entities.PilotStatusActive, entities.PilotStatusActive},
		{3, entities.PilotStatusActive, entities.PilotStatusInjured},
		{5, entities.PilotStatusInjured, entities.PilotStatusInjured},
		{6, entities.PilotStatusInjured, entities.PilotStatusKIA},
		{7, entities.PilotStatusInjured, entities.PilotStatusKIA},
	}

	for _, tc := range testCases {
		s.Run(fmt.Sprintf("%d wounds", tc.wounds), func() {
			s.Equal(tc.expected, entities.StatusForWounds(tc.wounds, tc.current))
		})
	}
}

func (s *EntitiesTestSuite) TestPilotCloneIsDeep() {
	pilot := &entities.Pilot{
		ID:        "pilot_1",
		Identity:  entities.Identity{Name: "Phelan Kell"},
		Abilities: []entities.PilotAbility{{AbilityID: "sniper"}},
		Career: &entities.Career{
			XP:          100,
			KillRecords: []entities.KillRecord{{TargetID: "unit_1"}},
		},
	}

	clone := pilot.Clone()
	clone.Abilities[0].AbilityID = "jumping_jack"
	clone.Career.XP = 0
	clone.Career.KillRecords[0].TargetID = "unit_2"

	s.Equal("sniper", pilot.Abilities[0].AbilityID)
	s.Equal(100, pilot.Career.XP)
	s.Equal("unit_1", pilot.Career.KillRecords[0].TargetID)
	s.Equal(entities.EntityTypePilot, pilot.GetType())
}

func (s *EntitiesTestSuite) TestEncounterReadiness() {
	enc := &entities.Encounter{Status: entities.EncounterStatusDraft}
	enc.RecomputeStatus()
	s.Equal(entities.EncounterStatusDraft, enc.Status)

	enc.PlayerForce = &entities.ForceReference{ForceID: "force_1", TotalBV: 5000}
	enc.OpForConfig = &entities.OpForConfig{PilotSkillTemplate: entities.SkillTemplateRegular}
	enc.RecomputeStatus()
	s.Equal(entities.EncounterStatusDraft, enc.Status, "no victory conditions yet")

	enc.VictoryConditions = []entities.VictoryCondition{{Type: entities.VictoryDestroyAll}}
	enc.RecomputeStatus()
	s.Equal(entities.EncounterStatusReady, enc.Status)

	enc.OpForConfig = nil
	enc.RecomputeStatus()
	s.Equal(entities.EncounterStatusDraft, enc.Status)
}

func (s *EntitiesTestSuite) TestFrozenEncounterKeepsStatus() {
	for _, status := range []entities.EncounterStatus{
		entities.EncounterStatusLaunched,
		entities.EncounterStatusCompleted,
	} {
		s.Run(string(status), func() {
			enc := &entities.Encounter{Status: status}
			enc.RecomputeStatus()
			s.Equal(status, enc.Status)
			s.True(enc.IsFrozen())
		})
	}
}

func (s *EntitiesTestSuite) TestEncounterCloneIsDeep() {
	limit := 10
	enc := &entities.Encounter{
		ID:                "enc_1",
		VictoryConditions: []entities.VictoryCondition{{Type: entities.VictoryTurnLimit, TurnLimit: &limit}},
		OptionalRules:     []string{"forced_withdrawal"},
		PlayerForce:       &entities.ForceReference{ForceID: "force_1"},
	}

	clone := enc.Clone()
	*clone.VictoryConditions[0].TurnLimit = 20
	clone.OptionalRules[0] = "double_blind"
	clone.PlayerForce.ForceID = "force_2"

	s.Equal(10, *enc.VictoryConditions[0].TurnLimit)
	s.Equal("forced_withdrawal", enc.OptionalRules[0])
	s.Equal("force_1", enc.PlayerForce.ForceID)
}

func (s *EntitiesTestSuite) TestForceSnapshot() {
	force := &entities.Force{
		ID:    "force_1",
		Name:  "Kell Hounds",
		Stats: entities.ForceStats{TotalBV: 12000, AssignedUnits: 4},
	}

	s.Equal(&entities.ForceReference{
		ForceID:   "force_1",
		ForceName: "Kell Hounds",
		TotalBV:   12000,
		UnitCount: 4,
	}, force.Snapshot())
}

func (s *EntitiesTestSuite) TestOperationResult() {
	ok := entities.NewOperationResult("pilot_1", nil)
	s.Equal(entities.OperationResult{Success: true, ID: "pilot_1"}, ok)

	failed := entities.NewOperationResult("pilot_1", errors.InsufficientXP("need 200 XP, have 100"))
	s.False(failed.Success)
	s.Equal(errors.KindInsufficientXP, failed.ErrorCode)
	s.Equal("need 200 XP, have 100", failed.Error)

	storage := entities.NewOperationResult("", errors.Wrap(fmt.Errorf("connection reset"), "failed to save pilot"))
	s.Equal(errors.KindDatabaseError, storage.ErrorCode)
	s.Contains(storage.Error, "connection reset")
}
