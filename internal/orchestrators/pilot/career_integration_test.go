package pilot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/orchestrators/pilot"
	"github.com/KirkDiggler/mech-api/internal/repositories/pilots"
	"github.com/KirkDiggler/mech-api/internal/testutils"
)

// CareerIntegrationTestSuite drives the orchestrator against a real store
type CareerIntegrationTestSuite struct {
	suite.Suite
	cleanup func()
	repo    pilots.Repository
	svc     pilot.Service
	ctx     context.Context
}

func TestCareerIntegrationSuite(t *testing.T) {
	suite.Run(t, new(CareerIntegrationTestSuite))
}

func (s *CareerIntegrationTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := pilots.NewRedis(&pilots.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	svc, err := pilot.NewOrchestrator(&pilot.Config{PilotRepo: repo})
	s.Require().NoError(err)
	s.svc = svc
	s.ctx = context.Background()
}

func (s *CareerIntegrationTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *CareerIntegrationTestSuite) TestImproveGunnerySpendsXP() {
	created, err := s.svc.CreatePilot(s.ctx, &pilot.CreatePilotInput{
		Identity:   entities.Identity{Name: "Hanse Davion"},
		Skills:     &entities.Skills{Gunnery: 4, Piloting: 5},
		StartingXP: 500,
	})
	s.Require().NoError(err)

	check := s.svc.CanImproveGunnery(created.Pilot)
	s.Require().NotNil(check.Cost)
	s.Equal(200, *check.Cost)
	s.True(check.CanImprove)

	out, err := s.svc.ImproveGunnery(s.ctx, &pilot.ImproveSkillInput{PilotID: created.Pilot.ID})
	s.Require().NoError(err)
	s.Equal(3, out.Pilot.Skills.Gunnery)
	s.Equal(5, out.Pilot.Skills.Piloting)
	s.Equal(300, out.Pilot.Career.XP)
	s.Equal(500, out.Pilot.Career.TotalXPEarned)
}

// skillWriteFailingRepo fails every partial update that touches skills
type skillWriteFailingRepo struct {
	pilots.Repository
}

func (r skillWriteFailingRepo) Update(ctx context.Context, input pilots.UpdateInput) (*pilots.UpdateOutput, error) {
	if input.Skills != nil {
		return nil, errors.Internal("disk full")
	}
	return r.Repository.Update(ctx, input)
}

func (s *CareerIntegrationTestSuite) TestImproveDoesNotDependOnSeparateSkillWrite() {
	svc, err := pilot.NewOrchestrator(&pilot.Config{PilotRepo: skillWriteFailingRepo{Repository: s.repo}})
	s.Require().NoError(err)

	created, err := svc.CreatePilot(s.ctx, &pilot.CreatePilotInput{
		Identity:   entities.Identity{Name: "Victor Steiner-Davion"},
		Skills:     &entities.Skills{Gunnery: 4, Piloting: 5},
		StartingXP: 500,
	})
	s.Require().NoError(err)

	out, err := svc.ImproveGunnery(s.ctx, &pilot.ImproveSkillInput{PilotID: created.Pilot.ID})
	s.Require().NoError(err)
	s.Equal(3, out.Pilot.Skills.Gunnery)

	got, err := s.repo.Get(s.ctx, pilots.GetInput{ID: created.Pilot.ID})
	s.Require().NoError(err)
	s.Equal(3, got.Pilot.Skills.Gunnery)
	s.Equal(300, got.Pilot.Career.XP)
}

func (s *CareerIntegrationTestSuite) TestImproveRejectedLeavesPilotUntouched() {
	created, err := s.svc.CreatePilot(s.ctx, &pilot.CreatePilotInput{
		Identity:   entities.Identity{Name: "Yorinaga Kurita"},
		Skills:     &entities.Skills{Gunnery: 4, Piloting: 5},
		StartingXP: 500,
	})
	s.Require().NoError(err)

	// a concurrent writer lowers gunnery between the orchestrator read and the purchase
	lowered := entities.Skills{Gunnery: 3, Piloting: 5}
	_, err = s.repo.Update(s.ctx, pilots.UpdateInput{ID: created.Pilot.ID, Skills: &lowered})
	s.Require().NoError(err)

	_, err = s.repo.ImproveSkill(s.ctx, pilots.ImproveSkillInput{
		PilotID:  created.Pilot.ID,
		Expected: entities.Skills{Gunnery: 4, Piloting: 5},
		Skills:   entities.Skills{Gunnery: 3, Piloting: 5},
		Cost:     200,
	})
	s.True(errors.IsFailedPrecondition(err))

	got, err := s.repo.Get(s.ctx, pilots.GetInput{ID: created.Pilot.ID})
	s.Require().NoError(err)
	s.Equal(lowered, got.Pilot.Skills)
	s.Equal(500, got.Pilot.Career.XP)
	s.Equal(500, got.Pilot.Career.TotalXPEarned)
}

func (s *CareerIntegrationTestSuite) TestSixWoundsKillAndHealIsRejected() {
	created, err := s.svc.CreateFromTemplate(s.ctx, &pilot.CreateFromTemplateInput{
		Level:    entities.SkillTemplateVeteran,
		Identity: entities.Identity{Name: "Morgan Kell"},
	})
	s.Require().NoError(err)
	id := created.Pilot.ID

	var last *entities.Pilot
	for i := 1; i <= entities.MaxWounds; i++ {
		out, err := s.svc.ApplyWound(s.ctx, &pilot.WoundInput{PilotID: id})
		s.Require().NoError(err)
		last = out.Pilot

		switch {
		case i >= entities.MaxWounds:
			s.Equal(entities.PilotStatusKIA, last.Status)
		case i >= entities.InjuredWoundThreshold:
			s.Equal(entities.PilotStatusInjured, last.Status)
		default:
			s.Equal(entities.PilotStatusActive, last.Status)
		}
	}
	s.Equal(entities.MaxWounds, last.Wounds)

	_, err = s.svc.HealWounds(s.ctx, &pilot.WoundInput{PilotID: id})
	result := entities.NewOperationResult(id, err)
	s.False(result.Success)
	s.Equal(errors.KindValidationError, result.ErrorCode)
	s.Equal("Cannot heal a KIA pilot", result.Error)

	_, err = s.svc.ApplyWound(s.ctx, &pilot.WoundInput{PilotID: id})
	s.True(errors.IsFailedPrecondition(err))

	got, err := s.svc.GetPilot(s.ctx, &pilot.GetPilotInput{PilotID: id})
	s.Require().NoError(err)
	s.Equal(entities.MaxWounds, got.Pilot.Wounds)
}

func (s *CareerIntegrationTestSuite) TestHealRestoresInjuredPilot() {
	created, err := s.svc.CreatePilot(s.ctx, &pilot.CreatePilotInput{
		Identity: entities.Identity{Name: "Dan Allard"},
	})
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		_, err := s.svc.ApplyWound(s.ctx, &pilot.WoundInput{PilotID: created.Pilot.ID})
		s.Require().NoError(err)
	}

	injured, err := s.svc.ListPilots(s.ctx, &pilot.ListPilotsInput{Status: entities.PilotStatusInjured})
	s.Require().NoError(err)
	s.Len(injured.Pilots, 1)

	out, err := s.svc.HealWounds(s.ctx, &pilot.WoundInput{PilotID: created.Pilot.ID})
	s.Require().NoError(err)
	s.Equal(0, out.Pilot.Wounds)
	s.Equal(entities.PilotStatusActive, out.Pilot.Status)

	injured, err = s.svc.ListPilots(s.ctx, &pilot.ListPilotsInput{Status: entities.PilotStatusInjured})
	s.Require().NoError(err)
	s.Empty(injured.Pilots)
}

func (s *CareerIntegrationTestSuite) TestMissionKillsAndAbilities() {
	created, err := s.svc.CreatePilot(s.ctx, &pilot.CreatePilotInput{
		Identity: entities.Identity{Name: "Jeremiah Rose"},
	})
	s.Require().NoError(err)
	id := created.Pilot.ID

	_, err = s.svc.RecordKill(s.ctx, &pilot.RecordKillInput{
		PilotID:    id,
		TargetID:   "unit_9",
		TargetName: "Marauder",
		WeaponUsed: "Gauss Rifle",
		GameID:     "game_3",
	})
	s.Require().NoError(err)

	awarded, err := s.svc.AwardMissionXP(s.ctx, &pilot.AwardMissionXPInput{
		PilotID: id,
		GameID:  "game_3",
		Outcome: entities.MissionOutcomeDraw,
		Kills:   1,
		Bonuses: pilot.MissionBonuses{HigherBVOpponent: true},
	})
	s.Require().NoError(err)
	s.Equal(200, awarded.XPAwarded)
	s.Equal(200, awarded.Pilot.Career.XP)
	s.Equal(1, awarded.Pilot.Career.Draws)
	s.Equal(1, awarded.Pilot.Career.TotalKills)

	granted, err := s.svc.GrantAbility(s.ctx, &pilot.AbilityInput{PilotID: id, AbilityID: "dodge", GameID: "game_3"})
	s.Require().NoError(err)
	s.True(granted.Pilot.HasAbility("dodge"))

	_, err = s.svc.GrantAbility(s.ctx, &pilot.AbilityInput{PilotID: id, AbilityID: "dodge"})
	s.Equal(errors.KindValidationError, errors.GetKind(err))

	revoked, err := s.svc.RevokeAbility(s.ctx, &pilot.AbilityInput{PilotID: id, AbilityID: "dodge"})
	s.Require().NoError(err)
	s.False(revoked.Pilot.HasAbility("dodge"))
}

func (s *CareerIntegrationTestSuite) TestUpdateAndDelete() {
	created, err := s.svc.CreatePilot(s.ctx, &pilot.CreatePilotInput{
		Identity: entities.Identity{Name: "Melissa Steiner", Callsign: "Archon"},
	})
	s.Require().NoError(err)

	blank := "  "
	_, err = s.svc.UpdatePilot(s.ctx, &pilot.UpdatePilotInput{PilotID: created.Pilot.ID, Name: &blank})
	s.True(errors.IsInvalidArgument(err))

	name := "Melissa Steiner-Davion"
	out, err := s.svc.UpdatePilot(s.ctx, &pilot.UpdatePilotInput{PilotID: created.Pilot.ID, Name: &name})
	s.Require().NoError(err)
	s.Equal(name, out.Pilot.Name)
	s.Equal("Archon", out.Pilot.Callsign)

	_, err = s.svc.DeletePilot(s.ctx, &pilot.DeletePilotInput{PilotID: created.Pilot.ID})
	s.Require().NoError(err)

	_, err = s.svc.GetPilot(s.ctx, &pilot.GetPilotInput{PilotID: created.Pilot.ID})
	s.True(errors.IsNotFound(err))
}
