package pilots_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/pkg/clock"
	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
	"github.com/KirkDiggler/mech-api/internal/pkg/patch"
	"github.com/KirkDiggler/mech-api/internal/repositories/pilots"
	"github.com/KirkDiggler/mech-api/internal/testutils"
)

var testNow = time.Date(3025, time.March, 14, 9, 30, 0, 0, time.UTC)

// RepositoryTestSuite runs the same behaviour checks against every backend
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() (pilots.Repository, func())
	repo    pilots.Repository
	cleanup func()
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (pilots.Repository, func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			repo, err := pilots.NewRedis(&pilots.RedisConfig{
				Client:      client,
				Clock:       clock.NewFixed(testNow),
				IDGenerator: idgen.NewSequential("pilot"),
			})
			if err != nil {
				t.Fatalf("failed to create redis repository: %v", err)
			}
			return repo, cleanup
		},
	})
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (pilots.Repository, func()) {
			repo, err := pilots.OpenSQLite(&pilots.SQLiteConfig{
				Path:        filepath.Join(t.TempDir(), "career.db"),
				Clock:       clock.NewFixed(testNow),
				IDGenerator: idgen.NewSequential("pilot"),
			})
			if err != nil {
				t.Fatalf("failed to open sqlite repository: %v", err)
			}
			return repo, func() { _ = repo.Close() }
		},
	})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo, s.cleanup = s.newRepo()
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RepositoryTestSuite) createPilot(name string, startingXP int) *entities.Pilot {
	out, err := s.repo.Create(s.ctx, pilots.CreateInput{
		Identity:   entities.Identity{Name: name, Callsign: "Ace"},
		Type:       entities.PilotTypePersistent,
		Skills:     entities.Skills{Gunnery: 4, Piloting: 5},
		StartingXP: startingXP,
		Rank:       "MechWarrior",
	})
	s.Require().NoError(err)
	return out.Pilot
}

func (s *RepositoryTestSuite) TestCreateSeedsCareer() {
	pilot := s.createPilot("Natasha Kerensky", 100)

	s.Equal("pilot_1", pilot.ID)
	s.Equal(entities.PilotStatusActive, pilot.Status)
	s.Equal(0, pilot.Wounds)
	s.Require().NotNil(pilot.Career)
	s.Equal(100, pilot.Career.XP)
	s.Equal(100, pilot.Career.TotalXPEarned)
	s.Equal("MechWarrior", pilot.Career.Rank)
	s.Equal(testNow, pilot.CreatedAt)

	got, err := s.repo.Get(s.ctx, pilots.GetInput{ID: pilot.ID})
	s.Require().NoError(err)
	s.Equal(pilot, got.Pilot)
}

func (s *RepositoryTestSuite) TestCreateValidation() {
	s.Run("rejects statblock pilots", func() {
		_, err := s.repo.Create(s.ctx, pilots.CreateInput{
			Identity: entities.Identity{Name: "Grunt"},
			Type:     entities.PilotTypeStatblock,
		})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("rejects blank names", func() {
		_, err := s.repo.Create(s.ctx, pilots.CreateInput{
			Identity: entities.Identity{Name: "  "},
		})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, pilots.GetInput{ID: "pilot_404"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, pilots.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestUpdate() {
	pilot := s.createPilot("Kai Allard-Liao", 0)
	newName := "Kai Allard"
	wounds := 2
	rank := "Captain"

	out, err := s.repo.Update(s.ctx, pilots.UpdateInput{
		ID:       pilot.ID,
		Name:     &newName,
		Callsign: patch.Clear[string](),
		Portrait: patch.Set("kai.png"),
		Wounds:   &wounds,
		Rank:     &rank,
	})
	s.Require().NoError(err)
	s.Equal("Kai Allard", out.Pilot.Name)
	s.Equal("", out.Pilot.Callsign)
	s.Equal("kai.png", out.Pilot.Portrait)
	s.Equal(2, out.Pilot.Wounds)
	s.Equal("Captain", out.Pilot.Career.Rank)

	got, err := s.repo.Get(s.ctx, pilots.GetInput{ID: pilot.ID})
	s.Require().NoError(err)
	s.Equal(out.Pilot, got.Pilot)

	s.Run("rejects out of range wounds", func() {
		bad := 7
		_, err := s.repo.Update(s.ctx, pilots.UpdateInput{ID: pilot.ID, Wounds: &bad})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing pilot", func() {
		_, err := s.repo.Update(s.ctx, pilots.UpdateInput{ID: "pilot_404", Name: &newName})
		s.True(errors.IsNotFound(err))
	})
}

func (s *RepositoryTestSuite) TestStatusIndex() {
	first := s.createPilot("Morgan Hasek-Davion", 0)
	second := s.createPilot("Victor Steiner-Davion", 0)

	injured := entities.PilotStatusInjured
	_, err := s.repo.Update(s.ctx, pilots.UpdateInput{ID: second.ID, Status: &injured})
	s.Require().NoError(err)

	active, err := s.repo.ListByStatus(s.ctx, pilots.ListByStatusInput{Status: entities.PilotStatusActive})
	s.Require().NoError(err)
	s.Require().Len(active.Pilots, 1)
	s.Equal(first.ID, active.Pilots[0].ID)

	hurt, err := s.repo.ListByStatus(s.ctx, pilots.ListByStatusInput{Status: entities.PilotStatusInjured})
	s.Require().NoError(err)
	s.Require().Len(hurt.Pilots, 1)
	s.Equal(second.ID, hurt.Pilots[0].ID)

	all, err := s.repo.List(s.ctx, pilots.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(all.Pilots, 2)
	s.Equal(first.ID, all.Pilots[0].ID)
	s.Equal(second.ID, all.Pilots[1].ID)
}

func (s *RepositoryTestSuite) TestDelete() {
	pilot := s.createPilot("Aidan Pryde", 0)
	_, err := s.repo.AddAbility(s.ctx, pilots.AddAbilityInput{PilotID: pilot.ID, AbilityID: "marksman"})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, pilots.DeleteInput{ID: pilot.ID})
	s.Require().NoError(err)

	exists, err := s.repo.Exists(s.ctx, pilots.ExistsInput{ID: pilot.ID})
	s.Require().NoError(err)
	s.False(exists.Exists)

	all, err := s.repo.List(s.ctx, pilots.ListInput{})
	s.Require().NoError(err)
	s.Empty(all.Pilots)

	_, err = s.repo.Delete(s.ctx, pilots.DeleteInput{ID: pilot.ID})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestAbilities() {
	pilot := s.createPilot("Phelan Kell", 0)

	out, err := s.repo.AddAbility(s.ctx, pilots.AddAbilityInput{
		PilotID:   pilot.ID,
		AbilityID: "sniper",
		GameID:    "game_1",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Pilot.Abilities, 1)
	s.Equal(entities.PilotAbility{AbilityID: "sniper", AcquiredDate: testNow, AcquiredGameID: "game_1"}, out.Pilot.Abilities[0])

	_, err = s.repo.AddAbility(s.ctx, pilots.AddAbilityInput{PilotID: pilot.ID, AbilityID: "sniper"})
	s.True(errors.IsAlreadyExists(err))

	_, err = s.repo.AddAbility(s.ctx, pilots.AddAbilityInput{PilotID: pilot.ID, AbilityID: "jumping_jack"})
	s.Require().NoError(err)

	removed, err := s.repo.RemoveAbility(s.ctx, pilots.RemoveAbilityInput{PilotID: pilot.ID, AbilityID: "sniper"})
	s.Require().NoError(err)
	s.Require().Len(removed.Pilot.Abilities, 1)
	s.Equal("jumping_jack", removed.Pilot.Abilities[0].AbilityID)

	_, err = s.repo.RemoveAbility(s.ctx, pilots.RemoveAbilityInput{PilotID: pilot.ID, AbilityID: "sniper"})
	s.True(errors.IsNotFound(err))

	got, err := s.repo.Get(s.ctx, pilots.GetInput{ID: pilot.ID})
	s.Require().NoError(err)
	s.Equal(removed.Pilot.Abilities, got.Pilot.Abilities)
}

func (s *RepositoryTestSuite) TestRecordKillAndMission() {
	pilot := s.createPilot("Kerlin Ward", 0)

	_, err := s.repo.RecordKill(s.ctx, pilots.RecordKillInput{
		PilotID: pilot.ID,
		Kill:    entities.KillRecord{TargetID: "unit_1", TargetName: "Atlas", WeaponUsed: "PPC", GameID: "game_7"},
	})
	s.Require().NoError(err)

	out, err := s.repo.RecordMission(s.ctx, pilots.RecordMissionInput{
		PilotID: pilot.ID,
		Mission: entities.MissionRecord{
			GameID:      "game_7",
			MissionName: "Tukayyid",
			Outcome:     entities.MissionOutcomeVictory,
			XPEarned:    150,
			Kills:       1,
		},
	})
	s.Require().NoError(err)

	career := out.Pilot.Career
	s.Equal(1, career.TotalKills)
	s.Equal(1, career.MissionsCompleted)
	s.Equal(1, career.Victories)
	s.Equal(150, career.XP)
	s.Equal(150, career.TotalXPEarned)
	s.Require().Len(career.KillRecords, 1)
	s.Equal(testNow, career.KillRecords[0].Date)
	s.Require().Len(career.MissionHistory, 1)
	s.Equal(testNow, career.MissionHistory[0].Date)

	got, err := s.repo.Get(s.ctx, pilots.GetInput{ID: pilot.ID})
	s.Require().NoError(err)
	s.Equal(out.Pilot, got.Pilot)

	_, err = s.repo.RecordMission(s.ctx, pilots.RecordMissionInput{
		PilotID: pilot.ID,
		Mission: entities.MissionRecord{GameID: "game_8", Outcome: "stalemate"},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestXP() {
	pilot := s.createPilot("Jaime Wolf", 100)

	added, err := s.repo.AddXP(s.ctx, pilots.AddXPInput{PilotID: pilot.ID, Amount: 50})
	s.Require().NoError(err)
	s.Equal(150, added.Pilot.Career.XP)
	s.Equal(150, added.Pilot.Career.TotalXPEarned)

	spent, err := s.repo.SpendXP(s.ctx, pilots.SpendXPInput{PilotID: pilot.ID, Amount: 120})
	s.Require().NoError(err)
	s.Equal(30, spent.Pilot.Career.XP)
	s.Equal(150, spent.Pilot.Career.TotalXPEarned)

	_, err = s.repo.SpendXP(s.ctx, pilots.SpendXPInput{PilotID: pilot.ID, Amount: 31})
	s.True(errors.IsInsufficientXP(err))
	s.Equal(errors.KindInsufficientXP, errors.GetKind(err))

	got, err := s.repo.Get(s.ctx, pilots.GetInput{ID: pilot.ID})
	s.Require().NoError(err)
	s.Equal(30, got.Pilot.Career.XP)

	_, err = s.repo.AddXP(s.ctx, pilots.AddXPInput{PilotID: pilot.ID, Amount: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestImproveSkill() {
	pilot := s.createPilot("Kai Allard-Liao", 500)
	start := entities.Skills{Gunnery: 4, Piloting: 5}

	out, err := s.repo.ImproveSkill(s.ctx, pilots.ImproveSkillInput{
		PilotID:  pilot.ID,
		Expected: start,
		Skills:   entities.Skills{Gunnery: 3, Piloting: 5},
		Cost:     200,
	})
	s.Require().NoError(err)
	s.Equal(3, out.Pilot.Skills.Gunnery)
	s.Equal(300, out.Pilot.Career.XP)
	s.Equal(500, out.Pilot.Career.TotalXPEarned)

	s.Run("stale skills change nothing", func() {
		_, err := s.repo.ImproveSkill(s.ctx, pilots.ImproveSkillInput{
			PilotID:  pilot.ID,
			Expected: start,
			Skills:   entities.Skills{Gunnery: 3, Piloting: 5},
			Cost:     200,
		})
		s.True(errors.IsFailedPrecondition(err))
	})

	s.Run("insufficient XP changes nothing", func() {
		_, err := s.repo.ImproveSkill(s.ctx, pilots.ImproveSkillInput{
			PilotID:  pilot.ID,
			Expected: entities.Skills{Gunnery: 3, Piloting: 5},
			Skills:   entities.Skills{Gunnery: 2, Piloting: 5},
			Cost:     400,
		})
		s.True(errors.IsInsufficientXP(err))
	})

	got, err := s.repo.Get(s.ctx, pilots.GetInput{ID: pilot.ID})
	s.Require().NoError(err)
	s.Equal(entities.Skills{Gunnery: 3, Piloting: 5}, got.Pilot.Skills)
	s.Equal(300, got.Pilot.Career.XP)
	s.Equal(500, got.Pilot.Career.TotalXPEarned)
}
