package encounters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/pkg/clock"
	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
	"github.com/KirkDiggler/mech-api/internal/repositories/encounters"
	"github.com/KirkDiggler/mech-api/internal/testutils"
)

var testNow = time.Date(3025, time.June, 1, 12, 0, 0, 0, time.UTC)

type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() (encounters.Repository, *clock.Fixed, func())
	repo    encounters.Repository
	clock   *clock.Fixed
	cleanup func()
	ctx     context.Context
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (encounters.Repository, *clock.Fixed, func()) {
			c := &clock.Fixed{At: testNow}
			repo := encounters.NewInMemory(&encounters.InMemoryConfig{
				Clock:       c,
				IDGenerator: idgen.NewSequential("encounter"),
			})
			return repo, c, func() {}
		},
	})
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (encounters.Repository, *clock.Fixed, func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			c := &clock.Fixed{At: testNow}
			repo, err := encounters.NewRedis(&encounters.RedisConfig{
				Client:      client,
				Clock:       c,
				IDGenerator: idgen.NewSequential("encounter"),
			})
			if err != nil {
				t.Fatalf("failed to create redis repository: %v", err)
			}
			return repo, c, cleanup
		},
	})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo, s.clock, s.cleanup = s.newRepo()
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RepositoryTestSuite) draft(name string) *entities.Encounter {
	return &entities.Encounter{
		Name:   name,
		Status: entities.EncounterStatusDraft,
		MapConfig: entities.MapConfig{
			Radius:                 6,
			Terrain:                entities.TerrainClear,
			PlayerDeploymentZone:   entities.DeploymentZoneSouth,
			OpponentDeploymentZone: entities.DeploymentZoneNorth,
		},
		VictoryConditions: []entities.VictoryCondition{},
		OptionalRules:     []string{},
	}
}

func (s *RepositoryTestSuite) TestCreateAssignsIdentity() {
	input := s.draft("Battle of Luthien")
	out, err := s.repo.Create(s.ctx, encounters.CreateInput{Encounter: input})
	s.Require().NoError(err)

	s.Equal("encounter_1", out.Encounter.ID)
	s.Equal(testNow, out.Encounter.CreatedAt)
	s.Equal(testNow, out.Encounter.UpdatedAt)
	s.Empty(input.ID, "caller's encounter is not modified")

	got, err := s.repo.Get(s.ctx, encounters.GetInput{ID: out.Encounter.ID})
	s.Require().NoError(err)
	s.Equal(out.Encounter, got.Encounter)

	_, err = s.repo.Create(s.ctx, encounters.CreateInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestUpdateMovesStatusIndex() {
	created, err := s.repo.Create(s.ctx, encounters.CreateInput{Encounter: s.draft("Tukayyid")})
	s.Require().NoError(err)

	s.clock.At = testNow.Add(time.Hour)
	changed := created.Encounter.Clone()
	changed.Status = entities.EncounterStatusReady
	changed.PlayerForce = &entities.ForceReference{ForceID: "force_1", ForceName: "Wolf's Dragoons", TotalBV: 8000, UnitCount: 4}

	out, err := s.repo.Update(s.ctx, encounters.UpdateInput{Encounter: changed})
	s.Require().NoError(err)
	s.Equal(testNow, out.Encounter.CreatedAt)
	s.Equal(testNow.Add(time.Hour), out.Encounter.UpdatedAt)

	drafts, err := s.repo.ListByStatus(s.ctx, encounters.ListByStatusInput{Status: entities.EncounterStatusDraft})
	s.Require().NoError(err)
	s.Empty(drafts.Encounters)

	ready, err := s.repo.ListByStatus(s.ctx, encounters.ListByStatusInput{Status: entities.EncounterStatusReady})
	s.Require().NoError(err)
	s.Require().Len(ready.Encounters, 1)
	s.Equal(out.Encounter, ready.Encounters[0])

	s.Run("missing encounter", func() {
		ghost := s.draft("Ghost")
		ghost.ID = "encounter_404"
		_, err := s.repo.Update(s.ctx, encounters.UpdateInput{Encounter: ghost})
		s.True(errors.IsNotFound(err))
	})
}

func (s *RepositoryTestSuite) TestUpdateGuardsFrozenEncounters() {
	created, err := s.repo.Create(s.ctx, encounters.CreateInput{Encounter: s.draft("Coventry")})
	s.Require().NoError(err)

	launched := created.Encounter.Clone()
	launched.Status = entities.EncounterStatusLaunched
	launched.GameSessionID = "session_1"
	_, err = s.repo.Update(s.ctx, encounters.UpdateInput{Encounter: launched})
	s.Require().NoError(err)

	relaunch := launched.Clone()
	relaunch.GameSessionID = "session_2"
	_, err = s.repo.Update(s.ctx, encounters.UpdateInput{Encounter: relaunch})
	s.True(errors.IsFailedPrecondition(err))

	got, err := s.repo.Get(s.ctx, encounters.GetInput{ID: launched.ID})
	s.Require().NoError(err)
	s.Equal("session_1", got.Encounter.GameSessionID)

	completed := got.Encounter.Clone()
	completed.Status = entities.EncounterStatusCompleted
	_, err = s.repo.Update(s.ctx, encounters.UpdateInput{Encounter: completed})
	s.Require().NoError(err)

	reopened := completed.Clone()
	reopened.Status = entities.EncounterStatusDraft
	_, err = s.repo.Update(s.ctx, encounters.UpdateInput{Encounter: reopened})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *RepositoryTestSuite) TestListOrdersByCreation() {
	first, err := s.repo.Create(s.ctx, encounters.CreateInput{Encounter: s.draft("First")})
	s.Require().NoError(err)
	s.clock.At = testNow.Add(time.Minute)
	second, err := s.repo.Create(s.ctx, encounters.CreateInput{Encounter: s.draft("Second")})
	s.Require().NoError(err)

	all, err := s.repo.List(s.ctx, encounters.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(all.Encounters, 2)
	s.Equal(first.Encounter.ID, all.Encounters[0].ID)
	s.Equal(second.Encounter.ID, all.Encounters[1].ID)
}

func (s *RepositoryTestSuite) TestDelete() {
	created, err := s.repo.Create(s.ctx, encounters.CreateInput{Encounter: s.draft("Twycross")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, encounters.DeleteInput{ID: created.Encounter.ID})
	s.Require().NoError(err)

	exists, err := s.repo.Exists(s.ctx, encounters.ExistsInput{ID: created.Encounter.ID})
	s.Require().NoError(err)
	s.False(exists.Exists)

	_, err = s.repo.Get(s.ctx, encounters.GetInput{ID: created.Encounter.ID})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, encounters.DeleteInput{ID: created.Encounter.ID})
	s.True(errors.IsNotFound(err))
}
