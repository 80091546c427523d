package pilots_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/pkg/clock"
	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
	"github.com/KirkDiggler/mech-api/internal/redis"
	"github.com/KirkDiggler/mech-api/internal/repositories/pilots"
	"github.com/KirkDiggler/mech-api/internal/testutils"
)

type DiagnoseTestSuite struct {
	suite.Suite
	client  redis.Client
	cleanup func()
	repo    pilots.Repository
	ctx     context.Context
}

func TestDiagnoseSuite(t *testing.T) {
	suite.Run(t, new(DiagnoseTestSuite))
}

func (s *DiagnoseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	repo, err := pilots.NewRedis(&pilots.RedisConfig{
		Client:      s.client,
		Clock:       clock.NewFixed(testNow),
		IDGenerator: idgen.NewSequential("pilot"),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *DiagnoseTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *DiagnoseTestSuite) create(name string) *entities.Pilot {
	out, err := s.repo.Create(s.ctx, pilots.CreateInput{
		Identity: entities.Identity{Name: name},
		Type:     entities.PilotTypePersistent,
		Skills:   entities.Skills{Gunnery: 4, Piloting: 5},
		Rank:     "MechWarrior",
	})
	s.Require().NoError(err)
	return out.Pilot
}

func (s *DiagnoseTestSuite) TestCleanStore() {
	s.create("Natasha Kerensky")
	s.create("Morgan Kell")

	out, err := pilots.Diagnose(s.ctx, s.client, pilots.DiagnoseInput{})
	s.Require().NoError(err)
	s.Equal(2, out.Checked)
	s.Empty(out.Issues)
}

func (s *DiagnoseTestSuite) TestReportsBrokenInvariants() {
	pilot := s.create("Kai Allard-Liao")
	pilot.Wounds = 6
	pilot.Career.XP = 500
	pilot.Career.TotalXPEarned = 100

	data, err := json.Marshal(pilot)
	s.Require().NoError(err)
	s.Require().NoError(s.client.Set(s.ctx, pilots.KeyPrefix+pilot.ID, data, 0).Err())
	s.Require().NoError(s.client.Set(s.ctx, pilots.KeyPrefix+"pilot_garbage", "{not json", 0).Err())

	out, err := pilots.Diagnose(s.ctx, s.client, pilots.DiagnoseInput{})
	s.Require().NoError(err)
	s.Equal(2, out.Checked)

	problems := map[string][]string{}
	for _, issue := range out.Issues {
		problems[issue.PilotID] = append(problems[issue.PilotID], issue.Problem)
	}
	s.Contains(problems[pilot.ID], "6 wounds but status active")
	s.Contains(problems[pilot.ID], "XP 500 exceeds total earned 100")
	s.Contains(problems["pilot_garbage"], "corrupted JSON")
}

func (s *DiagnoseTestSuite) TestRepairsIndexes() {
	pilot := s.create("Victor Steiner-Davion")
	s.Require().NoError(s.client.SRem(s.ctx, "pilots:all", pilot.ID).Err())
	s.Require().NoError(s.client.SAdd(s.ctx, "pilots:status:kia", pilot.ID).Err())
	s.Require().NoError(s.client.SAdd(s.ctx, "pilots:status:active", "pilot_ghost").Err())

	out, err := pilots.Diagnose(s.ctx, s.client, pilots.DiagnoseInput{Repair: true})
	s.Require().NoError(err)
	s.Len(out.Issues, 3)
	for _, issue := range out.Issues {
		s.True(issue.Repaired, issue.Problem)
	}

	again, err := pilots.Diagnose(s.ctx, s.client, pilots.DiagnoseInput{})
	s.Require().NoError(err)
	s.Empty(again.Issues)

	listed, err := s.repo.ListByStatus(s.ctx, pilots.ListByStatusInput{Status: entities.PilotStatusActive})
	s.Require().NoError(err)
	s.Require().Len(listed.Pilots, 1)
	s.Equal(pilot.ID, listed.Pilots[0].ID)
}
