package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
)

type decoded struct {
	Result  entities.OperationResult `json:"result"`
	Details map[string]interface{}   `json:"details"`
	Data    json.RawMessage          `json:"data"`
}

type CLITestSuite struct {
	suite.Suite
	mr *miniredis.Miniredis
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.T().Setenv("CAREER_STORAGE", "redis")
	s.T().Setenv("REDIS_ADDR", mr.Addr())
	s.T().Setenv("LOG_LEVEL", "error")
}

func (s *CLITestSuite) TearDownTest() {
	if application != nil {
		application.Close()
		application = nil
	}
	s.mr.Close()
}

func (s *CLITestSuite) execute(args ...string) (decoded, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())

	var resp decoded
	s.Require().NoError(json.Unmarshal(out.Bytes(), &resp), out.String())
	return resp, err
}

func (s *CLITestSuite) TestPilotAndEncounterFlow() {
	created, err := s.execute("pilot", "create", "--name", "Natasha Kerensky", "--callsign", "Black Widow", "--template", "veteran")
	s.Require().NoError(err)
	s.True(created.Result.Success)

	var pilot entities.Pilot
	s.Require().NoError(json.Unmarshal(created.Data, &pilot))
	s.Equal(created.Result.ID, pilot.ID)
	s.Equal(entities.Skills{Gunnery: 3, Piloting: 4}, pilot.Skills)

	wounded, err := s.execute("pilot", "wound", pilot.ID)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(wounded.Data, &pilot))
	s.Equal(1, pilot.Wounds)

	missing, err := s.execute("pilot", "get", "pilot_missing")
	s.Error(err)
	s.False(missing.Result.Success)
	s.Equal(errors.KindNotFound, missing.Result.ErrorCode)
	s.Empty(missing.Details)

	_, err = s.execute("force", "save", "force_player", "--name", "Wolf's Dragoons", "--bv", "10000", "--units", "4")
	s.Require().NoError(err)
	_, err = s.execute("force", "save", "force_opfor", "--name", "Clan Smoke Jaguar", "--bv", "5000", "--units", "4")
	s.Require().NoError(err)

	enc, err := s.execute("encounter", "create", "--name", "Luthien", "--template", "duel")
	s.Require().NoError(err)
	id := enc.Result.ID

	noForce, err := s.execute("encounter", "set-player", id, "force_missing")
	s.Error(err)
	s.Equal(errors.KindNotFound, noForce.Result.ErrorCode)
	s.Equal("force_missing", noForce.Details["force_id"])

	_, err = s.execute("encounter", "set-player", id, "force_player")
	s.Require().NoError(err)

	blocked, err := s.execute("encounter", "launch", id)
	s.Error(err)
	s.Equal(errors.KindValidationError, blocked.Result.ErrorCode)
	s.Contains(blocked.Result.Error, "Cannot launch")

	_, err = s.execute("encounter", "set-opponent", id, "force_opfor")
	s.Require().NoError(err)

	validated, err := s.execute("encounter", "validate", id)
	s.Require().NoError(err)
	var report struct {
		Valid    bool
		Warnings []string
	}
	s.Require().NoError(json.Unmarshal(validated.Data, &report))
	s.True(report.Valid)
	s.Len(report.Warnings, 1)

	launched, err := s.execute("encounter", "launch", id)
	s.Require().NoError(err)
	s.True(launched.Result.Success)

	doctor, err := s.execute("doctor")
	s.Require().NoError(err)
	s.True(doctor.Result.Success)
}
