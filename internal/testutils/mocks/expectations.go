// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/repositories/encounters"
	encountermock "github.com/KirkDiggler/mech-api/internal/repositories/encounters/mock"
	"github.com/KirkDiggler/mech-api/internal/repositories/forces"
	forcemock "github.com/KirkDiggler/mech-api/internal/repositories/forces/mock"
	"github.com/KirkDiggler/mech-api/internal/repositories/pilots"
	pilotmock "github.com/KirkDiggler/mech-api/internal/repositories/pilots/mock"
)

// ExpectPilotGet sets up a mock expectation for loading a pilot
func ExpectPilotGet(
	ctx context.Context, mockRepo *pilotmock.MockRepository,
	pilotID string, pilot *entities.Pilot, err error,
) *gomock.Call {
	if err != nil {
		return mockRepo.EXPECT().
			Get(ctx, pilots.GetInput{ID: pilotID}).
			Return(nil, err)
	}
	return mockRepo.EXPECT().
		Get(ctx, pilots.GetInput{ID: pilotID}).
		Return(&pilots.GetOutput{Pilot: pilot}, nil)
}

// ExpectPilotUpdate sets up a mock expectation for a partial update that
// echoes the input onto pilot
func ExpectPilotUpdate(
	ctx context.Context, mockRepo *pilotmock.MockRepository,
	input pilots.UpdateInput, pilot *entities.Pilot,
) *gomock.Call {
	return mockRepo.EXPECT().
		Update(ctx, input).
		DoAndReturn(func(_ context.Context, in pilots.UpdateInput) (*pilots.UpdateOutput, error) {
			updated := pilot.Clone()
			if in.Skills != nil {
				updated.Skills = *in.Skills
			}
			if in.Wounds != nil {
				updated.Wounds = *in.Wounds
			}
			if in.Status != nil {
				updated.Status = *in.Status
			}
			return &pilots.UpdateOutput{Pilot: updated}, nil
		})
}

// ExpectImproveSkill sets up a mock expectation for a successful skill
// purchase lowering pilot's skills to skills
func ExpectImproveSkill(
	ctx context.Context, mockRepo *pilotmock.MockRepository,
	pilot *entities.Pilot, skills entities.Skills, cost int,
) *gomock.Call {
	input := pilots.ImproveSkillInput{
		PilotID:  pilot.ID,
		Expected: pilot.Skills,
		Skills:   skills,
		Cost:     cost,
	}
	return mockRepo.EXPECT().
		ImproveSkill(ctx, input).
		DoAndReturn(func(_ context.Context, _ pilots.ImproveSkillInput) (*pilots.ImproveSkillOutput, error) {
			improved := pilot.Clone()
			improved.Skills = skills
			improved.Career.XP -= cost
			return &pilots.ImproveSkillOutput{Pilot: improved}, nil
		})
}

// ExpectEncounterGet sets up a mock expectation for loading an encounter
func ExpectEncounterGet(
	ctx context.Context, mockRepo *encountermock.MockRepository,
	encounterID string, encounter *entities.Encounter, err error,
) *gomock.Call {
	if err != nil {
		return mockRepo.EXPECT().
			Get(ctx, encounters.GetInput{ID: encounterID}).
			Return(nil, err)
	}
	return mockRepo.EXPECT().
		Get(ctx, encounters.GetInput{ID: encounterID}).
		Return(&encounters.GetOutput{Encounter: encounter}, nil)
}

// ExpectEncounterUpdate sets up a mock expectation for saving an encounter,
// returning whatever was written
func ExpectEncounterUpdate(ctx context.Context, mockRepo *encountermock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in encounters.UpdateInput) (*encounters.UpdateOutput, error) {
			return &encounters.UpdateOutput{Encounter: in.Encounter.Clone()}, nil
		})
}

// ExpectForceGet sets up a mock expectation for loading a force
func ExpectForceGet(
	ctx context.Context, mockRepo *forcemock.MockRepository,
	forceID string, force *entities.Force, err error,
) *gomock.Call {
	if err != nil {
		return mockRepo.EXPECT().
			Get(ctx, forces.GetInput{ID: forceID}).
			Return(nil, err)
	}
	return mockRepo.EXPECT().
		Get(ctx, forces.GetInput{ID: forceID}).
		Return(&forces.GetOutput{Force: force}, nil)
}
