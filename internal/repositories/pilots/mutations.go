package pilots

import (
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
)

// The functions in this file hold the record-level rules both storage
// backends share. Each one mutates the pilot in place or fails without
// touching it.

const (
	errPilotIDEmpty   = "pilot ID cannot be empty"
	errAbilityIDEmpty = "ability ID cannot be empty"
	errNoCareer       = "pilot %s has no career"
)

func newPilot(id string, now time.Time, input CreateInput) (*entities.Pilot, error) {
	if input.Type == entities.PilotTypeStatblock {
		return nil, errors.InvalidArgument("statblock pilots are not persisted")
	}
	if strings.TrimSpace(input.Identity.Name) == "" {
		return nil, errors.InvalidArgument("pilot name cannot be empty")
	}
	if input.StartingXP < 0 {
		return nil, errors.InvalidArgument("starting XP cannot be negative")
	}

	return &entities.Pilot{
		ID:        id,
		Identity:  input.Identity,
		Type:      entities.PilotTypePersistent,
		Status:    entities.PilotStatusActive,
		Skills:    input.Skills,
		Wounds:    0,
		Abilities: []entities.PilotAbility{},
		Career: &entities.Career{
			KillRecords:    []entities.KillRecord{},
			MissionHistory: []entities.MissionRecord{},
			XP:             input.StartingXP,
			TotalXPEarned:  input.StartingXP,
			Rank:           input.Rank,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func applyUpdate(p *entities.Pilot, input UpdateInput, now time.Time) error {
	if input.Wounds != nil && (*input.Wounds < 0 || *input.Wounds > entities.MaxWounds) {
		return errors.InvalidArgumentf("wounds must be between 0 and %d", entities.MaxWounds)
	}
	if input.Rank != nil && p.Career == nil {
		return errors.FailedPreconditionf(errNoCareer, p.ID)
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	p.Callsign = applyString(input.Callsign.Apply(&p.Callsign))
	p.Affiliation = applyString(input.Affiliation.Apply(&p.Affiliation))
	p.Portrait = applyString(input.Portrait.Apply(&p.Portrait))
	p.Background = applyString(input.Background.Apply(&p.Background))
	if input.Skills != nil {
		p.Skills = *input.Skills
	}
	if input.Wounds != nil {
		p.Wounds = *input.Wounds
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	if input.Rank != nil {
		p.Career.Rank = *input.Rank
	}
	p.UpdatedAt = now
	return nil
}

func applyString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func addAbility(p *entities.Pilot, input AddAbilityInput, now time.Time) error {
	if input.AbilityID == "" {
		return errors.InvalidArgument(errAbilityIDEmpty)
	}
	if p.HasAbility(input.AbilityID) {
		return errors.AlreadyExistsf("pilot %s already has ability %s", p.ID, input.AbilityID)
	}
	p.Abilities = append(p.Abilities, entities.PilotAbility{
		AbilityID:      input.AbilityID,
		AcquiredDate:   now,
		AcquiredGameID: input.GameID,
	})
	p.UpdatedAt = now
	return nil
}

func removeAbility(p *entities.Pilot, abilityID string, now time.Time) error {
	if abilityID == "" {
		return errors.InvalidArgument(errAbilityIDEmpty)
	}
	idx := slices.IndexFunc(p.Abilities, func(a entities.PilotAbility) bool {
		return a.AbilityID == abilityID
	})
	if idx < 0 {
		return errors.NotFoundf("pilot %s does not have ability %s", p.ID, abilityID)
	}
	p.Abilities = slices.Delete(p.Abilities, idx, idx+1)
	p.UpdatedAt = now
	return nil
}

func recordKill(p *entities.Pilot, kill entities.KillRecord, now time.Time) error {
	if p.Career == nil {
		return errors.FailedPreconditionf(errNoCareer, p.ID)
	}
	if kill.Date.IsZero() {
		kill.Date = now
	}
	p.Career.KillRecords = append(p.Career.KillRecords, kill)
	p.Career.TotalKills++
	p.UpdatedAt = now
	return nil
}

func recordMission(p *entities.Pilot, mission entities.MissionRecord, now time.Time) error {
	if p.Career == nil {
		return errors.FailedPreconditionf(errNoCareer, p.ID)
	}
	if mission.XPEarned < 0 {
		return errors.InvalidArgument("mission XP cannot be negative")
	}
	if mission.Date.IsZero() {
		mission.Date = now
	}

	switch mission.Outcome {
	case entities.MissionOutcomeVictory:
		p.Career.Victories++
	case entities.MissionOutcomeDefeat:
		p.Career.Defeats++
	case entities.MissionOutcomeDraw:
		p.Career.Draws++
	default:
		return errors.InvalidArgumentf("unknown mission outcome %q", mission.Outcome)
	}

	p.Career.MissionsCompleted++
	p.Career.MissionHistory = append(p.Career.MissionHistory, mission)
	p.Career.XP += mission.XPEarned
	p.Career.TotalXPEarned += mission.XPEarned
	p.UpdatedAt = now
	return nil
}

func addXP(p *entities.Pilot, amount int, now time.Time) error {
	if p.Career == nil {
		return errors.FailedPreconditionf(errNoCareer, p.ID)
	}
	if amount < 0 {
		return errors.InvalidArgument("XP amount cannot be negative")
	}
	p.Career.XP += amount
	p.Career.TotalXPEarned += amount
	p.UpdatedAt = now
	return nil
}

func spendXP(p *entities.Pilot, amount int, now time.Time) error {
	if p.Career == nil {
		return errors.FailedPreconditionf(errNoCareer, p.ID)
	}
	if amount < 0 {
		return errors.InvalidArgument("XP amount cannot be negative")
	}
	if amount > p.Career.XP {
		return errors.InsufficientXPf("insufficient XP: need %d, have %d", amount, p.Career.XP)
	}
	p.Career.XP -= amount
	p.UpdatedAt = now
	return nil
}

func improveSkill(p *entities.Pilot, input ImproveSkillInput, now time.Time) error {
	if p.Skills != input.Expected {
		return errors.FailedPreconditionf("pilot %s skills changed during improvement", p.ID)
	}
	if err := spendXP(p, input.Cost, now); err != nil {
		return err
	}
	p.Skills = input.Skills
	return nil
}
