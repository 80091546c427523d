// Package pilot implements the pilot career rules: creation, skill
// advancement, mission XP, wounds and abilities.
package pilot

//go:generate mockgen -destination=mock/mock_service.go -package=pilotmock github.com/KirkDiggler/mech-api/internal/orchestrators/pilot Service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/pkg/clock"
	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
	"github.com/KirkDiggler/mech-api/internal/repositories/pilots"
)

const (
	errCannotHealKIA  = "Cannot heal a KIA pilot"
	errCannotWoundKIA = "Cannot wound a KIA pilot"
)

// Service defines the pilot career operations
type Service interface {
	CreatePilot(ctx context.Context, input *CreatePilotInput) (*CreatePilotOutput, error)
	CreateFromTemplate(ctx context.Context, input *CreateFromTemplateInput) (*CreateFromTemplateOutput, error)
	CreateRandom(ctx context.Context, input *CreateRandomInput) (*CreateRandomOutput, error)
	// CreateStatblock builds an ephemeral pilot; nothing is stored
	CreateStatblock(ctx context.Context, input *CreateStatblockInput) (*CreateStatblockOutput, error)

	GetPilot(ctx context.Context, input *GetPilotInput) (*GetPilotOutput, error)
	ListPilots(ctx context.Context, input *ListPilotsInput) (*ListPilotsOutput, error)
	UpdatePilot(ctx context.Context, input *UpdatePilotInput) (*UpdatePilotOutput, error)
	DeletePilot(ctx context.Context, input *DeletePilotInput) (*DeletePilotOutput, error)

	// Skill advancement
	CanImproveGunnery(pilot *entities.Pilot) *ImprovementCheck
	CanImprovePiloting(pilot *entities.Pilot) *ImprovementCheck
	ImproveGunnery(ctx context.Context, input *ImproveSkillInput) (*ImproveSkillOutput, error)
	ImprovePiloting(ctx context.Context, input *ImproveSkillInput) (*ImproveSkillOutput, error)

	// Career
	AwardMissionXP(ctx context.Context, input *AwardMissionXPInput) (*AwardMissionXPOutput, error)
	RecordKill(ctx context.Context, input *RecordKillInput) (*RecordKillOutput, error)
	GrantAbility(ctx context.Context, input *AbilityInput) (*AbilityOutput, error)
	RevokeAbility(ctx context.Context, input *AbilityInput) (*AbilityOutput, error)

	// Wounds
	ApplyWound(ctx context.Context, input *WoundInput) (*WoundOutput, error)
	HealWounds(ctx context.Context, input *WoundInput) (*WoundOutput, error)

	ValidatePilot(fields PilotFields) []string
}

// Config holds the dependencies for the pilot orchestrator
type Config struct {
	PilotRepo pilots.Repository
	// DiceRoller drives random skill generation; defaults to dice.DefaultRoller
	DiceRoller dice.Roller
	// StatblockIDGenerator defaults to statblock_<uuid> identifiers
	StatblockIDGenerator idgen.Generator
	Clock                clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.PilotRepo == nil {
		vb.RequiredField("PilotRepo")
	}
	return vb.Build()
}

type orchestrator struct {
	pilotRepo   pilots.Repository
	roller      dice.Roller
	statblockID idgen.Generator
	clock       clock.Clock
}

// NewOrchestrator creates a new pilot orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		pilotRepo:   cfg.PilotRepo,
		roller:      cfg.DiceRoller,
		statblockID: cfg.StatblockIDGenerator,
		clock:       cfg.Clock,
	}
	if o.roller == nil {
		o.roller = dice.DefaultRoller
	}
	if o.statblockID == nil {
		o.statblockID = idgen.NewUUID("statblock")
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	return o, nil
}

// ValidatePilot reports every problem with the given fields. Absent fields
// are not checked.
func (o *orchestrator) ValidatePilot(fields PilotFields) []string {
	var problems []string
	if fields.Name != nil && strings.TrimSpace(*fields.Name) == "" {
		problems = append(problems, "Name is required")
	}
	if fields.Gunnery != nil && !skillInRange(*fields.Gunnery) {
		problems = append(problems, fmt.Sprintf("Gunnery must be between %d and %d",
			entities.MinSkillValue, entities.MaxSkillValue))
	}
	if fields.Piloting != nil && !skillInRange(*fields.Piloting) {
		problems = append(problems, fmt.Sprintf("Piloting must be between %d and %d",
			entities.MinSkillValue, entities.MaxSkillValue))
	}
	if fields.Wounds != nil && (*fields.Wounds < 0 || *fields.Wounds > entities.MaxWounds) {
		problems = append(problems, fmt.Sprintf("Wounds must be between 0 and %d", entities.MaxWounds))
	}
	return problems
}

func skillInRange(v int) bool {
	return v >= entities.MinSkillValue && v <= entities.MaxSkillValue
}

func validationFailure(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return errors.InvalidArgument(strings.Join(problems, "; "))
}

func (o *orchestrator) CreatePilot(ctx context.Context, input *CreatePilotInput) (*CreatePilotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	skills := Templates[entities.SkillTemplateRegular].Skills
	if input.Skills != nil {
		skills = *input.Skills
	}

	fields := PilotFields{Name: &input.Identity.Name}
	if input.Skills != nil {
		fields.Gunnery = &input.Skills.Gunnery
		fields.Piloting = &input.Skills.Piloting
	}
	if err := validationFailure(o.ValidatePilot(fields)); err != nil {
		return nil, err
	}
	if input.StartingXP < 0 {
		return nil, errors.InvalidArgument("Starting XP cannot be negative")
	}

	identity := input.Identity
	identity.Name = strings.TrimSpace(identity.Name)

	out, err := o.pilotRepo.Create(ctx, pilots.CreateInput{
		Identity:   identity,
		Type:       entities.PilotTypePersistent,
		Skills:     skills,
		StartingXP: input.StartingXP,
		Rank:       input.Rank,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pilot")
	}

	slog.InfoContext(ctx, "pilot created",
		"pilot_id", out.Pilot.ID,
		"gunnery", out.Pilot.Skills.Gunnery,
		"piloting", out.Pilot.Skills.Piloting)

	return &CreatePilotOutput{Pilot: out.Pilot}, nil
}

func (o *orchestrator) CreateFromTemplate(ctx context.Context, input *CreateFromTemplateInput) (*CreateFromTemplateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	tmpl, ok := Templates[input.Level]
	if !ok {
		return nil, errors.InvalidArgumentf("Unknown experience level: %s", input.Level)
	}

	skills := tmpl.Skills
	out, err := o.CreatePilot(ctx, &CreatePilotInput{
		Identity:   input.Identity,
		Skills:     &skills,
		StartingXP: tmpl.StartingXP,
		Rank:       tmpl.Rank,
	})
	if err != nil {
		return nil, err
	}
	return &CreateFromTemplateOutput{Pilot: out.Pilot}, nil
}

func (o *orchestrator) CreateRandom(ctx context.Context, input *CreateRandomInput) (*CreateRandomOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	gunnery, err := rollSkill(o.roller)
	if err != nil {
		return nil, err
	}
	piloting, err := rollSkill(o.roller)
	if err != nil {
		return nil, err
	}

	out, err := o.CreatePilot(ctx, &CreatePilotInput{
		Identity: input.Identity,
		Skills:   &entities.Skills{Gunnery: gunnery, Piloting: piloting},
	})
	if err != nil {
		return nil, err
	}
	return &CreateRandomOutput{Pilot: out.Pilot}, nil
}

func (o *orchestrator) CreateStatblock(_ context.Context, input *CreateStatblockInput) (*CreateStatblockOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sb := input.Statblock
	problems := o.ValidatePilot(PilotFields{
		Name:     &sb.Name,
		Gunnery:  &sb.Skills.Gunnery,
		Piloting: &sb.Skills.Piloting,
	})
	if err := validationFailure(problems); err != nil {
		return nil, err
	}

	now := o.clock.Now().UTC()
	return &CreateStatblockOutput{
		Pilot: &entities.Pilot{
			ID:        o.statblockID.Generate(),
			Identity:  entities.Identity{Name: strings.TrimSpace(sb.Name)},
			Type:      entities.PilotTypeStatblock,
			Status:    entities.PilotStatusActive,
			Skills:    sb.Skills,
			Abilities: []entities.PilotAbility{},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

func (o *orchestrator) GetPilot(ctx context.Context, input *GetPilotInput) (*GetPilotOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}

	out, err := o.pilotRepo.Get(ctx, pilots.GetInput{ID: input.PilotID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pilot")
	}
	return &GetPilotOutput{Pilot: out.Pilot}, nil
}

func (o *orchestrator) ListPilots(ctx context.Context, input *ListPilotsInput) (*ListPilotsOutput, error) {
	if input == nil {
		input = &ListPilotsInput{}
	}

	if input.Status == "" {
		out, err := o.pilotRepo.List(ctx, pilots.ListInput{})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list pilots")
		}
		return &ListPilotsOutput{Pilots: out.Pilots}, nil
	}

	out, err := o.pilotRepo.ListByStatus(ctx, pilots.ListByStatusInput{Status: input.Status})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pilots")
	}
	return &ListPilotsOutput{Pilots: out.Pilots}, nil
}

func (o *orchestrator) UpdatePilot(ctx context.Context, input *UpdatePilotInput) (*UpdatePilotOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}

	fields := PilotFields{Name: input.Name}
	if input.Skills != nil {
		fields.Gunnery = &input.Skills.Gunnery
		fields.Piloting = &input.Skills.Piloting
	}
	if err := validationFailure(o.ValidatePilot(fields)); err != nil {
		return nil, err
	}

	update := pilots.UpdateInput{
		ID:          input.PilotID,
		Callsign:    input.Callsign,
		Affiliation: input.Affiliation,
		Portrait:    input.Portrait,
		Background:  input.Background,
		Skills:      input.Skills,
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		update.Name = &name
	}

	out, err := o.pilotRepo.Update(ctx, update)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update pilot")
	}
	return &UpdatePilotOutput{Pilot: out.Pilot}, nil
}

func (o *orchestrator) DeletePilot(ctx context.Context, input *DeletePilotInput) (*DeletePilotOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}

	if _, err := o.pilotRepo.Delete(ctx, pilots.DeleteInput{ID: input.PilotID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete pilot")
	}

	slog.InfoContext(ctx, "pilot deleted", "pilot_id", input.PilotID)
	return &DeletePilotOutput{}, nil
}

func (o *orchestrator) CanImproveGunnery(pilot *entities.Pilot) *ImprovementCheck {
	if pilot == nil {
		return &ImprovementCheck{}
	}
	return canImprove(pilot, pilot.Skills.Gunnery)
}

func (o *orchestrator) CanImprovePiloting(pilot *entities.Pilot) *ImprovementCheck {
	if pilot == nil {
		return &ImprovementCheck{}
	}
	return canImprove(pilot, pilot.Skills.Piloting)
}

func canImprove(pilot *entities.Pilot, current int) *ImprovementCheck {
	cost := ImprovementCost(current)
	return &ImprovementCheck{
		CanImprove: cost != nil && pilot.XP() >= *cost,
		Cost:       cost,
	}
}

type skillKind string

const (
	skillGunnery  skillKind = "gunnery"
	skillPiloting skillKind = "piloting"
)

func (k skillKind) value(s entities.Skills) int {
	if k == skillGunnery {
		return s.Gunnery
	}
	return s.Piloting
}

func (k skillKind) lowered(s entities.Skills) entities.Skills {
	if k == skillGunnery {
		s.Gunnery--
	} else {
		s.Piloting--
	}
	return s
}

func (o *orchestrator) ImproveGunnery(ctx context.Context, input *ImproveSkillInput) (*ImproveSkillOutput, error) {
	return o.improve(ctx, input, skillGunnery)
}

func (o *orchestrator) ImprovePiloting(ctx context.Context, input *ImproveSkillInput) (*ImproveSkillOutput, error) {
	return o.improve(ctx, input, skillPiloting)
}

// improve debits the XP and lowers the skill in a single store write
func (o *orchestrator) improve(ctx context.Context, input *ImproveSkillInput, kind skillKind) (*ImproveSkillOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}

	getOut, err := o.pilotRepo.Get(ctx, pilots.GetInput{ID: input.PilotID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pilot")
	}
	pilot := getOut.Pilot

	if !pilot.IsPersistent() || pilot.Career == nil {
		return nil, errors.FailedPreconditionf("pilot %s has no career", pilot.ID)
	}

	cost := ImprovementCost(kind.value(pilot.Skills))
	if cost == nil {
		return nil, errors.InvalidArgumentf("%s is already at the minimum value", kind)
	}
	if pilot.XP() < *cost {
		return nil, errors.InsufficientXPf("insufficient XP: need %d, have %d", *cost, pilot.XP())
	}

	skills := kind.lowered(pilot.Skills)
	updated, err := o.pilotRepo.ImproveSkill(ctx, pilots.ImproveSkillInput{
		PilotID:  pilot.ID,
		Expected: pilot.Skills,
		Skills:   skills,
		Cost:     *cost,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to improve %s", kind)
	}

	slog.InfoContext(ctx, "pilot skill improved",
		"pilot_id", pilot.ID,
		"skill", string(kind),
		"value", kind.value(skills),
		"cost", *cost)

	return &ImproveSkillOutput{Pilot: updated.Pilot, Cost: *cost}, nil
}

func (o *orchestrator) AwardMissionXP(ctx context.Context, input *AwardMissionXPInput) (*AwardMissionXPOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("outcome", string(input.Outcome), []string{
		string(entities.MissionOutcomeVictory),
		string(entities.MissionOutcomeDefeat),
		string(entities.MissionOutcomeDraw),
	}, vb)
	if input.Kills < 0 {
		vb.Field("kills", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	total := MissionXP(input.Outcome, input.Kills, input.Bonuses)
	out, err := o.pilotRepo.RecordMission(ctx, pilots.RecordMissionInput{
		PilotID: input.PilotID,
		Mission: entities.MissionRecord{
			GameID:      input.GameID,
			MissionName: input.MissionName,
			Outcome:     input.Outcome,
			XPEarned:    total,
			Kills:       input.Kills,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record mission")
	}

	slog.InfoContext(ctx, "mission XP awarded",
		"pilot_id", input.PilotID,
		"outcome", string(input.Outcome),
		"xp", total)

	return &AwardMissionXPOutput{Pilot: out.Pilot, XPAwarded: total}, nil
}

func (o *orchestrator) RecordKill(ctx context.Context, input *RecordKillInput) (*RecordKillOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}
	if input.TargetID == "" {
		return nil, errors.InvalidArgument("target ID is required")
	}

	out, err := o.pilotRepo.RecordKill(ctx, pilots.RecordKillInput{
		PilotID: input.PilotID,
		Kill: entities.KillRecord{
			TargetID:   input.TargetID,
			TargetName: input.TargetName,
			WeaponUsed: input.WeaponUsed,
			GameID:     input.GameID,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record kill")
	}
	return &RecordKillOutput{Pilot: out.Pilot}, nil
}

func (o *orchestrator) GrantAbility(ctx context.Context, input *AbilityInput) (*AbilityOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}

	out, err := o.pilotRepo.AddAbility(ctx, pilots.AddAbilityInput{
		PilotID:   input.PilotID,
		AbilityID: input.AbilityID,
		GameID:    input.GameID,
	})
	if err != nil {
		if errors.IsAlreadyExists(err) {
			slog.InfoContext(ctx, "ability already granted",
				"pilot_id", input.PilotID,
				"ability_id", input.AbilityID)
		}
		return nil, errors.Wrap(err, "failed to grant ability")
	}
	return &AbilityOutput{Pilot: out.Pilot}, nil
}

func (o *orchestrator) RevokeAbility(ctx context.Context, input *AbilityInput) (*AbilityOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}

	out, err := o.pilotRepo.RemoveAbility(ctx, pilots.RemoveAbilityInput{
		PilotID:   input.PilotID,
		AbilityID: input.AbilityID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to revoke ability")
	}
	return &AbilityOutput{Pilot: out.Pilot}, nil
}

func (o *orchestrator) ApplyWound(ctx context.Context, input *WoundInput) (*WoundOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}

	getOut, err := o.pilotRepo.Get(ctx, pilots.GetInput{ID: input.PilotID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pilot")
	}
	pilot := getOut.Pilot
	if pilot.IsKIA() {
		return nil, errors.FailedPrecondition(errCannotWoundKIA)
	}

	wounds := min(pilot.Wounds+1, entities.MaxWounds)
	status := entities.StatusForWounds(wounds, pilot.Status)

	out, err := o.pilotRepo.Update(ctx, pilots.UpdateInput{
		ID:     pilot.ID,
		Wounds: &wounds,
		Status: &status,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply wound")
	}

	if status == entities.PilotStatusKIA {
		slog.WarnContext(ctx, "pilot killed in action", "pilot_id", pilot.ID)
	}
	return &WoundOutput{Pilot: out.Pilot}, nil
}

func (o *orchestrator) HealWounds(ctx context.Context, input *WoundInput) (*WoundOutput, error) {
	if input == nil || input.PilotID == "" {
		return nil, errors.InvalidArgument("pilot ID is required")
	}

	getOut, err := o.pilotRepo.Get(ctx, pilots.GetInput{ID: input.PilotID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pilot")
	}
	if getOut.Pilot.IsKIA() {
		return nil, errors.FailedPrecondition(errCannotHealKIA)
	}

	wounds := 0
	status := entities.PilotStatusActive
	out, err := o.pilotRepo.Update(ctx, pilots.UpdateInput{
		ID:     input.PilotID,
		Wounds: &wounds,
		Status: &status,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to heal pilot")
	}
	return &WoundOutput{Pilot: out.Pilot}, nil
}
