// Package encounter implements the encounter lifecycle: configuration,
// force assignment, validation, launch and cloning.
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/KirkDiggler/mech-api/internal/orchestrators/encounter Service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/pkg/idgen"
	"github.com/KirkDiggler/mech-api/internal/repositories/encounters"
	"github.com/KirkDiggler/mech-api/internal/repositories/forces"
)

const (
	errAlreadyLaunched  = "Encounter is already launched"
	errAlreadyCompleted = "Encounter is already completed"
	errDeleteLaunched   = "Cannot delete a launched encounter"
	errForceNotFound    = "Force not found"
	errNameRequired     = "Name is required"
)

// Service defines the encounter lifecycle operations
type Service interface {
	CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error)
	GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error)
	ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error)
	UpdateEncounter(ctx context.Context, input *UpdateEncounterInput) (*UpdateEncounterOutput, error)
	DeleteEncounter(ctx context.Context, input *DeleteEncounterInput) (*DeleteEncounterOutput, error)

	// Force assignment snapshots the force's stats at call time
	SetPlayerForce(ctx context.Context, input *SetForceInput) (*SetForceOutput, error)
	SetOpponentForce(ctx context.Context, input *SetForceInput) (*SetForceOutput, error)
	ClearOpponentForce(ctx context.Context, input *ClearOpponentForceInput) (*ClearOpponentForceOutput, error)

	ApplyTemplate(ctx context.Context, input *ApplyTemplateInput) (*ApplyTemplateOutput, error)

	ValidateEncounter(ctx context.Context, input *ValidateEncounterInput) (*ValidateEncounterOutput, error)
	CanLaunch(ctx context.Context, input *CanLaunchInput) (*CanLaunchOutput, error)
	LaunchEncounter(ctx context.Context, input *LaunchEncounterInput) (*LaunchEncounterOutput, error)
	// CompleteEncounter is called by the gameplay layer when a battle ends
	CompleteEncounter(ctx context.Context, input *CompleteEncounterInput) (*CompleteEncounterOutput, error)

	CloneEncounter(ctx context.Context, input *CloneEncounterInput) (*CloneEncounterOutput, error)
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	EncounterRepo encounters.Repository
	ForceRepo     forces.Repository
	// SessionIDGenerator defaults to session_<uuid> identifiers
	SessionIDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.EncounterRepo == nil {
		vb.RequiredField("EncounterRepo")
	}
	if c.ForceRepo == nil {
		vb.RequiredField("ForceRepo")
	}
	return vb.Build()
}

type orchestrator struct {
	encounterRepo encounters.Repository
	forceRepo     forces.Repository
	sessionID     idgen.Generator
}

// NewOrchestrator creates a new encounter orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	gen := cfg.SessionIDGenerator
	if gen == nil {
		gen = idgen.NewUUID("session")
	}

	return &orchestrator{
		encounterRepo: cfg.EncounterRepo,
		forceRepo:     cfg.ForceRepo,
		sessionID:     gen,
	}, nil
}

func (o *orchestrator) CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.InvalidArgument(errNameRequired)
	}

	encounter := &entities.Encounter{
		Name:              name,
		Description:       input.Description,
		Status:            entities.EncounterStatusDraft,
		MapConfig:         DefaultMapConfig(),
		VictoryConditions: []entities.VictoryCondition{},
		OptionalRules:     []string{},
	}
	if tmpl, ok := lookupTemplate(input.Template); ok {
		t := input.Template
		encounter.Template = &t
		encounter.MapConfig = tmpl.mapConfig
		encounter.VictoryConditions = tmpl.victoryConditions
	}

	out, err := o.encounterRepo.Create(ctx, encounters.CreateInput{Encounter: encounter})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create encounter")
	}

	slog.InfoContext(ctx, "encounter created",
		"encounter_id", out.Encounter.ID,
		"template", string(input.Template))

	return &CreateEncounterOutput{Encounter: out.Encounter}, nil
}

func (o *orchestrator) GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounter, err := o.load(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}
	return &GetEncounterOutput{Encounter: encounter}, nil
}

func (o *orchestrator) ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error) {
	if input == nil {
		input = &ListEncountersInput{}
	}

	if input.Status == "" {
		out, err := o.encounterRepo.List(ctx, encounters.ListInput{})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list encounters")
		}
		return &ListEncountersOutput{Encounters: out.Encounters}, nil
	}

	out, err := o.encounterRepo.ListByStatus(ctx, encounters.ListByStatusInput{Status: input.Status})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list encounters")
	}
	return &ListEncountersOutput{Encounters: out.Encounters}, nil
}

// load fetches an encounter, reporting a missing one as ErrEncounterNotFound
func (o *orchestrator) load(ctx context.Context, id string) (*entities.Encounter, error) {
	if id == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	out, err := o.encounterRepo.Get(ctx, encounters.GetInput{ID: id})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFound(ErrEncounterNotFound).WithMeta("encounter_id", id)
		}
		return nil, errors.Wrap(err, "failed to get encounter")
	}
	return out.Encounter, nil
}

// loadMutable fetches an encounter that still accepts configuration changes
func (o *orchestrator) loadMutable(ctx context.Context, id string) (*entities.Encounter, error) {
	encounter, err := o.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if encounter.IsFrozen() {
		return nil, errors.FailedPreconditionf("Cannot update encounter in %s status", encounter.Status)
	}
	return encounter, nil
}

// save recomputes the derived status and persists the encounter
func (o *orchestrator) save(ctx context.Context, encounter *entities.Encounter) (*entities.Encounter, error) {
	previous := encounter.Status
	encounter.RecomputeStatus()

	out, err := o.encounterRepo.Update(ctx, encounters.UpdateInput{Encounter: encounter})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save encounter")
	}

	if previous != out.Encounter.Status {
		slog.InfoContext(ctx, "encounter status changed",
			"encounter_id", out.Encounter.ID,
			"from", string(previous),
			"to", string(out.Encounter.Status))
	}
	return out.Encounter, nil
}

// hydrate snapshots a force's current stats
func (o *orchestrator) hydrate(ctx context.Context, forceID string) (*entities.ForceReference, error) {
	if forceID == "" {
		return nil, errors.InvalidArgument("force ID is required")
	}

	out, err := o.forceRepo.Get(ctx, forces.GetInput{ID: forceID})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFound(errForceNotFound).WithMeta("force_id", forceID)
		}
		return nil, errors.Wrap(err, "failed to get force")
	}
	return out.Force.Snapshot(), nil
}

func (o *orchestrator) UpdateEncounter(ctx context.Context, input *UpdateEncounterInput) (*UpdateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounter, err := o.loadMutable(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.InvalidArgument(errNameRequired)
		}
		encounter.Name = name
	}
	if input.Description.IsPresent() {
		encounter.Description, _ = input.Description.Value()
	}
	if input.MapConfig != nil {
		encounter.MapConfig = *input.MapConfig
	}
	if input.VictoryConditions.IsPresent() {
		conditions, _ := input.VictoryConditions.Value()
		encounter.VictoryConditions = entities.CloneVictoryConditions(conditions)
		if encounter.VictoryConditions == nil {
			encounter.VictoryConditions = []entities.VictoryCondition{}
		}
	}
	if input.OptionalRules.IsPresent() {
		rules, _ := input.OptionalRules.Value()
		encounter.OptionalRules = slices.Clone(rules)
		if encounter.OptionalRules == nil {
			encounter.OptionalRules = []string{}
		}
	}

	if forceID, ok := input.PlayerForceID.Value(); ok {
		ref, err := o.hydrate(ctx, forceID)
		if err != nil {
			return nil, err
		}
		encounter.PlayerForce = ref
	} else if input.PlayerForceID.IsClear() {
		encounter.PlayerForce = nil
	}

	if forceID, ok := input.OpponentForceID.Value(); ok {
		ref, err := o.hydrate(ctx, forceID)
		if err != nil {
			return nil, err
		}
		encounter.OpponentForce = ref
		if !input.OpForConfig.IsPresent() {
			encounter.OpForConfig = nil
		}
	} else if input.OpponentForceID.IsClear() {
		encounter.OpponentForce = nil
	}

	if input.OpForConfig.IsPresent() {
		cfg := input.OpForConfig.Apply(encounter.OpForConfig)
		encounter.OpForConfig = cfg.Clone()
	}

	saved, err := o.save(ctx, encounter)
	if err != nil {
		return nil, err
	}
	return &UpdateEncounterOutput{Encounter: saved}, nil
}

func (o *orchestrator) DeleteEncounter(ctx context.Context, input *DeleteEncounterInput) (*DeleteEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounter, err := o.load(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}
	if encounter.Status == entities.EncounterStatusLaunched {
		return nil, errors.FailedPrecondition(errDeleteLaunched)
	}

	if _, err := o.encounterRepo.Delete(ctx, encounters.DeleteInput{ID: encounter.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete encounter")
	}

	slog.InfoContext(ctx, "encounter deleted", "encounter_id", encounter.ID)
	return &DeleteEncounterOutput{}, nil
}

func (o *orchestrator) SetPlayerForce(ctx context.Context, input *SetForceInput) (*SetForceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounter, err := o.loadMutable(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}
	ref, err := o.hydrate(ctx, input.ForceID)
	if err != nil {
		return nil, err
	}
	encounter.PlayerForce = ref

	saved, err := o.save(ctx, encounter)
	if err != nil {
		return nil, err
	}
	return &SetForceOutput{Encounter: saved}, nil
}

func (o *orchestrator) SetOpponentForce(ctx context.Context, input *SetForceInput) (*SetForceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounter, err := o.loadMutable(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}
	ref, err := o.hydrate(ctx, input.ForceID)
	if err != nil {
		return nil, err
	}
	encounter.OpponentForce = ref
	encounter.OpForConfig = nil

	saved, err := o.save(ctx, encounter)
	if err != nil {
		return nil, err
	}
	return &SetForceOutput{Encounter: saved}, nil
}

func (o *orchestrator) ClearOpponentForce(ctx context.Context, input *ClearOpponentForceInput) (*ClearOpponentForceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounter, err := o.loadMutable(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}
	encounter.OpponentForce = nil

	saved, err := o.save(ctx, encounter)
	if err != nil {
		return nil, err
	}
	return &ClearOpponentForceOutput{Encounter: saved}, nil
}

func (o *orchestrator) ApplyTemplate(ctx context.Context, input *ApplyTemplateInput) (*ApplyTemplateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	tmpl, ok := lookupTemplate(input.Template)
	if !ok {
		return nil, errors.InvalidArgumentf("Unknown template: %s", input.Template)
	}

	encounter, err := o.loadMutable(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}
	t := input.Template
	encounter.Template = &t
	encounter.MapConfig = tmpl.mapConfig
	encounter.VictoryConditions = tmpl.victoryConditions

	saved, err := o.save(ctx, encounter)
	if err != nil {
		return nil, err
	}
	return &ApplyTemplateOutput{Encounter: saved}, nil
}

// ValidateEncounter reports a missing encounter as a validation error rather
// than failing; only storage failures return an error.
func (o *orchestrator) ValidateEncounter(ctx context.Context, input *ValidateEncounterInput) (*ValidateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounter, err := o.load(ctx, input.EncounterID)
	if err != nil {
		if errors.IsNotFound(err) {
			return &ValidateEncounterOutput{
				Valid:    false,
				Errors:   []string{ErrEncounterNotFound},
				Warnings: []string{},
			}, nil
		}
		return nil, err
	}
	return evaluate(encounter), nil
}

func (o *orchestrator) CanLaunch(ctx context.Context, input *CanLaunchInput) (*CanLaunchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	result, err := o.ValidateEncounter(ctx, &ValidateEncounterInput{EncounterID: input.EncounterID})
	if err != nil {
		return nil, err
	}
	return &CanLaunchOutput{CanLaunch: result.Valid}, nil
}

func (o *orchestrator) LaunchEncounter(ctx context.Context, input *LaunchEncounterInput) (*LaunchEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounter, err := o.load(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	switch encounter.Status {
	case entities.EncounterStatusLaunched:
		return nil, errors.FailedPrecondition(errAlreadyLaunched)
	case entities.EncounterStatusCompleted:
		return nil, errors.FailedPrecondition(errAlreadyCompleted)
	}

	result := evaluate(encounter)
	if !result.Valid {
		return nil, errors.FailedPreconditionf("Cannot launch encounter: %s", strings.Join(result.Errors, "; "))
	}
	for _, warning := range result.Warnings {
		slog.WarnContext(ctx, "launching with warning",
			"encounter_id", encounter.ID,
			"warning", warning)
	}

	encounter.Status = entities.EncounterStatusLaunched
	encounter.GameSessionID = o.sessionID.Generate()

	out, err := o.encounterRepo.Update(ctx, encounters.UpdateInput{Encounter: encounter})
	if err != nil {
		return nil, errors.Wrap(err, "failed to launch encounter")
	}

	slog.InfoContext(ctx, "encounter launched",
		"encounter_id", out.Encounter.ID,
		"game_session_id", out.Encounter.GameSessionID)

	return &LaunchEncounterOutput{
		Encounter:     out.Encounter,
		GameSessionID: out.Encounter.GameSessionID,
	}, nil
}

func (o *orchestrator) CompleteEncounter(ctx context.Context, input *CompleteEncounterInput) (*CompleteEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounter, err := o.load(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}
	if encounter.Status != entities.EncounterStatusLaunched {
		return nil, errors.FailedPreconditionf("Cannot complete encounter in %s status", encounter.Status)
	}

	encounter.Status = entities.EncounterStatusCompleted
	out, err := o.encounterRepo.Update(ctx, encounters.UpdateInput{Encounter: encounter})
	if err != nil {
		return nil, errors.Wrap(err, "failed to complete encounter")
	}

	slog.InfoContext(ctx, "encounter completed", "encounter_id", out.Encounter.ID)
	return &CompleteEncounterOutput{Encounter: out.Encounter}, nil
}

func (o *orchestrator) CloneEncounter(ctx context.Context, input *CloneEncounterInput) (*CloneEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	name := strings.TrimSpace(input.NewName)
	if name == "" {
		return nil, errors.InvalidArgument(errNameRequired)
	}

	source, err := o.load(ctx, input.EncounterID)
	if err != nil {
		return nil, err
	}

	clone := source.Clone()
	clone.ID = ""
	clone.Name = name
	clone.Description = fmt.Sprintf("Cloned from %s", source.Name)
	clone.GameSessionID = ""
	clone.Status = entities.EncounterStatusDraft
	clone.RecomputeStatus()
	if clone.VictoryConditions == nil {
		clone.VictoryConditions = []entities.VictoryCondition{}
	}
	if clone.OptionalRules == nil {
		clone.OptionalRules = []string{}
	}

	out, err := o.encounterRepo.Create(ctx, encounters.CreateInput{Encounter: clone})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clone encounter")
	}

	slog.InfoContext(ctx, "encounter cloned",
		"encounter_id", out.Encounter.ID,
		"source_id", source.ID)

	return &CloneEncounterOutput{Encounter: out.Encounter}, nil
}
