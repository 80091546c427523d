package entities

import (
	"slices"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeEncounter is the core.Entity type for encounters
const EntityTypeEncounter = "encounter"

// EncounterStatus is the lifecycle state of an encounter
type EncounterStatus string

// Encounter statuses
const (
	EncounterStatusDraft     EncounterStatus = "draft"
	EncounterStatusReady     EncounterStatus = "ready"
	EncounterStatusLaunched  EncounterStatus = "launched"
	EncounterStatusCompleted EncounterStatus = "completed"
)

// AllEncounterStatuses lists every status in lifecycle order
var AllEncounterStatuses = []EncounterStatus{
	EncounterStatusDraft,
	EncounterStatusReady,
	EncounterStatusLaunched,
	EncounterStatusCompleted,
}

// ScenarioTemplateType names a preset scenario
type ScenarioTemplateType string

// Scenario templates
const (
	ScenarioTemplateDuel     ScenarioTemplateType = "duel"
	ScenarioTemplateSkirmish ScenarioTemplateType = "skirmish"
	ScenarioTemplateBattle   ScenarioTemplateType = "battle"
)

// TerrainType is the dominant terrain of the map
type TerrainType string

// Terrain types
const (
	TerrainClear      TerrainType = "clear"
	TerrainLightWoods TerrainType = "light_woods"
	TerrainHeavyWoods TerrainType = "heavy_woods"
	TerrainRough      TerrainType = "rough"
	TerrainUrban      TerrainType = "urban"
	TerrainMixed      TerrainType = "mixed"
)

// DeploymentZone is the map edge a side deploys from
type DeploymentZone string

// Deployment zones
const (
	DeploymentZoneNorth  DeploymentZone = "north"
	DeploymentZoneSouth  DeploymentZone = "south"
	DeploymentZoneEast   DeploymentZone = "east"
	DeploymentZoneWest   DeploymentZone = "west"
	DeploymentZoneCenter DeploymentZone = "center"
)

// VictoryConditionType is the kind of win condition
type VictoryConditionType string

// Victory condition types
const (
	VictoryDestroyAll VictoryConditionType = "destroy_all"
	VictoryCripple    VictoryConditionType = "cripple"
	VictoryRetreat    VictoryConditionType = "retreat"
	VictoryTurnLimit  VictoryConditionType = "turn_limit"
	VictoryObjective  VictoryConditionType = "objective"
)

// SkillTemplate is an experience level used for presets and generated opponents
type SkillTemplate string

// Skill templates
const (
	SkillTemplateGreen   SkillTemplate = "green"
	SkillTemplateRegular SkillTemplate = "regular"
	SkillTemplateVeteran SkillTemplate = "veteran"
	SkillTemplateElite   SkillTemplate = "elite"
)

// MapConfig describes the hex map an encounter is fought on
type MapConfig struct {
	Radius                 int            `json:"radius"`
	Terrain                TerrainType    `json:"terrain"`
	PlayerDeploymentZone   DeploymentZone `json:"player_deployment_zone"`
	OpponentDeploymentZone DeploymentZone `json:"opponent_deployment_zone"`
}

// VictoryCondition is one way an encounter can be won
type VictoryCondition struct {
	Type        VictoryConditionType `json:"type"`
	TurnLimit   *int                 `json:"turn_limit,omitempty"`
	Threshold   *int                 `json:"threshold,omitempty"`
	Description string               `json:"description,omitempty"`
}

// ForceReference is a point-in-time snapshot of an assigned force
type ForceReference struct {
	ForceID   string `json:"force_id"`
	ForceName string `json:"force_name"`
	TotalBV   int    `json:"total_bv"`
	UnitCount int    `json:"unit_count"`
}

// OpForConfig describes a generated opponent
type OpForConfig struct {
	TargetBV           *int          `json:"target_bv,omitempty"`
	TargetBVPercent    *int          `json:"target_bv_percent,omitempty"`
	PilotSkillTemplate SkillTemplate `json:"pilot_skill_template"`
	Faction            string        `json:"faction,omitempty"`
}

// Encounter is a configured battle between a player force and an opponent
type Encounter struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	Description       string                `json:"description,omitempty"`
	Status            EncounterStatus       `json:"status"`
	Template          *ScenarioTemplateType `json:"template,omitempty"`
	MapConfig         MapConfig             `json:"map_config"`
	VictoryConditions []VictoryCondition    `json:"victory_conditions"`
	OptionalRules     []string              `json:"optional_rules"`
	PlayerForce       *ForceReference       `json:"player_force,omitempty"`
	OpponentForce     *ForceReference       `json:"opponent_force,omitempty"`
	OpForConfig       *OpForConfig          `json:"opfor_config,omitempty"`
	GameSessionID     string                `json:"game_session_id,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

var _ core.Entity = (*Encounter)(nil)

// GetID returns the encounter ID
func (e *Encounter) GetID() string {
	return e.ID
}

// GetType returns the entity type
func (e *Encounter) GetType() string {
	return EntityTypeEncounter
}

// IsFrozen reports whether the encounter no longer accepts configuration changes
func (e *Encounter) IsFrozen() bool {
	return e.Status == EncounterStatusLaunched || e.Status == EncounterStatusCompleted
}

// HasOpponent reports whether either an explicit force or a generated config is present
func (e *Encounter) HasOpponent() bool {
	return e.OpponentForce != nil || e.OpForConfig != nil
}

// IsReady evaluates the readiness predicate
func (e *Encounter) IsReady() bool {
	return e.PlayerForce != nil && e.HasOpponent() && len(e.VictoryConditions) > 0
}

// RecomputeStatus moves a draft/ready encounter to the status its
// configuration implies. Frozen encounters are left alone.
func (e *Encounter) RecomputeStatus() {
	if e.IsFrozen() {
		return
	}
	if e.IsReady() {
		e.Status = EncounterStatusReady
		return
	}
	e.Status = EncounterStatusDraft
}

// Clone returns a deep copy
func (e *Encounter) Clone() *Encounter {
	if e == nil {
		return nil
	}
	out := *e
	if e.Template != nil {
		t := *e.Template
		out.Template = &t
	}
	out.VictoryConditions = CloneVictoryConditions(e.VictoryConditions)
	out.OptionalRules = slices.Clone(e.OptionalRules)
	if e.PlayerForce != nil {
		pf := *e.PlayerForce
		out.PlayerForce = &pf
	}
	if e.OpponentForce != nil {
		of := *e.OpponentForce
		out.OpponentForce = &of
	}
	out.OpForConfig = e.OpForConfig.Clone()
	return &out
}

func (vc VictoryCondition) clone() VictoryCondition {
	out := vc
	if vc.TurnLimit != nil {
		v := *vc.TurnLimit
		out.TurnLimit = &v
	}
	if vc.Threshold != nil {
		v := *vc.Threshold
		out.Threshold = &v
	}
	return out
}

// CloneVictoryConditions deep copies a list of conditions
func CloneVictoryConditions(in []VictoryCondition) []VictoryCondition {
	if in == nil {
		return nil
	}
	out := make([]VictoryCondition, len(in))
	for i, vc := range in {
		out[i] = vc.clone()
	}
	return out
}

// Clone returns a deep copy
func (c *OpForConfig) Clone() *OpForConfig {
	if c == nil {
		return nil
	}
	out := *c
	if c.TargetBV != nil {
		v := *c.TargetBV
		out.TargetBV = &v
	}
	if c.TargetBVPercent != nil {
		v := *c.TargetBVPercent
		out.TargetBVPercent = &v
	}
	return &out
}
