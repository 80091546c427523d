// Package entities provides the domain types shared by repositories and orchestrators.
package entities

import (
	"slices"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Skill and wound bounds. Lower skill values are better.
const (
	MinSkillValue = 0
	MaxSkillValue = 8

	MaxWounds             = 6
	InjuredWoundThreshold = 3
)

// EntityTypePilot is the core.Entity type for pilots
const EntityTypePilot = "pilot"

// PilotType distinguishes career pilots from throwaway NPC statblocks
type PilotType string

// Pilot types
const (
	PilotTypePersistent PilotType = "persistent"
	PilotTypeStatblock  PilotType = "statblock"
)

// PilotStatus is the health/availability state of a pilot
type PilotStatus string

// Pilot statuses
const (
	PilotStatusActive  PilotStatus = "active"
	PilotStatusInjured PilotStatus = "injured"
	PilotStatusMIA     PilotStatus = "mia"
	PilotStatusKIA     PilotStatus = "kia"
)

// AllPilotStatuses lists every status in display order
var AllPilotStatuses = []PilotStatus{
	PilotStatusActive,
	PilotStatusInjured,
	PilotStatusMIA,
	PilotStatusKIA,
}

// MissionOutcome is the result of a mission from the pilot's side
type MissionOutcome string

// Mission outcomes
const (
	MissionOutcomeVictory MissionOutcome = "victory"
	MissionOutcomeDefeat  MissionOutcome = "defeat"
	MissionOutcomeDraw    MissionOutcome = "draw"
)

// Skills holds the two piloting skills
type Skills struct {
	Gunnery  int `json:"gunnery"`
	Piloting int `json:"piloting"`
}

// Identity holds the descriptive fields of a pilot
type Identity struct {
	Name        string `json:"name"`
	Callsign    string `json:"callsign,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Portrait    string `json:"portrait,omitempty"`
	Background  string `json:"background,omitempty"`
}

// PilotAbility is a special ability a pilot has acquired
type PilotAbility struct {
	AbilityID      string    `json:"ability_id"`
	AcquiredDate   time.Time `json:"acquired_date"`
	AcquiredGameID string    `json:"acquired_game_id,omitempty"`
}

// KillRecord is one confirmed kill
type KillRecord struct {
	TargetID   string    `json:"target_id"`
	TargetName string    `json:"target_name"`
	WeaponUsed string    `json:"weapon_used,omitempty"`
	Date       time.Time `json:"date"`
	GameID     string    `json:"game_id,omitempty"`
}

// MissionRecord is one completed mission in a pilot's history
type MissionRecord struct {
	GameID      string         `json:"game_id"`
	MissionName string         `json:"mission_name"`
	Date        time.Time      `json:"date"`
	Outcome     MissionOutcome `json:"outcome"`
	XPEarned    int            `json:"xp_earned"`
	Kills       int            `json:"kills"`
}

// Career tracks a persistent pilot's progression
type Career struct {
	MissionsCompleted int             `json:"missions_completed"`
	Victories         int             `json:"victories"`
	Defeats           int             `json:"defeats"`
	Draws             int             `json:"draws"`
	TotalKills        int             `json:"total_kills"`
	KillRecords       []KillRecord    `json:"kill_records"`
	MissionHistory    []MissionRecord `json:"mission_history"`
	XP                int             `json:"xp"`
	TotalXPEarned     int             `json:"total_xp_earned"`
	Rank              string          `json:"rank"`
}

// Pilot is a MechWarrior, either with a career or as an ephemeral statblock
type Pilot struct {
	ID string `json:"id"`
	Identity
	Type      PilotType      `json:"type"`
	Status    PilotStatus    `json:"status"`
	Skills    Skills         `json:"skills"`
	Wounds    int            `json:"wounds"`
	Abilities []PilotAbility `json:"abilities"`
	Career    *Career        `json:"career,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

var _ core.Entity = (*Pilot)(nil)

// GetID returns the pilot ID
func (p *Pilot) GetID() string {
	return p.ID
}

// GetType returns the entity type
func (p *Pilot) GetType() string {
	return EntityTypePilot
}

// IsPersistent reports whether the pilot has a career
func (p *Pilot) IsPersistent() bool {
	return p.Type == PilotTypePersistent
}

// IsKIA reports whether the pilot is dead
func (p *Pilot) IsKIA() bool {
	return p.Status == PilotStatusKIA
}

// HasAbility reports whether the pilot already holds the ability
func (p *Pilot) HasAbility(abilityID string) bool {
	for _, a := range p.Abilities {
		if a.AbilityID == abilityID {
			return true
		}
	}
	return false
}

// XP returns the spendable XP balance, zero for statblocks
func (p *Pilot) XP() int {
	if p.Career == nil {
		return 0
	}
	return p.Career.XP
}

// Clone returns a deep copy
func (p *Pilot) Clone() *Pilot {
	if p == nil {
		return nil
	}
	out := *p
	out.Abilities = slices.Clone(p.Abilities)
	if p.Career != nil {
		c := *p.Career
		c.KillRecords = slices.Clone(p.Career.KillRecords)
		c.MissionHistory = slices.Clone(p.Career.MissionHistory)
		out.Career = &c
	}
	return &out
}

// StatusForWounds derives the status a wound count implies. Wounds at or
// above the maximum mean death; at or above the injured threshold mean
// injured; below that the current status is kept.
func StatusForWounds(wounds int, current PilotStatus) PilotStatus {
	switch {
	case wounds >= MaxWounds:
		return PilotStatusKIA
	case wounds >= InjuredWoundThreshold:
		return PilotStatusInjured
	default:
		return current
	}
}
