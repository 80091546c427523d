package pilot

import (
	"github.com/KirkDiggler/mech-api/internal/entities"
)

// XP awards for a mission
const (
	MissionSurvivalXP       = 100
	KillXP                  = 50
	VictoryBonusXP          = 50
	FirstBloodBonusXP       = 25
	HigherBVOpponentBonusXP = 50
)

// improvementCosts is the XP needed to lower a skill by one, keyed by the
// current value. Gunnery and piloting share the curve. There is no entry
// for MinSkillValue.
var improvementCosts = map[int]int{
	8: 50,
	7: 75,
	6: 100,
	5: 150,
	4: 200,
	3: 300,
	2: 400,
	1: 600,
}

// ImprovementCost returns the cost to improve a skill from its current
// value, or nil when the skill is already at the minimum.
func ImprovementCost(current int) *int {
	if current <= entities.MinSkillValue {
		return nil
	}
	cost, ok := improvementCosts[current]
	if !ok {
		// values above the cap cost the same as the cap
		cost = improvementCosts[entities.MaxSkillValue]
	}
	return &cost
}

// Template is a preset for new career pilots
type Template struct {
	Skills     entities.Skills
	StartingXP int
	Rank       string
}

// Templates maps each experience level to its preset
var Templates = map[entities.SkillTemplate]Template{
	entities.SkillTemplateGreen: {
		Skills:     entities.Skills{Gunnery: 5, Piloting: 6},
		StartingXP: 0,
		Rank:       "Cadet",
	},
	entities.SkillTemplateRegular: {
		Skills:     entities.Skills{Gunnery: 4, Piloting: 5},
		StartingXP: 100,
		Rank:       "MechWarrior",
	},
	entities.SkillTemplateVeteran: {
		Skills:     entities.Skills{Gunnery: 3, Piloting: 4},
		StartingXP: 300,
		Rank:       "Sergeant",
	},
	entities.SkillTemplateElite: {
		Skills:     entities.Skills{Gunnery: 2, Piloting: 3},
		StartingXP: 600,
		Rank:       "Lieutenant",
	},
}

// MissionXP totals the award for one mission
func MissionXP(outcome entities.MissionOutcome, kills int, bonuses MissionBonuses) int {
	total := MissionSurvivalXP + kills*KillXP
	if outcome == entities.MissionOutcomeVictory {
		total += VictoryBonusXP
	}
	if bonuses.FirstBlood {
		total += FirstBloodBonusXP
	}
	if bonuses.HigherBVOpponent {
		total += HigherBVOpponentBonusXP
	}
	return total
}
