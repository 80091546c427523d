package encounter

import (
	"github.com/KirkDiggler/mech-api/internal/entities"
)

// BVImbalanceRatio is the larger-to-smaller BV ratio above which
// validation warns about a lopsided match
const BVImbalanceRatio = 1.5

type scenarioTemplate struct {
	mapConfig         entities.MapConfig
	victoryConditions []entities.VictoryCondition
}

func intPtr(v int) *int {
	return &v
}

// DefaultMapConfig is used when an encounter is created without a template
func DefaultMapConfig() entities.MapConfig {
	return entities.MapConfig{
		Radius:                 6,
		Terrain:                entities.TerrainClear,
		PlayerDeploymentZone:   entities.DeploymentZoneSouth,
		OpponentDeploymentZone: entities.DeploymentZoneNorth,
	}
}

func templateMap(radius int, terrain entities.TerrainType) entities.MapConfig {
	cfg := DefaultMapConfig()
	cfg.Radius = radius
	cfg.Terrain = terrain
	return cfg
}

func destroyAll() entities.VictoryCondition {
	return entities.VictoryCondition{
		Type:        entities.VictoryDestroyAll,
		Description: "Destroy all enemy units",
	}
}

func turnLimit(turns int) entities.VictoryCondition {
	return entities.VictoryCondition{
		Type:        entities.VictoryTurnLimit,
		TurnLimit:   intPtr(turns),
		Description: "Hold the field until the turn limit",
	}
}

func scenarioTemplates() map[entities.ScenarioTemplateType]scenarioTemplate {
	return map[entities.ScenarioTemplateType]scenarioTemplate{
		entities.ScenarioTemplateDuel: {
			mapConfig:         templateMap(5, entities.TerrainClear),
			victoryConditions: []entities.VictoryCondition{destroyAll()},
		},
		entities.ScenarioTemplateSkirmish: {
			mapConfig:         templateMap(8, entities.TerrainLightWoods),
			victoryConditions: []entities.VictoryCondition{destroyAll(), turnLimit(10)},
		},
		entities.ScenarioTemplateBattle: {
			mapConfig: templateMap(12, entities.TerrainMixed),
			victoryConditions: []entities.VictoryCondition{
				destroyAll(),
				turnLimit(20),
				{
					Type:        entities.VictoryCripple,
					Threshold:   intPtr(50),
					Description: "Cripple half of the enemy force",
				},
			},
		},
	}
}

// lookupTemplate returns fresh copies of a template's defaults
func lookupTemplate(t entities.ScenarioTemplateType) (scenarioTemplate, bool) {
	tmpl, ok := scenarioTemplates()[t]
	return tmpl, ok
}
