package encounter

import (
	"fmt"

	"github.com/KirkDiggler/mech-api/internal/entities"
)

// Validation messages
const (
	ErrEncounterNotFound    = "Encounter not found"
	ErrPlayerForceRequired  = "Player force is required"
	ErrOpponentRequired     = "Opponent force or OpFor configuration is required"
	ErrVictoryConditionsReq = "At least one victory condition is required"
)

// evaluate collects launch blockers and warnings for a stored encounter
func evaluate(e *entities.Encounter) *ValidateEncounterOutput {
	out := &ValidateEncounterOutput{
		Errors:   []string{},
		Warnings: []string{},
	}

	if e.PlayerForce == nil {
		out.Errors = append(out.Errors, ErrPlayerForceRequired)
	}
	if !e.HasOpponent() {
		out.Errors = append(out.Errors, ErrOpponentRequired)
	}
	if len(e.VictoryConditions) == 0 {
		out.Errors = append(out.Errors, ErrVictoryConditionsReq)
	}

	if e.PlayerForce != nil && e.PlayerForce.UnitCount == 0 {
		out.Warnings = append(out.Warnings, "Player force has no units")
	}
	if e.OpponentForce != nil && e.OpponentForce.UnitCount == 0 {
		out.Warnings = append(out.Warnings, "Opponent force has no units")
	}
	if e.PlayerForce != nil && e.OpponentForce != nil {
		if warning, ok := bvImbalance(e.PlayerForce.TotalBV, e.OpponentForce.TotalBV); ok {
			out.Warnings = append(out.Warnings, warning)
		}
	}
	if e.OpponentForce == nil && e.OpForConfig != nil &&
		e.OpForConfig.TargetBV == nil && e.OpForConfig.TargetBVPercent == nil {
		out.Warnings = append(out.Warnings, "OpFor configuration has no target BV")
	}

	out.Valid = len(out.Errors) == 0
	return out
}

// bvImbalance reports whether the larger BV exceeds the smaller by more
// than BVImbalanceRatio
func bvImbalance(player, opponent int) (string, bool) {
	hi, lo := max(player, opponent), min(player, opponent)
	if hi <= 0 {
		return "", false
	}
	if lo <= 0 {
		return fmt.Sprintf("BV imbalance: player %d vs opponent %d", player, opponent), true
	}

	ratio := float64(hi) / float64(lo)
	if ratio <= BVImbalanceRatio {
		return "", false
	}
	return fmt.Sprintf("BV imbalance: player %d vs opponent %d (%.2fx, threshold %.1fx)",
		player, opponent, ratio, BVImbalanceRatio), true
}
