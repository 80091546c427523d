package pilot

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/mech-api/internal/errors"
)

// rollSkill draws one skill value from the shared weighted distribution.
// A d100 roll maps to r in [0,1): r<0.10 gives 3, r<0.30 gives 6,
// r<0.60 gives 5 and anything else gives 4.
func rollSkill(roller dice.Roller) (int, error) {
	roll, err := roller.Roll(100)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll skill")
	}

	switch r := float64(roll-1) / 100; {
	case r < 0.10:
		return 3, nil
	case r < 0.30:
		return 6, nil
	case r < 0.60:
		return 5, nil
	default:
		return 4, nil
	}
}
