package engine

import (
	"fmt"

	"github.com/stefank0/djangomon/internal/game"
)

// Side pairs a combatant with its current battle state.
type Side struct {
	Combatant *game.Combatant
	State     game.BattleState
}

// NewSide returns a side at full HP.
func NewSide(c *game.Combatant) Side {
	hp := MaxHP(c)
	return Side{Combatant: c, State: game.BattleState{CombatantID: c.ID, CurrentHP: hp, MaxHP: hp}}
}

func requireMoves(c *game.Combatant) error {
	if len(c.Moves) == 0 {
		return fmt.Errorf("%w: %s knows no moves", game.ErrInvalidState, c.Label())
	}
	return nil
}
