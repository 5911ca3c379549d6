package engine

import (
	"fmt"
	"math"

	"github.com/stefank0/djangomon/internal/game"
)

// fighter is one side of a running battle.
type fighter struct {
	c     *game.Combatant
	slot  int
	state game.BattleState
	speed int
}

func newFighter(c *game.Combatant, slot int) *fighter {
	hp := MaxHP(c)
	return &fighter{
		c:     c,
		slot:  slot,
		state: game.BattleState{CombatantID: c.ID, CurrentHP: hp, MaxHP: hp},
		speed: speedOf(c),
	}
}

func (f *fighter) side() Side { return Side{Combatant: f.c, State: f.state} }

// --- Battle context and helpers ---------------------------------------
type battleContext struct {
	fighters [2]*fighter
	turn     int
	idle     int
	header   []string
	events   []game.TurnEvent
	winner   *fighter
	loser    *fighter
}

func newBattleContext(c1, c2 *game.Combatant) *battleContext {
	return &battleContext{
		fighters: [2]*fighter{newFighter(c1, 0), newFighter(c2, 1)},
		events:   make([]game.TurnEvent, 0, 32),
	}
}

func (bc *battleContext) add(ev game.TurnEvent) { bc.events = append(bc.events, ev) }

// start writes the transcript header.
func (bc *battleContext) start() {
	a, b := bc.fighters[0], bc.fighters[1]
	bc.header = append(bc.header,
		fmt.Sprintf("%s (lv %d, %d HP) vs %s (lv %d, %d HP)",
			a.c.Label(), a.c.Level, a.state.MaxHP, b.c.Label(), b.c.Level, b.state.MaxHP),
	)
}

// finish decides the winner after the action of actor ended the battle.
// A side still standing beats a fainted one; if both fainted the side that
// did not act wins.
func (bc *battleContext) finish(actor, target *fighter) {
	if !actor.state.Fainted() && target.state.Fainted() {
		bc.winner, bc.loser = actor, target
		return
	}
	bc.winner, bc.loser = target, actor
}

func (bc *battleContext) outcome() *game.BattleOutcome {
	w := bc.winner
	left := int(math.Round(float64(w.state.CurrentHP) / float64(w.state.MaxHP) * 100))
	if left < 0 {
		left = 0
	}
	return &game.BattleOutcome{
		Winner:     bc.winner.c,
		Loser:      bc.loser.c,
		WinnerSlot: w.slot,
		Turns:      bc.turn,
		Header:     bc.header,
		Events:     bc.events,
		Final:      []string{fmt.Sprintf("%s is a winner with %d%% HP left.", w.c.Label(), left)},
	}
}
