package engine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/stefank0/djangomon/internal/game"
)

const (
	stateInit     = "init"
	stateSelect   = "select_moves"
	stateResolve  = "resolve_turn"
	stateFinished = "finished"

	eventStart  = "start"
	eventChoose = "choose"
	eventNext   = "next"
	eventFinish = "finish"
)

func newBattleFSM() *fsm.FSM {
	return fsm.NewFSM(stateInit, fsm.Events{
		{Name: eventStart, Src: []string{stateInit}, Dst: stateSelect},
		{Name: eventChoose, Src: []string{stateSelect}, Dst: stateResolve},
		{Name: eventNext, Src: []string{stateResolve}, Dst: stateSelect},
		{Name: eventFinish, Src: []string{stateResolve}, Dst: stateFinished},
	}, fsm.Callbacks{})
}

// ResolveBattle runs a battle between two combatants until one faints. Both
// sides pick with SelectMove every turn. Neither combatant is modified.
func (e *Engine) ResolveBattle(c1, c2 *game.Combatant, rng Rand) (*game.BattleOutcome, error) {
	if err := requireMoves(c1); err != nil {
		return nil, err
	}
	if err := requireMoves(c2); err != nil {
		return nil, err
	}
	ctx := context.Background()
	bc := newBattleContext(c1, c2)
	sm := newBattleFSM()
	var plans []plannedAction

	for {
		var event string
		switch sm.Current() {
		case stateInit:
			bc.start()
			event = eventStart
		case stateSelect:
			if bc.turn >= e.opts.MaxTurns {
				return nil, fmt.Errorf("%w: %s vs %s after %d turns", game.ErrStalemate, c1.Label(), c2.Label(), bc.turn)
			}
			if bc.idle >= e.opts.MaxIdleTurns {
				return nil, fmt.Errorf("%w: %s vs %s, %d turns without damage", game.ErrStalemate, c1.Label(), c2.Label(), bc.idle)
			}
			bc.turn++
			f1, f2 := bc.fighters[0], bc.fighters[1]
			m1, err := e.SelectMove(f1.side(), f2.side())
			if err != nil {
				return nil, err
			}
			m2, err := e.SelectMove(f2.side(), f1.side())
			if err != nil {
				return nil, err
			}
			plans = bc.buildPlans(&m1, &m2, rng)
			event = eventChoose
		case stateResolve:
			event = eventNext
			if e.executePlans(bc, plans, rng) {
				event = eventFinish
			}
		case stateFinished:
			return bc.outcome(), nil
		}
		if err := sm.Event(ctx, event); err != nil {
			return nil, fmt.Errorf("battle state %s: %w", sm.Current(), err)
		}
	}
}
