package engine

import "github.com/stefank0/djangomon/internal/game"

// execMove performs one attack: accuracy check, damage roll, then recoil and
// drain on the actor. An actor fainted by its own recoil is not healed.
func (e *Engine) execMove(bc *battleContext, plan *plannedAction, rng Rand) {
	actor, target, m := plan.actor, plan.target, plan.move
	ev := game.TurnEvent{
		Turn:        bc.turn,
		Slot:        actor.slot,
		ActorID:     actor.c.ID,
		Actor:       actor.c.Label(),
		Target:      target.c.Label(),
		Move:        m.Name,
		DamageClass: m.DamageClass,
	}
	if rng.Float64()*100 < m.Accuracy {
		ev.Hit = true
		ev.Roll = MinRoll + rng.Intn(numRolls)
		dealt := min(e.TrueDamage(actor.c, target.c, m, ev.Roll), target.state.CurrentHP)
		target.state.CurrentHP -= dealt
		ev.Damage = dealt

		if r := RecoilDamage(dealt, m); r > 0 {
			actor.state.CurrentHP = max(actor.state.CurrentHP-r, 0)
			ev.Recoil = r
		}
		if d := DrainRecovery(dealt, m); d > 0 && actor.state.CurrentHP > 0 {
			healed := min(d, actor.state.MaxHP-actor.state.CurrentHP)
			actor.state.CurrentHP += healed
			ev.Drain = healed
		}
	}
	ev.ActorHP = actor.state.CurrentHP
	ev.TargetHP = target.state.CurrentHP
	bc.add(ev)
}
