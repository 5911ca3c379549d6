package engine

// executePlans runs the planned actions in order. It reports whether the
// battle ended.
func (e *Engine) executePlans(bc *battleContext, plans []plannedAction, rng Rand) bool {
	before := [2]int{bc.fighters[0].state.CurrentHP, bc.fighters[1].state.CurrentHP}
	for i := range plans {
		plan := &plans[i]
		if plan.actor.state.Fainted() || plan.target.state.Fainted() {
			continue
		}
		e.execMove(bc, plan, rng)
		if plan.target.state.Fainted() || plan.actor.state.Fainted() {
			bc.finish(plan.actor, plan.target)
			return true
		}
	}
	if before[0] == bc.fighters[0].state.CurrentHP && before[1] == bc.fighters[1].state.CurrentHP {
		bc.idle++
	} else {
		bc.idle = 0
	}
	return false
}
