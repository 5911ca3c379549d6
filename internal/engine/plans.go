package engine

import "github.com/stefank0/djangomon/internal/game"

// --- Planned action model ---------------------------------------------
type plannedAction struct {
	actor  *fighter
	target *fighter
	move   *game.Move
}

// actionOrder compares two actions: 1 when the first acts first, -1 when the
// second does, 0 when priority and speed are both equal.
func actionOrder(moveA *game.Move, speedA int, moveB *game.Move, speedB int) int {
	switch {
	case moveA.Priority > moveB.Priority:
		return 1
	case moveA.Priority < moveB.Priority:
		return -1
	case speedA > speedB:
		return 1
	case speedA < speedB:
		return -1
	}
	return 0
}

// buildPlans orders the chosen moves by priority, then speed, with a coin
// flip on a full tie.
func (bc *battleContext) buildPlans(m1, m2 *game.Move, rng Rand) []plannedAction {
	f1, f2 := bc.fighters[0], bc.fighters[1]
	plans := []plannedAction{
		{actor: f1, target: f2, move: m1},
		{actor: f2, target: f1, move: m2},
	}
	order := actionOrder(m1, f1.speed, m2, f2.speed)
	if order == 0 {
		if rng.Intn(2) == 0 {
			order = 1
		} else {
			order = -1
		}
	}
	if order < 0 {
		plans[0], plans[1] = plans[1], plans[0]
	}
	return plans
}
