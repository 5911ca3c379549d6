package engine

import (
	"github.com/stefank0/djangomon/internal/game"
)

type moveClass struct {
	priority int
	accuracy float64
	drain    int
	recoil   int
}

// ReduceMoves keeps, for every (priority, accuracy, drain, recoil) class of
// the attacker's moves, the one with the highest MaxDamage against the
// defender. Ties keep the earlier move; output follows first appearance.
func (e *Engine) ReduceMoves(attacker, defender *game.Combatant) []game.Move {
	index := make(map[moveClass]int, len(attacker.Moves))
	out := make([]game.Move, 0, len(attacker.Moves))
	best := make([]int, 0, len(attacker.Moves))
	for i := range attacker.Moves {
		m := &attacker.Moves[i]
		k := moveClass{priority: m.Priority, accuracy: m.Accuracy, drain: m.Drain, recoil: m.Recoil}
		d := e.MaxDamage(attacker, defender, m)
		if j, ok := index[k]; ok {
			if d > best[j] {
				out[j] = *m
				best[j] = d
			}
			continue
		}
		index[k] = len(out)
		out = append(out, *m)
		best = append(best, d)
	}
	return out
}

// firstChance is the probability that a's action precedes b's.
func firstChance(a Side, moveA *game.Move, b Side, moveB *game.Move) float64 {
	switch actionOrder(moveA, speedOf(a.Combatant), moveB, speedOf(b.Combatant)) {
	case 1:
		return 1
	case -1:
		return 0
	}
	return 0.5
}

// combine folds the two distributions into a's win probability. A tie on the
// faint turn goes to the side acting first; both surviving the horizon counts
// for neither side.
func combine(kill, death FaintDistribution, first float64) float64 {
	win := 0.0
	for i := 1; i < len(kill.PDF); i++ {
		p := kill.PDF[i]
		if p == 0 {
			continue
		}
		win += p * (death.After(i) + death.PDF[i]*first)
	}
	switch {
	case win < 0:
		return 0
	case win > 1:
		return 1
	}
	return win
}

// WinProbability is the chance that a, repeating moveA, faints b before b,
// repeating moveB, faints a.
func (e *Engine) WinProbability(a Side, moveA *game.Move, b Side, moveB *game.Move) float64 {
	kill := e.FaintDistribution(a, moveA, b, moveB, Selecting)
	death := e.FaintDistribution(b, moveB, a, moveA, BeingAttacked)
	return combine(kill, death, firstChance(a, moveA, b, moveB))
}

// MoveScore is the evaluation of one candidate move.
type MoveScore struct {
	Move           game.Move `json:"move"`
	WorstCase      float64   `json:"worst_case"`
	ExpectedDamage float64   `json:"expected_damage"`
}

type distKey struct {
	move int
	projection
}

// distCache memoizes distributions for one evaluation; most opponent moves
// project no drain or recoil and share a distribution.
type distCache struct {
	e     *Engine
	att   Side
	def   Side
	moves []game.Move
	pmfs  map[int]DamagePMF
	dists map[distKey]FaintDistribution
}

func newDistCache(e *Engine, att, def Side, moves []game.Move) *distCache {
	return &distCache{e: e, att: att, def: def, moves: moves, pmfs: map[int]DamagePMF{}, dists: map[distKey]FaintDistribution{}}
}

func (c *distCache) get(i int, defMove *game.Move, p Perspective) FaintDistribution {
	k := distKey{move: i, projection: c.e.project(c.att, c.def, defMove, p)}
	if d, ok := c.dists[k]; ok {
		return d
	}
	pmf, ok := c.pmfs[i]
	if !ok {
		pmf = c.e.TurnPMF(c.att.Combatant, c.def.Combatant, &c.moves[i])
		c.pmfs[i] = pmf
	}
	d := c.e.faintDistribution(pmf, c.def, k.projection)
	c.dists[k] = d
	return d
}

// Evaluate scores each of self's reduced moves by its worst-case win
// probability over the opponent's reduced moves.
func (e *Engine) Evaluate(self, opponent Side) ([]MoveScore, error) {
	if err := requireMoves(self.Combatant); err != nil {
		return nil, err
	}
	if err := requireMoves(opponent.Combatant); err != nil {
		return nil, err
	}
	mine := e.ReduceMoves(self.Combatant, opponent.Combatant)
	theirs := e.ReduceMoves(opponent.Combatant, self.Combatant)

	kills := newDistCache(e, self, opponent, mine)
	deaths := newDistCache(e, opponent, self, theirs)

	scores := make([]MoveScore, 0, len(mine))
	for i := range mine {
		worst := 1.0
		for j := range theirs {
			kill := kills.get(i, &theirs[j], Selecting)
			death := deaths.get(j, &mine[i], BeingAttacked)
			w := combine(kill, death, firstChance(self, &mine[i], opponent, &theirs[j]))
			if w < worst {
				worst = w
			}
		}
		scores = append(scores, MoveScore{
			Move:           mine[i],
			WorstCase:      worst,
			ExpectedDamage: e.ExpectedDamage(self.Combatant, opponent.Combatant, &mine[i]),
		})
	}
	return scores, nil
}

const scoreEpsilon = 1e-12

// SelectMove returns the move with the best worst-case win probability.
// Ties go to higher expected damage, then to the earlier move.
func (e *Engine) SelectMove(self, opponent Side) (game.Move, error) {
	scores, err := e.Evaluate(self, opponent)
	if err != nil {
		return game.Move{}, err
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		s, b := scores[i], scores[best]
		if s.WorstCase > b.WorstCase+scoreEpsilon ||
			(s.WorstCase > b.WorstCase-scoreEpsilon && s.ExpectedDamage > b.ExpectedDamage+scoreEpsilon) {
			best = i
		}
	}
	return scores[best].Move, nil
}
