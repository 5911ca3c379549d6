package engine

import (
	"sort"

	"github.com/stefank0/djangomon/internal/game"
)

// Perspective selects whether the attacker's own recoil is projected into a
// faint distribution. It only matters for the defender's projected HP.
type Perspective int

const (
	// Selecting projects the defender's drain only.
	Selecting Perspective = iota
	// BeingAttacked also subtracts the defender's projected recoil.
	BeingAttacked
)

// MassPoint is one value of a damage distribution.
type MassPoint struct {
	Damage int
	P      float64
}

// DamagePMF is a single-turn damage distribution sorted by damage.
type DamagePMF []MassPoint

// TurnPMF is the damage distribution of one use of m: a miss with
// probability 1-accuracy, otherwise each roll equally likely.
func (e *Engine) TurnPMF(attacker, defender *game.Combatant, m *game.Move) DamagePMF {
	hit := hitChance(m)
	mass := make(map[int]float64, numRolls+1)
	if hit < 1 {
		mass[0] += 1 - hit
	}
	if hit > 0 {
		for _, d := range e.rollTable(attacker, defender, m) {
			mass[d] += hit / numRolls
		}
	}
	pmf := make(DamagePMF, 0, len(mass))
	for d, p := range mass {
		pmf = append(pmf, MassPoint{Damage: d, P: p})
	}
	sort.Slice(pmf, func(i, j int) bool { return pmf[i].Damage < pmf[j].Damage })
	return pmf
}

// FaintDistribution gives the probability that the defender faints on each
// turn within the horizon.
type FaintDistribution struct {
	// PDF[n] is the probability of fainting exactly on turn n. PDF[0] is 0.
	PDF []float64
	// Survive is the probability of lasting the whole horizon.
	Survive float64
}

// CDF is the probability of fainting on or before turn n.
func (d FaintDistribution) CDF(n int) float64 {
	if n >= len(d.PDF) {
		n = len(d.PDF) - 1
	}
	s := 0.0
	for i := 1; i <= n; i++ {
		s += d.PDF[i]
	}
	return s
}

// After is the probability of fainting strictly after turn n, including
// surviving the horizon.
func (d FaintDistribution) After(n int) float64 {
	s := d.Survive
	for i := n + 1; i < len(d.PDF); i++ {
		s += d.PDF[i]
	}
	return s
}

// projection is the per-turn HP change the defender's own move is expected
// to cause to itself.
type projection struct {
	drain  int
	recoil int
}

func (e *Engine) project(attacker Side, defender Side, defMove *game.Move, p Perspective) projection {
	if defMove == nil {
		return projection{}
	}
	dealt := min(e.MaxDamage(defender.Combatant, attacker.Combatant, defMove), attacker.State.CurrentHP)
	pr := projection{drain: DrainRecovery(dealt, defMove)}
	if p == BeingAttacked {
		pr.recoil = RecoilDamage(dealt, defMove)
	}
	return pr
}

// FaintDistribution computes when the attacker, using m every turn, faints
// the defender. defMove is the defender's own move; its drain (and, from the
// BeingAttacked perspective, its recoil) shifts the defender's HP by one
// turn's worth before each turn after the first.
func (e *Engine) FaintDistribution(attacker Side, m *game.Move, defender Side, defMove *game.Move, p Perspective) FaintDistribution {
	return e.faintDistribution(e.TurnPMF(attacker.Combatant, defender.Combatant, m), defender, e.project(attacker, defender, defMove, p))
}

func (e *Engine) faintDistribution(single DamagePMF, defender Side, pr projection) FaintDistribution {
	h := e.opts.Horizon
	pdf := make([]float64, h+1)

	hp := defender.State.CurrentHP
	missing := max(defender.State.MaxHP-hp, 0)
	thresholds := make([]int, h+1)
	limit := 0
	for n := 1; n <= h; n++ {
		heal := min((n-1)*pr.drain, missing)
		thresholds[n] = hp + heal - (n-1)*pr.recoil
		limit = max(limit, thresholds[n])
	}
	if limit <= 0 {
		pdf[1] = 1
		return FaintDistribution{PDF: pdf}
	}

	// cum[s] is the probability that the damage total so far is s, with all
	// totals of limit or more folded into cum[limit].
	cum := make([]float64, limit+1)
	cum[0] = 1
	next := make([]float64, limit+1)
	prev := 0.0
	for n := 1; n <= h; n++ {
		clear(next)
		for s, ps := range cum {
			if ps == 0 {
				continue
			}
			for _, pt := range single {
				next[min(s+pt.Damage, limit)] += ps * pt.P
			}
		}
		cum, next = next, cum

		c := 1.0
		if t := thresholds[n]; t > 0 {
			c = 0
			for s := t; s <= limit; s++ {
				c += cum[s]
			}
		}
		if c > 1 {
			c = 1
		}
		// Drain can lift the threshold between turns; fainting is absorbing.
		if c < prev {
			c = prev
		}
		pdf[n] = c - prev
		prev = c
	}
	survive := 1 - prev
	if survive < 0 {
		survive = 0
	}
	return FaintDistribution{PDF: pdf, Survive: survive}
}
