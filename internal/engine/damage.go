package engine

import (
	"math"

	"github.com/stefank0/djangomon/internal/game"
)

const (
	MinRoll  = 85
	MaxRoll  = 100
	numRolls = MaxRoll - MinRoll + 1
)

// effectivePower applies the nerf factor, rounding half to even.
func effectivePower(m *game.Move) int {
	return int(math.RoundToEven(m.NerfFactor() * float64(m.Power)))
}

// rawDamage is the pre-roll damage, or 0 for moves that cannot deal damage.
func rawDamage(attacker, defender *game.Combatant, m *game.Move) int {
	var atk, def int
	switch m.DamageClass {
	case game.Physical:
		atk = EffectiveStat(attacker, game.Attack)
		def = EffectiveStat(defender, game.Defense)
	case game.Special:
		atk = EffectiveStat(attacker, game.SpecialAttack)
		def = EffectiveStat(defender, game.SpecialDefense)
	default:
		return 0
	}
	power := effectivePower(m)
	if power <= 0 {
		return 0
	}
	if def < 1 {
		def = 1
	}
	levelFactor := (2*attacker.Level)/5 + 2
	dmg := (levelFactor*power*atk/def)/50 + 2
	if dmg <= 0 {
		dmg = 1
	}
	return dmg
}

// applyRoll runs the roll, STAB and effectiveness steps on a raw value.
func (e *Engine) applyRoll(raw int, attacker, defender *game.Combatant, m *game.Move, roll int) int {
	if raw == 0 {
		return 0
	}
	if roll < MinRoll {
		roll = MinRoll
	} else if roll > MaxRoll {
		roll = MaxRoll
	}
	dmg := raw * roll / 100
	if attacker.Species.HasType(m.Type) {
		dmg = dmg * 3 / 2
	}
	return int(math.Floor(e.effectiveness(m.Type, defender.Species) * float64(dmg)))
}

// TrueDamage is the damage of a hit with the given roll (85..100).
func (e *Engine) TrueDamage(attacker, defender *game.Combatant, m *game.Move, roll int) int {
	return e.applyRoll(rawDamage(attacker, defender, m), attacker, defender, m, roll)
}

// MaxDamage is the damage of a hit with the highest roll.
func (e *Engine) MaxDamage(attacker, defender *game.Combatant, m *game.Move) int {
	return e.TrueDamage(attacker, defender, m, MaxRoll)
}

// rollTable returns the damage for every roll, lowest roll first.
func (e *Engine) rollTable(attacker, defender *game.Combatant, m *game.Move) [numRolls]int {
	var out [numRolls]int
	raw := rawDamage(attacker, defender, m)
	if raw == 0 {
		return out
	}
	for i := range out {
		out[i] = e.applyRoll(raw, attacker, defender, m, MinRoll+i)
	}
	return out
}

// ExpectedDamage averages TrueDamage over the sixteen rolls, weighted by
// accuracy. A miss contributes nothing.
func (e *Engine) ExpectedDamage(attacker, defender *game.Combatant, m *game.Move) float64 {
	hit := hitChance(m)
	if hit == 0 {
		return 0
	}
	sum := 0
	for _, d := range e.rollTable(attacker, defender, m) {
		sum += d
	}
	return hit * float64(sum) / numRolls
}

// RecoilDamage is the HP the attacker loses after dealing dealt damage.
func RecoilDamage(dealt int, m *game.Move) int {
	return dealt * m.Recoil / 100
}

// DrainRecovery is the HP the attacker regains after dealing dealt damage.
func DrainRecovery(dealt int, m *game.Move) int {
	return dealt * m.Drain / 100
}

func hitChance(m *game.Move) float64 {
	p := m.Accuracy / 100
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
