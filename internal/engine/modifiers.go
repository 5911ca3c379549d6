package engine

import "github.com/stefank0/djangomon/internal/game"

// EffectiveStat derives a battle stat from base stat, variances, level and
// nature. Every division truncates, in this order.
func EffectiveStat(c *game.Combatant, s game.Stat) int {
	base := ((2*c.Species.BaseStats[s]+c.IV[s]+c.EV[s]/4)*c.Level)/100 + 5
	v := base * c.Nature.ModifierPercent(s) / 100
	if s == game.HP {
		v += 5 + c.Level
	}
	return v
}

// EffectiveStats returns all six effective stats.
func EffectiveStats(c *game.Combatant) game.StatTable {
	var t game.StatTable
	for _, s := range game.AllStats {
		t[s] = EffectiveStat(c, s)
	}
	return t
}

// MaxHP is the effective HP stat.
func MaxHP(c *game.Combatant) int {
	return EffectiveStat(c, game.HP)
}

func speedOf(c *game.Combatant) int {
	return EffectiveStat(c, game.Speed)
}
