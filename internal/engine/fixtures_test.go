package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/stefank0/djangomon/internal/game"
)

func testChart(t testing.TB) *game.TypeChart {
	normal := &game.Type{Name: "normal"}
	fighting := &game.Type{Name: "fighting"}
	ghost := &game.Type{Name: "ghost"}
	psychic := &game.Type{Name: "psychic"}
	fighting.StrongAgainst = []*game.Type{normal}
	fighting.NoEffectAgainst = []*game.Type{ghost}
	fighting.WeakAgainst = []*game.Type{psychic}
	normal.NoEffectAgainst = []*game.Type{ghost}
	c, err := game.NewTypeChart([]game.Type{*normal, *fighting, *ghost, *psychic})
	require.NoError(t, err)
	return c
}

func nerf(f float64) *float64 { return &f }

var (
	tackle      = game.Move{Name: "tackle", Power: 40, Accuracy: 100, Type: "normal", DamageClass: game.Physical}
	bodySlam    = game.Move{Name: "body-slam", Power: 85, Accuracy: 100, Type: "normal", DamageClass: game.Physical}
	quickAttack = game.Move{Name: "quick-attack", Power: 40, Priority: 1, Accuracy: 100, Type: "normal", DamageClass: game.Physical}
	hyperBeam   = game.Move{Name: "hyper-beam", Power: 150, Accuracy: 90, Type: "normal", DamageClass: game.Special, Nerf: nerf(0.5)}
	futureSight = game.Move{Name: "future-sight", Power: 120, Accuracy: 100, Type: "psychic", DamageClass: game.Special, Nerf: nerf(0.5)}
	lowKick     = game.Move{Name: "low-kick", Power: 60, Accuracy: 100, Type: "fighting", DamageClass: game.Physical}
	growl       = game.Move{Name: "growl", Accuracy: 100, Type: "normal", DamageClass: game.Status}
	gigaDrain   = game.Move{Name: "giga-drain", Power: 75, Accuracy: 100, Type: "normal", DamageClass: game.Special, Drain: 50}
	doubleEdge  = game.Move{Name: "double-edge", Power: 120, Accuracy: 100, Type: "normal", DamageClass: game.Physical, Recoil: 33}
)

func species(name, type1, type2 string, base int) game.Species {
	return game.Species{Name: name, Type1: type1, Type2: type2, BaseStats: game.Uniform(base)}
}

// snorlax has 65 in every non-HP stat and 120 HP at the defaults.
func snorlax(id uint, moves ...game.Move) *game.Combatant {
	c := game.NewCombatant(species("snorlax", "normal", "", 50), game.Nature{Name: "hardy"}, game.Ability{Name: "immunity"}, moves)
	c.ID = id
	return &c
}

var testTypeNames = []string{"normal", "fighting", "ghost", "psychic"}

func drawMove(rt *rapid.T, label string) game.Move {
	class := rapid.SampledFrom([]game.DamageClass{game.Physical, game.Special, game.Status}).Draw(rt, label+"-class")
	m := game.Move{
		Name:        label,
		Power:       rapid.IntRange(0, 150).Draw(rt, label+"-power"),
		Priority:    rapid.IntRange(-1, 1).Draw(rt, label+"-priority"),
		Accuracy:    float64(rapid.IntRange(0, 100).Draw(rt, label+"-accuracy")),
		Type:        rapid.SampledFrom(testTypeNames).Draw(rt, label+"-type"),
		DamageClass: class,
		Drain:       rapid.IntRange(0, 75).Draw(rt, label+"-drain"),
		Recoil:      rapid.IntRange(0, 50).Draw(rt, label+"-recoil"),
	}
	if class == game.Status {
		m.Power = 0
	}
	return m
}

func drawCombatant(rt *rapid.T, label string) *game.Combatant {
	var base game.StatTable
	for _, s := range game.AllStats {
		base[s] = rapid.IntRange(1, 150).Draw(rt, label+"-"+s.String())
	}
	sp := game.Species{Name: label, Type1: rapid.SampledFrom(testTypeNames).Draw(rt, label+"-type"), BaseStats: base}
	n := rapid.IntRange(1, 4).Draw(rt, label+"-moves")
	moves := make([]game.Move, n)
	for i := range moves {
		moves[i] = drawMove(rt, label+"-move")
	}
	c := game.NewCombatant(sp, game.Nature{Name: "hardy"}, game.Ability{}, moves)
	c.Level = rapid.IntRange(1, 100).Draw(rt, label+"-level")
	return &c
}
