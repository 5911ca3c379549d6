package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stefank0/djangomon/internal/engine"
	"github.com/stefank0/djangomon/internal/game"
)

var (
	tackle     = game.Move{Name: "tackle", Power: 40, Accuracy: 100, Type: "normal", DamageClass: game.Physical}
	bodySlam   = game.Move{Name: "body-slam", Power: 85, Accuracy: 100, Type: "normal", DamageClass: game.Physical, IsNoteworthy: true}
	shadowBall = game.Move{Name: "shadow-ball", Power: 80, Accuracy: 100, Type: "ghost", DamageClass: game.Special}
	growl      = game.Move{Name: "growl", Accuracy: 100, Type: "normal", DamageClass: game.Status}
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	normal := &game.Type{Name: "normal"}
	ghost := &game.Type{Name: "ghost"}
	normal.NoEffectAgainst = []*game.Type{ghost}
	ghost.NoEffectAgainst = []*game.Type{normal}
	ghost.StrongAgainst = []*game.Type{ghost}
	chart, err := game.NewTypeChart([]game.Type{*normal, *ghost})
	require.NoError(t, err)
	return engine.New(chart, engine.Options{})
}

func combatant(id uint, number int, name, typ string, base int, moves ...game.Move) game.Combatant {
	sp := game.Species{Number: number, Name: name, Type1: typ, BaseStats: game.Uniform(base)}
	c := game.NewCombatant(sp, game.Nature{Name: "hardy"}, game.Ability{}, moves)
	c.ID = id
	return c
}

func testRepo() *mockRepo {
	return &mockRepo{
		combatants: []game.Combatant{
			combatant(1, 143, "snorlax", "normal", 80, tackle, bodySlam),
			combatant(2, 94, "gengar", "ghost", 70, shadowBall),
			combatant(3, 20, "raticate", "normal", 50, tackle),
			combatant(4, 400, "bibarel", "normal", 60, tackle),
		},
		species: []game.Species{
			{Name: "munchlax"},
			{Name: "snorlax", EvolvesFrom: "munchlax"},
			{Name: "mega-snorlax", EvolvesFrom: "snorlax"},
		},
	}
}
