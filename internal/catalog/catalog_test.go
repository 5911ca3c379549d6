package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefank0/djangomon/internal/game"
)

const small = `
types:
  - name: normal
    no_effect_against: [ghost]
  - name: ghost
    strong_against: [ghost]
    no_effect_against: [normal]
natures:
  - name: hardy
  - name: adamant
    increased: attack
    decreased: special-attack
abilities: [thick-fat]
species:
  - {number: 143, name: snorlax, types: [normal], base_stats: 50}
  - {number: 94, name: gengar, types: [ghost], base_stats: {hp: 60, attack: 65, defense: 60, special_attack: 130, special_defense: 75, speed: 110}}
moves:
  - {name: tackle, type: normal, damage_class: physical, power: 40}
  - {name: hyper-beam, type: normal, damage_class: special, power: 150, accuracy: 90}
  - {name: shadow-ball, type: ghost, damage_class: special, power: 80, nerf: 1.0, noteworthy: true}
combatants:
  - {species: snorlax, nature: adamant, ability: thick-fat, moves: [tackle, hyper-beam]}
  - {species: gengar, nature: hardy, level: 70, iv: 31, moves: [shadow-ball]}
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(small))
	require.NoError(t, err)

	require.Len(t, c.Types, 2)
	assert.Equal(t, 0.0, c.Chart.Effectiveness("normal", "ghost"))
	assert.Equal(t, 2.0, c.Chart.Effectiveness("ghost", "ghost"))

	require.Len(t, c.Species, 2)
	assert.Equal(t, game.Uniform(50), c.Species[0].BaseStats)
	assert.Equal(t, 130, c.Species[1].BaseStats[game.SpecialAttack])

	tackle := c.Move("TACKLE")
	require.NotNil(t, tackle)
	assert.Equal(t, 100.0, tackle.Accuracy)
	assert.Nil(t, tackle.Nerf)
	assert.Equal(t, DefaultNerf, c.Move("hyper-beam").NerfFactor())
	// an explicit nerf wins over the default table
	assert.Equal(t, 1.0, c.Move("shadow-ball").NerfFactor())
	assert.True(t, c.Move("shadow-ball").IsNoteworthy)

	require.Len(t, c.Combatants, 2)
	snorlax := c.Combatants[0]
	assert.Equal(t, game.DefaultLevel, snorlax.Level)
	assert.Equal(t, game.Uniform(game.DefaultIV), snorlax.IV)
	assert.Equal(t, "adamant", snorlax.Nature.Name)
	assert.Len(t, snorlax.Moves, 2)
	gengar := c.Combatants[1]
	assert.Equal(t, 70, gengar.Level)
	assert.Equal(t, game.Uniform(31), gengar.IV)
	assert.Equal(t, "", gengar.Ability.Name)
}

func TestParse_PartialStatMappingKeepsDefaults(t *testing.T) {
	doc := small + "  - {species: snorlax, nature: hardy, iv: {speed: 0}, ev: {hp: 252, defense: 252}, moves: [tackle]}\n"
	c, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, c.Combatants, 3)

	cb := c.Combatants[2]
	want := game.Uniform(game.DefaultEV)
	want[game.HP] = 252
	want[game.Defense] = 252
	assert.Equal(t, want, cb.EV)

	wantIV := game.Uniform(game.DefaultIV)
	wantIV[game.Speed] = 0
	assert.Equal(t, wantIV, cb.IV)
}

func TestParse_Rejects(t *testing.T) {
	const base = "types: [{name: normal}]\nnatures: [{name: hardy}]\n"
	const one = "species:\n  - {name: x, types: [normal], base_stats: 10}\n"
	cases := []struct {
		name string
		doc  string
	}{
		{"no types", "natures: [{name: hardy}]"},
		{"unknown relation", "types:\n  - {name: normal, weak_against: [rock]}\n"},
		{"duplicate type", "types:\n  - {name: normal}\n  - {name: Normal}\n"},
		{"unknown stat", base + "species:\n  - {name: x, types: [normal], base_stats: {luck: 3}}\n"},
		{"zero base stat", base + "species:\n  - {name: x, types: [normal], base_stats: 0}\n"},
		{"unknown species type", base + "species:\n  - {name: x, types: [fire], base_stats: 10}\n"},
		{"accuracy above 100", base + "moves:\n  - {name: m, type: normal, damage_class: physical, power: 10, accuracy: 120}\n"},
		{"unknown damage class", base + "moves:\n  - {name: m, type: normal, damage_class: magic}\n"},
		{"unknown move", base + one + "combatants:\n  - {species: x, nature: hardy, moves: [splash]}\n"},
		{"unknown nature", base + one + "combatants:\n  - {species: x, nature: lonely}\n"},
		{"level above 100", base + one + "combatants:\n  - {species: x, nature: hardy, level: 101}\n"},
		{"unknown evolution", base + "species:\n  - {name: x, types: [normal], base_stats: 10, evolves_from: y}\n"},
		{"nature modifies hp", "types: [{name: normal}]\nnatures: [{name: odd, increased: hp}]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, game.ErrInvalidConfiguration)
		})
	}
}

func TestLoad_ShippedCatalog(t *testing.T) {
	c, err := Load("../../data/catalog.yaml")
	require.NoError(t, err)
	assert.Len(t, c.Types, 17)
	assert.NotEmpty(t, c.Combatants)
	assert.Equal(t, 4.0, c.Chart.Against("ground", game.Species{Type1: "fire", Type2: "steel"}))
	assert.Equal(t, 0.0, c.Chart.Against("normal", game.Species{Type1: "ghost", Type2: "poison"}))
	assert.Equal(t, DefaultNerf, c.Move("future-sight").NerfFactor())

	for _, cb := range c.Combatants {
		if cb.Species.Name != "snorlax" || cb.Level != 30 {
			continue
		}
		assert.Equal(t, 252, cb.EV[game.HP])
		assert.Equal(t, game.DefaultEV, cb.EV[game.Attack])
		assert.Equal(t, game.DefaultEV, cb.EV[game.Speed])
	}
}
