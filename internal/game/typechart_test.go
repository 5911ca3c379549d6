package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testTypes() []Type {
	normal := &Type{Name: "normal"}
	fighting := &Type{Name: "fighting"}
	ghost := &Type{Name: "ghost"}
	rock := &Type{Name: "rock"}
	flying := &Type{Name: "flying"}
	fighting.StrongAgainst = []*Type{normal, rock}
	fighting.WeakAgainst = []*Type{flying}
	fighting.NoEffectAgainst = []*Type{ghost}
	normal.WeakAgainst = []*Type{rock}
	normal.NoEffectAgainst = []*Type{ghost}
	return []Type{*normal, *fighting, *ghost, *rock, *flying}
}

func TestTypeChart_Effectiveness(t *testing.T) {
	c, err := NewTypeChart(testTypes())
	require.NoError(t, err)

	assert.Equal(t, 2.0, c.Effectiveness("fighting", "normal"))
	assert.Equal(t, 0.5, c.Effectiveness("fighting", "flying"))
	assert.Equal(t, 0.0, c.Effectiveness("fighting", "ghost"))
	assert.Equal(t, 1.0, c.Effectiveness("fighting", "fighting"))
	// directions are independent
	assert.Equal(t, 1.0, c.Effectiveness("normal", "fighting"))
	assert.Equal(t, 1.0, c.Effectiveness("unknown", "normal"))
}

func TestTypeChart_AgainstDualType(t *testing.T) {
	c, err := NewTypeChart(testTypes())
	require.NoError(t, err)

	rockFlying := Species{Name: "aerodactyl", Type1: "rock", Type2: "flying"}
	assert.Equal(t, 1.0, c.Against("fighting", rockFlying))
	normalRock := Species{Name: "x", Type1: "normal", Type2: "rock"}
	assert.Equal(t, 4.0, c.Against("fighting", normalRock))
	assert.Equal(t, 0.0, c.Against("fighting", Species{Name: "y", Type1: "rock", Type2: "ghost"}))
}

func TestTypeChart_Property_Commutative(t *testing.T) {
	c, err := NewTypeChart(testTypes())
	require.NoError(t, err)
	names := c.Names()
	rapid.Check(t, func(rt *rapid.T) {
		atk := rapid.SampledFrom(names).Draw(rt, "attacking")
		t1 := rapid.SampledFrom(names).Draw(rt, "type1")
		t2 := rapid.SampledFrom(names).Draw(rt, "type2")
		a := c.Against(atk, Species{Type1: t1, Type2: t2})
		b := c.Against(atk, Species{Type1: t2, Type2: t1})
		assert.Equal(rt, a, b)
		assert.Equal(rt, c.Effectiveness(atk, t1)*c.Effectiveness(atk, t2), c.Effectiveness(atk, t2)*c.Effectiveness(atk, t1))
	})
}

func TestNewTypeChart_Rejects(t *testing.T) {
	normal := &Type{Name: "normal"}
	rock := &Type{Name: "rock"}

	conflicting := Type{Name: "fighting", StrongAgainst: []*Type{normal}, WeakAgainst: []*Type{normal}}
	_, err := NewTypeChart([]Type{*normal, *rock, conflicting})
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))

	unknown := Type{Name: "fire", StrongAgainst: []*Type{{Name: "grass"}}}
	_, err = NewTypeChart([]Type{*normal, unknown})
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))

	_, err = NewTypeChart([]Type{*normal, {Name: "normal"}})
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}
