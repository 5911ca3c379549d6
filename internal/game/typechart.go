package game

import (
	"fmt"
	"sort"
	"strings"
)

const (
	factorStrong   = 2.0
	factorWeak     = 0.5
	factorNoEffect = 0.0
)

// TypeChart is the attacking -> defending effectiveness lookup. It is
// read-only after construction and safe to share between battles.
type TypeChart struct {
	factors map[string]map[string]float64
	known   map[string]struct{}
}

// NewTypeChart builds a chart from types and their relation sets. Relations
// must point at known types and a pair may appear in one relation only.
func NewTypeChart(types []Type) (*TypeChart, error) {
	c := &TypeChart{
		factors: make(map[string]map[string]float64, len(types)),
		known:   make(map[string]struct{}, len(types)),
	}
	for _, t := range types {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("%w: type without name", ErrInvalidConfiguration)
		}
		if _, dup := c.known[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate type %q", ErrInvalidConfiguration, t.Name)
		}
		c.known[t.Name] = struct{}{}
	}
	for _, t := range types {
		row := make(map[string]float64)
		add := func(targets []*Type, factor float64) error {
			for _, o := range targets {
				if o == nil {
					continue
				}
				if _, ok := c.known[o.Name]; !ok {
					return fmt.Errorf("%w: type %q references unknown type %q", ErrInvalidConfiguration, t.Name, o.Name)
				}
				if _, dup := row[o.Name]; dup {
					return fmt.Errorf("%w: type %q lists %q in more than one relation", ErrInvalidConfiguration, t.Name, o.Name)
				}
				row[o.Name] = factor
			}
			return nil
		}
		if err := add(t.StrongAgainst, factorStrong); err != nil {
			return nil, err
		}
		if err := add(t.WeakAgainst, factorWeak); err != nil {
			return nil, err
		}
		if err := add(t.NoEffectAgainst, factorNoEffect); err != nil {
			return nil, err
		}
		c.factors[t.Name] = row
	}
	return c, nil
}

// Has reports whether the chart knows the type name.
func (c *TypeChart) Has(name string) bool {
	_, ok := c.known[name]
	return ok
}

// Names returns the known type names, sorted.
func (c *TypeChart) Names() []string {
	out := make([]string, 0, len(c.known))
	for n := range c.known {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Effectiveness returns the multiplier of an attacking type against one
// defending type; 1.0 when no relation exists.
func (c *TypeChart) Effectiveness(attacking, defending string) float64 {
	if f, ok := c.factors[attacking][defending]; ok {
		return f
	}
	return 1.0
}

// Against returns the product of Effectiveness over the species' types.
func (c *TypeChart) Against(attacking string, s Species) float64 {
	e := c.Effectiveness(attacking, s.Type1)
	if s.Type2 != "" {
		e *= c.Effectiveness(attacking, s.Type2)
	}
	return e
}
