// Package catalog loads the reference data (types, natures, abilities,
// species, moves and combatants) from a YAML document.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stefank0/djangomon/internal/game"
)

// DefaultNerf scales moves that need a recharge turn, a charge-up turn or
// land later. The battle model has none of those turns.
const DefaultNerf = 0.5

var defaultNerfed = map[string]struct{}{
	"hyper-beam":   {},
	"giga-impact":  {},
	"blast-burn":   {},
	"frenzy-plant": {},
	"hydro-cannon": {},
	"rock-wrecker": {},
	"roar-of-time": {},
	"solar-beam":   {},
	"sky-attack":   {},
	"skull-bash":   {},
	"razor-wind":   {},
	"future-sight": {},
	"doom-desire":  {},
}

type typeEntry struct {
	Name            string   `yaml:"name"`
	StrongAgainst   []string `yaml:"strong_against"`
	WeakAgainst     []string `yaml:"weak_against"`
	NoEffectAgainst []string `yaml:"no_effect_against"`
}

type natureEntry struct {
	Name      string `yaml:"name"`
	Increased string `yaml:"increased"`
	Decreased string `yaml:"decreased"`
}

type speciesEntry struct {
	Number      int        `yaml:"number"`
	Name        string     `yaml:"name"`
	Types       []string   `yaml:"types"`
	BaseStats   statValues `yaml:"base_stats"`
	EvolvesFrom string     `yaml:"evolves_from"`
}

type moveEntry struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	DamageClass string   `yaml:"damage_class"`
	Power       int      `yaml:"power"`
	Accuracy    *float64 `yaml:"accuracy"`
	Priority    int      `yaml:"priority"`
	PP          int      `yaml:"pp"`
	Drain       int      `yaml:"drain"`
	Recoil      int      `yaml:"recoil"`
	Nerf        *float64 `yaml:"nerf"`
	Noteworthy  bool     `yaml:"noteworthy"`
}

type combatantEntry struct {
	Species string      `yaml:"species"`
	Nature  string      `yaml:"nature"`
	Ability string      `yaml:"ability"`
	Level   int         `yaml:"level"`
	IV      *statValues `yaml:"iv"`
	EV      *statValues `yaml:"ev"`
	Moves   []string    `yaml:"moves"`
}

type document struct {
	Types      []typeEntry      `yaml:"types"`
	Natures    []natureEntry    `yaml:"natures"`
	Abilities  []string         `yaml:"abilities"`
	Species    []speciesEntry   `yaml:"species"`
	Moves      []moveEntry      `yaml:"moves"`
	Combatants []combatantEntry `yaml:"combatants"`
}

// statValues is either a single integer applied to every stat or a mapping
// from stat name to value.
type statValues struct {
	game.StatTable
	set [game.NumStats]bool
}

// over returns the decoded values with every stat the mapping left out
// taken from defaults.
func (s *statValues) over(defaults game.StatTable) game.StatTable {
	out := defaults
	for st, ok := range s.set {
		if ok {
			out[st] = s.StatTable[st]
		}
	}
	return out
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *statValues) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var v int
		if err := n.Decode(&v); err != nil {
			return err
		}
		s.StatTable = game.Uniform(v)
		for i := range s.set {
			s.set[i] = true
		}
		return nil
	case yaml.MappingNode:
		var m map[string]int
		if err := n.Decode(&m); err != nil {
			return err
		}
		for name, v := range m {
			st, ok := game.ParseStat(name)
			if !ok {
				return fmt.Errorf("line %d: unknown stat %q", n.Line, name)
			}
			s.StatTable[st] = v
			s.set[st] = true
		}
		return nil
	}
	return fmt.Errorf("line %d: stats must be a number or a mapping", n.Line)
}

// Catalog is validated reference data. Entities carry no database IDs.
type Catalog struct {
	Types      []game.Type
	Natures    []game.Nature
	Abilities  []game.Ability
	Species    []game.Species
	Moves      []game.Move
	Combatants []game.Combatant
	Chart      *game.TypeChart
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidConfiguration, err)
	}
	if len(doc.Types) == 0 {
		return nil, fmt.Errorf("%w: no types defined", game.ErrInvalidConfiguration)
	}

	c := &Catalog{}
	if err := c.buildTypes(doc.Types); err != nil {
		return nil, err
	}
	if err := c.buildNatures(doc.Natures); err != nil {
		return nil, err
	}
	if err := c.buildAbilities(doc.Abilities); err != nil {
		return nil, err
	}
	if err := c.buildSpecies(doc.Species); err != nil {
		return nil, err
	}
	if err := c.buildMoves(doc.Moves); err != nil {
		return nil, err
	}
	if err := c.buildCombatants(doc.Combatants); err != nil {
		return nil, err
	}
	return c, nil
}

// uniqueNames rejects empty and case-insensitively repeated names.
type uniqueNames struct {
	kind string
	seen map[string]struct{}
}

func newUniqueNames(kind string) *uniqueNames {
	return &uniqueNames{kind: kind, seen: make(map[string]struct{})}
}

func (u *uniqueNames) add(name string) error {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return fmt.Errorf("%w: %s entry missing 'name'", game.ErrInvalidConfiguration, u.kind)
	}
	if _, dup := u.seen[n]; dup {
		return fmt.Errorf("%w: duplicate %s name '%s'", game.ErrInvalidConfiguration, u.kind, name)
	}
	u.seen[n] = struct{}{}
	return nil
}

func (c *Catalog) buildTypes(entries []typeEntry) error {
	names := newUniqueNames("type")
	byName := make(map[string]*game.Type, len(entries))
	for _, e := range entries {
		if err := names.add(e.Name); err != nil {
			return err
		}
		byName[e.Name] = &game.Type{Name: e.Name}
	}
	resolve := func(owner string, refs []string) ([]*game.Type, error) {
		out := make([]*game.Type, 0, len(refs))
		for _, r := range refs {
			t, ok := byName[r]
			if !ok {
				return nil, fmt.Errorf("%w: type %q references unknown type %q", game.ErrInvalidConfiguration, owner, r)
			}
			out = append(out, t)
		}
		return out, nil
	}
	c.Types = make([]game.Type, 0, len(entries))
	for _, e := range entries {
		t := byName[e.Name]
		var err error
		if t.StrongAgainst, err = resolve(e.Name, e.StrongAgainst); err != nil {
			return err
		}
		if t.WeakAgainst, err = resolve(e.Name, e.WeakAgainst); err != nil {
			return err
		}
		if t.NoEffectAgainst, err = resolve(e.Name, e.NoEffectAgainst); err != nil {
			return err
		}
	}
	for _, e := range entries {
		c.Types = append(c.Types, *byName[e.Name])
	}
	chart, err := game.NewTypeChart(c.Types)
	if err != nil {
		return err
	}
	c.Chart = chart
	return nil
}

func (c *Catalog) buildNatures(entries []natureEntry) error {
	names := newUniqueNames("nature")
	for _, e := range entries {
		if err := names.add(e.Name); err != nil {
			return err
		}
		n := game.Nature{Name: e.Name, Increased: e.Increased, Decreased: e.Decreased}
		if err := n.Validate(); err != nil {
			return err
		}
		c.Natures = append(c.Natures, n)
	}
	return nil
}

func (c *Catalog) buildAbilities(entries []string) error {
	names := newUniqueNames("ability")
	for _, e := range entries {
		if err := names.add(e); err != nil {
			return err
		}
		c.Abilities = append(c.Abilities, game.Ability{Name: e})
	}
	return nil
}

func (c *Catalog) buildSpecies(entries []speciesEntry) error {
	names := newUniqueNames("species")
	for _, e := range entries {
		if err := names.add(e.Name); err != nil {
			return err
		}
		if len(e.Types) == 0 || len(e.Types) > 2 {
			return fmt.Errorf("%w: species %q must have one or two types", game.ErrInvalidConfiguration, e.Name)
		}
		s := game.Species{Number: e.Number, Name: e.Name, Type1: e.Types[0], BaseStats: e.BaseStats.StatTable, EvolvesFrom: e.EvolvesFrom}
		if len(e.Types) == 2 {
			s.Type2 = e.Types[1]
		}
		for _, t := range e.Types {
			if !c.Chart.Has(t) {
				return fmt.Errorf("%w: species %q has unknown type %q", game.ErrInvalidConfiguration, e.Name, t)
			}
		}
		if err := s.Validate(); err != nil {
			return err
		}
		c.Species = append(c.Species, s)
	}
	for _, s := range c.Species {
		if s.EvolvesFrom != "" && c.species(s.EvolvesFrom) == nil {
			return fmt.Errorf("%w: species %q evolves from unknown species %q", game.ErrInvalidConfiguration, s.Name, s.EvolvesFrom)
		}
	}
	return nil
}

func (c *Catalog) buildMoves(entries []moveEntry) error {
	names := newUniqueNames("move")
	for _, e := range entries {
		if err := names.add(e.Name); err != nil {
			return err
		}
		m := game.Move{
			Name:         e.Name,
			Type:         e.Type,
			DamageClass:  game.DamageClass(e.DamageClass),
			Power:        e.Power,
			Accuracy:     100,
			Priority:     e.Priority,
			PP:           e.PP,
			Drain:        e.Drain,
			Recoil:       e.Recoil,
			Nerf:         e.Nerf,
			IsNoteworthy: e.Noteworthy,
		}
		if e.Accuracy != nil {
			m.Accuracy = *e.Accuracy
		}
		if m.Nerf == nil {
			if _, ok := defaultNerfed[m.Name]; ok {
				f := DefaultNerf
				m.Nerf = &f
			}
		}
		if !c.Chart.Has(m.Type) {
			return fmt.Errorf("%w: move %q has unknown type %q", game.ErrInvalidConfiguration, e.Name, e.Type)
		}
		if err := m.Validate(); err != nil {
			return err
		}
		c.Moves = append(c.Moves, m)
	}
	return nil
}

func (c *Catalog) buildCombatants(entries []combatantEntry) error {
	for i, e := range entries {
		sp := c.species(e.Species)
		if sp == nil {
			return fmt.Errorf("%w: combatant %d has unknown species %q", game.ErrInvalidConfiguration, i, e.Species)
		}
		nat := c.nature(e.Nature)
		if nat == nil {
			return fmt.Errorf("%w: combatant %d (%s) has unknown nature %q", game.ErrInvalidConfiguration, i, e.Species, e.Nature)
		}
		var ab game.Ability
		if e.Ability != "" {
			a := c.ability(e.Ability)
			if a == nil {
				return fmt.Errorf("%w: combatant %d (%s) has unknown ability %q", game.ErrInvalidConfiguration, i, e.Species, e.Ability)
			}
			ab = *a
		}
		moves := make([]game.Move, 0, len(e.Moves))
		for _, name := range e.Moves {
			m := c.Move(name)
			if m == nil {
				return fmt.Errorf("%w: combatant %d (%s) knows unknown move %q", game.ErrInvalidConfiguration, i, e.Species, name)
			}
			moves = append(moves, *m)
		}
		cb := game.NewCombatant(*sp, *nat, ab, moves)
		if e.Level != 0 {
			cb.Level = e.Level
		}
		if e.IV != nil {
			cb.IV = e.IV.over(cb.IV)
		}
		if e.EV != nil {
			cb.EV = e.EV.over(cb.EV)
		}
		if err := cb.Validate(); err != nil {
			return err
		}
		c.Combatants = append(c.Combatants, cb)
	}
	return nil
}

func (c *Catalog) species(name string) *game.Species {
	for i := range c.Species {
		if strings.EqualFold(c.Species[i].Name, name) {
			return &c.Species[i]
		}
	}
	return nil
}

func (c *Catalog) nature(name string) *game.Nature {
	for i := range c.Natures {
		if strings.EqualFold(c.Natures[i].Name, name) {
			return &c.Natures[i]
		}
	}
	return nil
}

func (c *Catalog) ability(name string) *game.Ability {
	for i := range c.Abilities {
		if strings.EqualFold(c.Abilities[i].Name, name) {
			return &c.Abilities[i]
		}
	}
	return nil
}

// Move looks a move up by name, case-insensitively.
func (c *Catalog) Move(name string) *game.Move {
	for i := range c.Moves {
		if strings.EqualFold(c.Moves[i].Name, name) {
			return &c.Moves[i]
		}
	}
	return nil
}
