package game

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Type is an elemental type. The three relation sets are directed: a type
// listed in StrongAgainst takes double damage from this type.
type Type struct {
	gorm.Model
	Name            string  `json:"name" gorm:"uniqueIndex;size:16"`
	StrongAgainst   []*Type `json:"strong_against,omitempty" gorm:"many2many:type_strong_against;"`
	WeakAgainst     []*Type `json:"weak_against,omitempty" gorm:"many2many:type_weak_against;"`
	NoEffectAgainst []*Type `json:"no_effect_against,omitempty" gorm:"many2many:type_no_effect_against;"`
}

// Ability is carried by a combatant but not used by the damage model.
type Ability struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:32"`
}

// Species is the immutable template a combatant is built from.
type Species struct {
	gorm.Model
	// Number is the national index; tournaments can be limited by it.
	Number      int       `json:"number" gorm:"index"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:32"`
	Type1       string    `json:"type1" gorm:"size:16"`
	Type2       string    `json:"type2,omitempty" gorm:"size:16"`
	BaseStats   StatTable `json:"base_stats" gorm:"type:varchar(64)"`
	EvolvesFrom string    `json:"evolves_from,omitempty" gorm:"size:32"`
}

// HasType reports whether t is one of the species' types.
func (s Species) HasType(t string) bool {
	return t != "" && (s.Type1 == t || s.Type2 == t)
}

// DisplayName returns the title-cased species name ("ho-oh" -> "Ho-Oh").
func (s Species) DisplayName() string {
	return titleCase(s.Name)
}

// Nature names at most one increased and one decreased non-HP stat. Empty
// strings mean neutral.
type Nature struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex;size:16"`
	Increased string `json:"increased_stat" gorm:"size:16"`
	Decreased string `json:"decreased_stat" gorm:"size:16"`
}

// ModifierPercent returns 110, 90 or 100 for the given stat.
func (n Nature) ModifierPercent(s Stat) int {
	if s == HP {
		return 100
	}
	name := s.String()
	switch {
	case n.Increased != "" && normalizeStatName(n.Increased) == name:
		return 110
	case n.Decreased != "" && normalizeStatName(n.Decreased) == name:
		return 90
	default:
		return 100
	}
}

// DamageClass selects which attack/defense pair a move uses.
type DamageClass string

const (
	Physical DamageClass = "physical"
	Special  DamageClass = "special"
	Status   DamageClass = "status"
)

// Move is an immutable action template.
type Move struct {
	gorm.Model
	Name        string      `json:"name" gorm:"uniqueIndex;size:32"`
	Power       int         `json:"power"`
	Priority    int         `json:"priority"`
	PP          int         `json:"pp"`
	Accuracy    float64     `json:"accuracy"`
	Type        string      `json:"type" gorm:"size:16"`
	DamageClass DamageClass `json:"damage_class" gorm:"size:8"`
	Drain       int         `json:"drain"`
	Recoil      int         `json:"recoil"`
	// Nerf scales power for balancing; nil means no scaling.
	Nerf         *float64 `json:"nerf,omitempty"`
	IsNoteworthy bool     `json:"is_noteworthy"`
}

// NerfFactor returns the power scaling factor, 1.0 when unset.
func (m Move) NerfFactor() float64 {
	if m.Nerf == nil {
		return 1.0
	}
	return *m.Nerf
}

// Combatant is a leveled species instance with a fixed move set. Battle HP is
// never stored here; see BattleState.
type Combatant struct {
	gorm.Model
	SpeciesID uint      `json:"species_id"`
	Species   Species   `json:"species"`
	NatureID  uint      `json:"nature_id"`
	Nature    Nature    `json:"nature"`
	AbilityID uint      `json:"ability_id"`
	Ability   Ability   `json:"ability"`
	Level     int       `json:"level"`
	IV        StatTable `json:"iv" gorm:"type:varchar(64)"`
	EV        StatTable `json:"ev" gorm:"type:varchar(64)"`
	Moves     []Move    `json:"moves" gorm:"many2many:combatant_moves;"`
}

const (
	DefaultLevel = 50
	DefaultIV    = 15
	DefaultEV    = 20
)

// NewCombatant builds a combatant with the default level and variances.
func NewCombatant(species Species, nature Nature, ability Ability, moves []Move) Combatant {
	return Combatant{
		Species: species,
		Nature:  nature,
		Ability: ability,
		Level:   DefaultLevel,
		IV:      Uniform(DefaultIV),
		EV:      Uniform(DefaultEV),
		Moves:   moves,
	}
}

// DisplayName is the species display name.
func (c Combatant) DisplayName() string {
	return c.Species.DisplayName()
}

// Label identifies a combatant in logs and transcripts ("Snorlax#12").
func (c Combatant) Label() string {
	if c.ID == 0 {
		return c.DisplayName()
	}
	return c.DisplayName() + "#" + strconv.FormatUint(uint64(c.ID), 10)
}

// BattleState is the transient per-battle state of one combatant.
type BattleState struct {
	CombatantID uint `json:"combatant_id"`
	CurrentHP   int  `json:"current_hp"`
	MaxHP       int  `json:"max_hp"`
}

// Fainted reports whether the combatant has no HP left.
func (s BattleState) Fainted() bool { return s.CurrentHP <= 0 }

// BattleLog is the persisted record of one finished battle.
type BattleLog struct {
	gorm.Model
	WinnerID uint      `json:"winner_id" gorm:"index"`
	Winner   Combatant `json:"winner"`
	LoserID  uint      `json:"loser_id" gorm:"index"`
	Loser    Combatant `json:"loser"`
	Report   string    `json:"report" gorm:"type:text"`
	Turns    int       `json:"turns"`
	Seed     int64     `json:"seed"`
	// MoveUsages counts how often each side used each move.
	MoveUsages []MoveUsage `json:"move_usages,omitempty"`
}

// MoveUsage counts uses of one move by one combatant in one battle.
type MoveUsage struct {
	gorm.Model
	BattleLogID uint   `json:"battle_log_id" gorm:"index"`
	CombatantID uint   `json:"combatant_id" gorm:"index"`
	MoveName    string `json:"move_name" gorm:"size:32"`
	Count       int    `json:"count"`
}

func normalizeStatName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

func titleCase(s string) string {
	// A Caser keeps state, so one is created per call.
	return cases.Title(language.English).String(s)
}

// TableName keeps the plural of species stable.
func (Species) TableName() string { return "species" }
