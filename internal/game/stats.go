package game

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Stat is one of the six battle stats. It indexes StatTable.
type Stat int

const (
	HP Stat = iota
	Attack
	SpecialAttack
	Defense
	SpecialDefense
	Speed

	NumStats = 6
)

var statNames = [NumStats]string{"hp", "attack", "special_attack", "defense", "special_defense", "speed"}

// AllStats lists the stats in table order.
var AllStats = [NumStats]Stat{HP, Attack, SpecialAttack, Defense, SpecialDefense, Speed}

func (s Stat) String() string {
	if s < 0 || int(s) >= NumStats {
		return "stat(" + strconv.Itoa(int(s)) + ")"
	}
	return statNames[s]
}

// ParseStat accepts snake_case or kebab-case stat names ("special-attack").
func ParseStat(name string) (Stat, bool) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, sn := range statNames {
		if sn == n {
			return Stat(i), true
		}
	}
	return 0, false
}

// StatTable holds one integer per Stat. It is stored in a single text column
// as six comma-separated integers.
type StatTable [NumStats]int

// Uniform returns a table with every stat set to v.
func Uniform(v int) StatTable {
	var t StatTable
	for i := range t {
		t[i] = v
	}
	return t
}

// Get returns the value for s.
func (t StatTable) Get(s Stat) int { return t[s] }

// Value implements driver.Valuer.
func (t StatTable) Value() (driver.Value, error) {
	parts := make([]string, NumStats)
	for i, v := range t {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner.
func (t *StatTable) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*t = StatTable{}
		return nil
	default:
		return fmt.Errorf("stat table: unsupported column type %T", src)
	}
	parts := strings.Split(s, ",")
	if len(parts) != NumStats {
		return fmt.Errorf("stat table: expected %d values, got %d", NumStats, len(parts))
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("stat table: %w", err)
		}
		t[i] = n
	}
	return nil
}
