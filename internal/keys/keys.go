package keys

import (
	"strconv"
	"strings"
)

// NormalizeName produces the canonical form of a reference-data name.
// Behavior: trims, lower-cases and replaces inner spaces and underscores
// with hyphens ("Ho Oh" -> "ho-oh"). Catalog names are stored this way.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	return strings.ReplaceAll(s, "_", "-")
}

// StandingsKey identifies the standings computation for one combatant.
func StandingsKey(combatantID uint) string {
	return "standings:" + strconv.FormatUint(uint64(combatantID), 10)
}

// MatchupKey identifies the evaluation of a against b. The order matters:
// the result is from a's point of view.
func MatchupKey(a, b uint) string {
	return "matchup:" + strconv.FormatUint(uint64(a), 10) + ":" + strconv.FormatUint(uint64(b), 10)
}
