package storage

import (
	"github.com/stefank0/djangomon/internal/game"
)

// CombatantFilter narrows combatant listings.
type CombatantFilter struct {
	// Query matches species names by substring, case-insensitively.
	Query string
	// MaxSpeciesNumber limits results to species numbers up to this value;
	// 0 means no limit.
	MaxSpeciesNumber int
}

// Record is the win/loss tally of one combatant.
type Record struct {
	CombatantID uint  `json:"combatant_id"`
	Wins        int64 `json:"wins"`
	Losses      int64 `json:"losses"`
}

// MoveCount is how often a combatant used a move over all logged battles.
type MoveCount struct {
	MoveName string `json:"move_name"`
	Count    int64  `json:"count"`
}

type Repository interface {
	// Reference data
	GetTypes() ([]game.Type, error)
	ListCombatants(f CombatantFilter) ([]game.Combatant, error)
	GetCombatantByID(id uint) (*game.Combatant, error)
	GetCombatantsByIDs(ids []uint) ([]game.Combatant, error)
	SearchMoves(query string) ([]game.Move, error)
	// GetEvolutions returns the species that evolve from the named species.
	GetEvolutions(speciesName string) ([]game.Species, error)

	// Battle logs
	SaveBattleLogs(logs []*game.BattleLog) error
	GetBattleLogByID(id uint) (*game.BattleLog, error)
	// SearchBattleLogs matches the species name of either side; an empty
	// query returns the most recent logs.
	SearchBattleLogs(species string, limit int) ([]game.BattleLog, error)
	// ClearBattleLogs removes every log and its move usages.
	ClearBattleLogs() error

	// Standings
	GetRecords() ([]Record, error)
	GetRecordByCombatantID(id uint) (Record, error)
	GetMoveUsage(combatantID uint) ([]MoveCount, error)
}
