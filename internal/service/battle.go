package service

import (
	"errors"
	"fmt"

	"github.com/stefank0/djangomon/internal/constants"
	"github.com/stefank0/djangomon/internal/engine"
	"github.com/stefank0/djangomon/internal/game"
	"github.com/stefank0/djangomon/internal/logging"
)

var (
	ErrCombatantNotFound = errors.New("combatant not found")
	ErrSameCombatant     = errors.New("a combatant cannot battle itself")
)

type battleRepo interface {
	GetCombatantsByIDs(ids []uint) ([]game.Combatant, error)
	SaveBattleLogs(logs []*game.BattleLog) error
}

// NewBattleLog converts an outcome into its persisted form, including the
// per-side move usage counts.
func NewBattleLog(out *game.BattleOutcome, seed int64) *game.BattleLog {
	l := &game.BattleLog{
		WinnerID: out.Winner.ID,
		LoserID:  out.Loser.ID,
		Report:   out.Report(),
		Turns:    out.Turns,
		Seed:     seed,
	}
	counts := out.MoveCounts()
	// Winner first, then loser, moves in the order they were first used.
	sides := []struct {
		slot int
		id   uint
	}{{out.WinnerSlot, out.Winner.ID}, {1 - out.WinnerSlot, out.Loser.ID}}
	for _, side := range sides {
		seen := make(map[string]bool)
		for _, ev := range out.Events {
			if ev.Slot != side.slot || seen[ev.Move] {
				continue
			}
			seen[ev.Move] = true
			l.MoveUsages = append(l.MoveUsages, game.MoveUsage{CombatantID: side.id, MoveName: ev.Move, Count: counts[side.slot][ev.Move]})
		}
	}
	return l
}

// loadPair fetches two distinct combatants, in argument order.
func loadPair(repo interface {
	GetCombatantsByIDs(ids []uint) ([]game.Combatant, error)
}, aID, bID uint) (*game.Combatant, *game.Combatant, error) {
	if aID == bID {
		return nil, nil, ErrSameCombatant
	}
	cs, err := repo.GetCombatantsByIDs([]uint{aID, bID})
	if err != nil {
		return nil, nil, err
	}
	var a, b *game.Combatant
	for i := range cs {
		switch cs[i].ID {
		case aID:
			a = &cs[i]
		case bID:
			b = &cs[i]
		}
	}
	if a == nil {
		return nil, nil, fmt.Errorf("%w: %d", ErrCombatantNotFound, aID)
	}
	if b == nil {
		return nil, nil, fmt.Errorf("%w: %d", ErrCombatantNotFound, bID)
	}
	return a, b, nil
}

// SimulateBattle resolves one battle between two stored combatants with the
// given seed and persists its log. Stalemates are returned as errors
// wrapping game.ErrStalemate and are not persisted.
func SimulateBattle(repo battleRepo, eng *engine.Engine, aID, bID uint, seed int64) (*game.BattleLog, error) {
	a, b, err := loadPair(repo, aID, bID)
	if err != nil {
		return nil, err
	}
	out, err := eng.ResolveBattle(a, b, engine.NewRand(seed))
	if err != nil {
		return nil, err
	}
	l := NewBattleLog(out, seed)
	if err := repo.SaveBattleLogs([]*game.BattleLog{l}); err != nil {
		return nil, err
	}
	l.Winner = *out.Winner
	l.Loser = *out.Loser
	logging.Info("battle resolved", logging.Fields{
		constants.LogFieldBattleID: l.ID,
		constants.LogFieldWinner:   out.Winner.Label(),
		constants.LogFieldLoser:    out.Loser.Label(),
		constants.LogFieldTurns:    out.Turns,
		constants.LogFieldSeed:     seed,
	})
	return l, nil
}
