package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/stefank0/djangomon/internal/dedupe"
	"github.com/stefank0/djangomon/internal/game"
	"github.com/stefank0/djangomon/internal/keys"
	"github.com/stefank0/djangomon/internal/storage"
)

const defaultLeaderboardLimit = 10

// Standing summarises a combatant's tournament record.
type Standing struct {
	Combatant       game.Combatant      `json:"combatant"`
	Wins            int64               `json:"wins"`
	Losses          int64               `json:"losses"`
	WinPercentage   float64             `json:"win_percentage"`
	UsedMoves       []storage.MoveCount `json:"used_moves"`
	NoteworthyMoves []string            `json:"noteworthy_moves"`
	Evolutions      []string            `json:"evolutions"`
}

// LeaderboardEntry is one row of the leaderboard.
type LeaderboardEntry struct {
	Rank          int            `json:"rank"`
	Combatant     game.Combatant `json:"combatant"`
	Wins          int64          `json:"wins"`
	Losses        int64          `json:"losses"`
	WinPercentage float64        `json:"win_percentage"`
}

type standingsRepo interface {
	GetCombatantByID(id uint) (*game.Combatant, error)
	GetRecordByCombatantID(id uint) (storage.Record, error)
	GetMoveUsage(combatantID uint) ([]storage.MoveCount, error)
	GetEvolutions(speciesName string) ([]game.Species, error)
}

type leaderboardRepo interface {
	GetRecords() ([]storage.Record, error)
	GetCombatantsByIDs(ids []uint) ([]game.Combatant, error)
}

// WinPercentage is wins over battles fought, in percent with two decimals.
// No battles yields 0.
func WinPercentage(wins, losses int64) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(total)*10000) / 100
}

// GetStandings computes the standing of one combatant. Concurrent requests
// for the same combatant share one computation.
func GetStandings(repo standingsRepo, id uint) (*Standing, error) {
	v, err, _ := dedupe.StandingsGroup.Do(keys.StandingsKey(id), func() (interface{}, error) {
		return computeStandings(repo, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Standing), nil
}

func computeStandings(repo standingsRepo, id uint) (*Standing, error) {
	c, err := repo.GetCombatantByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrCombatantNotFound, id)
		}
		return nil, err
	}
	rec, err := repo.GetRecordByCombatantID(id)
	if err != nil {
		return nil, err
	}
	used, err := repo.GetMoveUsage(id)
	if err != nil {
		return nil, err
	}
	evos, err := repo.GetEvolutions(c.Species.Name)
	if err != nil {
		return nil, err
	}
	s := &Standing{
		Combatant:       *c,
		Wins:            rec.Wins,
		Losses:          rec.Losses,
		WinPercentage:   WinPercentage(rec.Wins, rec.Losses),
		UsedMoves:       used,
		NoteworthyMoves: []string{},
		Evolutions:      []string{},
	}
	if s.UsedMoves == nil {
		s.UsedMoves = []storage.MoveCount{}
	}
	for _, m := range c.Moves {
		if m.IsNoteworthy {
			s.NoteworthyMoves = append(s.NoteworthyMoves, m.Name)
		}
	}
	for _, e := range evos {
		s.Evolutions = append(s.Evolutions, e.DisplayName())
	}
	return s, nil
}

// GetLeaderboard ranks combatants by win percentage, then wins, then ID.
func GetLeaderboard(repo leaderboardRepo, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	records, err := repo.GetRecords()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		pi := WinPercentage(records[i].Wins, records[i].Losses)
		pj := WinPercentage(records[j].Wins, records[j].Losses)
		if pi != pj {
			return pi > pj
		}
		if records[i].Wins != records[j].Wins {
			return records[i].Wins > records[j].Wins
		}
		return records[i].CombatantID < records[j].CombatantID
	})
	if len(records) > limit {
		records = records[:limit]
	}
	ids := make([]uint, len(records))
	for i, r := range records {
		ids[i] = r.CombatantID
	}
	cs, err := repo.GetCombatantsByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]game.Combatant, len(cs))
	for _, c := range cs {
		byID[c.ID] = c
	}
	out := make([]LeaderboardEntry, 0, len(records))
	for _, r := range records {
		c, ok := byID[r.CombatantID]
		if !ok {
			continue
		}
		out = append(out, LeaderboardEntry{
			Rank:          len(out) + 1,
			Combatant:     c,
			Wins:          r.Wins,
			Losses:        r.Losses,
			WinPercentage: WinPercentage(r.Wins, r.Losses),
		})
	}
	return out, nil
}
