package service

import (
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/stefank0/djangomon/internal/game"
	"github.com/stefank0/djangomon/internal/storage"
)

type mockRepo struct {
	mu          sync.Mutex
	combatants  []game.Combatant
	species     []game.Species
	logs        []*game.BattleLog
	lastFilter  storage.CombatantFilter
	cleared     bool
	saveErr     error
	listStarted chan struct{}
	listGate    chan struct{}
}

func (m *mockRepo) ListCombatants(f storage.CombatantFilter) ([]game.Combatant, error) {
	if m.listStarted != nil {
		close(m.listStarted)
	}
	if m.listGate != nil {
		<-m.listGate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = f
	out := make([]game.Combatant, 0, len(m.combatants))
	for _, c := range m.combatants {
		if f.MaxSpeciesNumber > 0 && c.Species.Number > f.MaxSpeciesNumber {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockRepo) GetCombatantByID(id uint) (*game.Combatant, error) {
	for i := range m.combatants {
		if m.combatants[i].ID == id {
			c := m.combatants[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) GetCombatantsByIDs(ids []uint) ([]game.Combatant, error) {
	var out []game.Combatant
	for _, c := range m.combatants {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (m *mockRepo) GetEvolutions(name string) ([]game.Species, error) {
	var out []game.Species
	for _, s := range m.species {
		if s.EvolvesFrom == name {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepo) SaveBattleLogs(logs []*game.BattleLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, l := range logs {
		l.ID = uint(len(m.logs) + 1)
		m.logs = append(m.logs, l)
	}
	return nil
}

func (m *mockRepo) ClearBattleLogs() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = true
	m.logs = nil
	return nil
}

func (m *mockRepo) GetRecords() ([]storage.Record, error) {
	byID := map[uint]*storage.Record{}
	get := func(id uint) *storage.Record {
		if r, ok := byID[id]; ok {
			return r
		}
		r := &storage.Record{CombatantID: id}
		byID[id] = r
		return r
	}
	for _, l := range m.logs {
		get(l.WinnerID).Wins++
		get(l.LoserID).Losses++
	}
	out := make([]storage.Record, 0, len(byID))
	for _, r := range byID {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CombatantID < out[j].CombatantID })
	return out, nil
}

func (m *mockRepo) GetRecordByCombatantID(id uint) (storage.Record, error) {
	rec := storage.Record{CombatantID: id}
	for _, l := range m.logs {
		if l.WinnerID == id {
			rec.Wins++
		}
		if l.LoserID == id {
			rec.Losses++
		}
	}
	return rec, nil
}

func (m *mockRepo) GetMoveUsage(id uint) ([]storage.MoveCount, error) {
	totals := map[string]int64{}
	for _, l := range m.logs {
		for _, u := range l.MoveUsages {
			if u.CombatantID == id {
				totals[u.MoveName] += int64(u.Count)
			}
		}
	}
	out := make([]storage.MoveCount, 0, len(totals))
	for name, n := range totals {
		out = append(out, storage.MoveCount{MoveName: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].MoveName < out[j].MoveName
	})
	return out, nil
}
