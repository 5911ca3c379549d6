package storage

import (
	"sort"
	"strings"

	"github.com/stefank0/djangomon/internal/game"
	"github.com/stefank0/djangomon/internal/keys"
	"gorm.io/gorm"
)

const defaultSearchLimit = 50

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func likePattern(q string) string {
	return "%" + keys.NormalizeName(q) + "%"
}

// withCombatant preloads everything the engine needs. Moves come back in
// catalog order.
func withCombatant(db *gorm.DB, prefix string) *gorm.DB {
	return db.
		Preload(prefix + "Species").
		Preload(prefix + "Nature").
		Preload(prefix + "Ability").
		Preload(prefix+"Moves", func(db *gorm.DB) *gorm.DB { return db.Order("moves.id") })
}

func (r *sqliteRepository) GetTypes() ([]game.Type, error) {
	var types []game.Type
	err := r.db.Preload("StrongAgainst").Preload("WeakAgainst").Preload("NoEffectAgainst").
		Order("id").Find(&types).Error
	return types, err
}

func (r *sqliteRepository) ListCombatants(f CombatantFilter) ([]game.Combatant, error) {
	species := r.db.Model(&game.Species{}).Select("id")
	if q := strings.TrimSpace(f.Query); q != "" {
		species = species.Where("lower(name) LIKE ?", likePattern(q))
	}
	if f.MaxSpeciesNumber > 0 {
		species = species.Where("number <= ?", f.MaxSpeciesNumber)
	}
	var out []game.Combatant
	err := withCombatant(r.db, "").Where("species_id IN (?)", species).Order("id").Find(&out).Error
	return out, err
}

func (r *sqliteRepository) GetCombatantByID(id uint) (*game.Combatant, error) {
	var c game.Combatant
	if err := withCombatant(r.db, "").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepository) GetCombatantsByIDs(ids []uint) ([]game.Combatant, error) {
	var out []game.Combatant
	if len(ids) == 0 {
		return out, nil
	}
	err := withCombatant(r.db, "").Where("id IN ?", ids).Order("id").Find(&out).Error
	return out, err
}

func (r *sqliteRepository) SearchMoves(query string) ([]game.Move, error) {
	var moves []game.Move
	db := r.db.Order("name")
	if q := strings.TrimSpace(query); q != "" {
		db = db.Where("lower(name) LIKE ?", likePattern(q))
	}
	err := db.Find(&moves).Error
	return moves, err
}

func (r *sqliteRepository) GetEvolutions(speciesName string) ([]game.Species, error) {
	var out []game.Species
	err := r.db.Where("lower(evolves_from) = ?", keys.NormalizeName(speciesName)).Order("number").Find(&out).Error
	return out, err
}

func (r *sqliteRepository) SaveBattleLogs(logs []*game.BattleLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, l := range logs {
			// Winner and loser rows already exist; only the foreign keys are written.
			if err := tx.Omit("Winner", "Loser").Create(l).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) GetBattleLogByID(id uint) (*game.BattleLog, error) {
	var l game.BattleLog
	db := withCombatant(r.db, "Winner.")
	db = withCombatant(db, "Loser.")
	if err := db.Preload("MoveUsages").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *sqliteRepository) SearchBattleLogs(species string, limit int) ([]game.BattleLog, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	db := r.db.Preload("Winner.Species").Preload("Loser.Species").Order("id DESC").Limit(limit)
	if q := strings.TrimSpace(species); q != "" {
		ids := r.db.Model(&game.Combatant{}).Select("id").Where("species_id IN (?)",
			r.db.Model(&game.Species{}).Select("id").Where("lower(name) LIKE ?", likePattern(q)))
		db = db.Where("winner_id IN (?) OR loser_id IN (?)", ids, ids)
	}
	var logs []game.BattleLog
	err := db.Find(&logs).Error
	return logs, err
}

func (r *sqliteRepository) ClearBattleLogs() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&game.MoveUsage{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&game.BattleLog{}).Error
	})
}

type idCount struct {
	ID uint
	N  int64
}

func (r *sqliteRepository) countBy(column string) ([]idCount, error) {
	var rows []idCount
	err := r.db.Model(&game.BattleLog{}).Select(column + " AS id, COUNT(*) AS n").Group(column).Scan(&rows).Error
	return rows, err
}

// GetRecords returns the tally of every combatant with at least one logged
// battle, ordered by combatant ID.
func (r *sqliteRepository) GetRecords() ([]Record, error) {
	wins, err := r.countBy("winner_id")
	if err != nil {
		return nil, err
	}
	losses, err := r.countBy("loser_id")
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*Record)
	get := func(id uint) *Record {
		rec, ok := byID[id]
		if !ok {
			rec = &Record{CombatantID: id}
			byID[id] = rec
		}
		return rec
	}
	for _, w := range wins {
		get(w.ID).Wins = w.N
	}
	for _, l := range losses {
		get(l.ID).Losses = l.N
	}
	out := make([]Record, 0, len(byID))
	for _, rec := range byID {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CombatantID < out[j].CombatantID })
	return out, nil
}

func (r *sqliteRepository) GetRecordByCombatantID(id uint) (Record, error) {
	rec := Record{CombatantID: id}
	if err := r.db.Model(&game.BattleLog{}).Where("winner_id = ?", id).Count(&rec.Wins).Error; err != nil {
		return rec, err
	}
	if err := r.db.Model(&game.BattleLog{}).Where("loser_id = ?", id).Count(&rec.Losses).Error; err != nil {
		return rec, err
	}
	return rec, nil
}

// GetMoveUsage sums move uses over all battles, most used first.
func (r *sqliteRepository) GetMoveUsage(combatantID uint) ([]MoveCount, error) {
	var out []MoveCount
	err := r.db.Model(&game.MoveUsage{}).
		Select("move_name, SUM(count) AS count").
		Where("combatant_id = ?", combatantID).
		Group("move_name").
		Order("count DESC").
		Order("move_name").
		Scan(&out).Error
	return out, err
}
