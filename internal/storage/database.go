package storage

import (
	"fmt"

	"github.com/stefank0/djangomon/internal/catalog"
	"github.com/stefank0/djangomon/internal/game"
	"github.com/stefank0/djangomon/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite database, migrates the schema and seeds
// the reference data from cat when the database holds none yet.
func OpenAndMigrate(dataSourceName string, cat *catalog.Catalog) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Combatants may carry no ability (ID 0).
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&game.Type{}, &game.Ability{}, &game.Nature{}, &game.Species{}, &game.Move{},
		&game.Combatant{}, &game.BattleLog{}, &game.MoveUsage{},
	)
	if err != nil {
		return nil, err
	}
	if cat != nil {
		if err := seedCatalog(db, cat); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}
	return db, nil
}

// seedCatalog inserts the catalog once. An existing species table means the
// database was seeded before; the catalog is not merged into it.
func seedCatalog(db *gorm.DB, cat *catalog.Catalog) error {
	var count int64
	if err := db.Model(&game.Species{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		typeIDs, err := seedTypes(tx, cat.Types)
		if err != nil {
			return err
		}

		natures := append([]game.Nature(nil), cat.Natures...)
		abilities := append([]game.Ability(nil), cat.Abilities...)
		species := append([]game.Species(nil), cat.Species...)
		moves := append([]game.Move(nil), cat.Moves...)
		if err := createAll(tx, &natures); err != nil {
			return err
		}
		if err := createAll(tx, &abilities); err != nil {
			return err
		}
		if err := createAll(tx, &species); err != nil {
			return err
		}
		if err := createAll(tx, &moves); err != nil {
			return err
		}

		natureIDs := make(map[string]uint, len(natures))
		for _, n := range natures {
			natureIDs[n.Name] = n.ID
		}
		abilityIDs := make(map[string]uint, len(abilities))
		for _, a := range abilities {
			abilityIDs[a.Name] = a.ID
		}
		speciesIDs := make(map[string]uint, len(species))
		for _, s := range species {
			speciesIDs[s.Name] = s.ID
		}
		moveByName := make(map[string]game.Move, len(moves))
		for _, m := range moves {
			moveByName[m.Name] = m
		}

		combatants := make([]game.Combatant, 0, len(cat.Combatants))
		for _, c := range cat.Combatants {
			cb := game.Combatant{
				SpeciesID: speciesIDs[c.Species.Name],
				NatureID:  natureIDs[c.Nature.Name],
				AbilityID: abilityIDs[c.Ability.Name],
				Level:     c.Level,
				IV:        c.IV,
				EV:        c.EV,
			}
			for _, m := range c.Moves {
				cb.Moves = append(cb.Moves, moveByName[m.Name])
			}
			combatants = append(combatants, cb)
		}
		if len(combatants) > 0 {
			if err := tx.Omit("Species", "Nature", "Ability").Create(&combatants).Error; err != nil {
				return err
			}
		}
		logging.Info("catalog seeded", logging.Fields{
			"types":      len(typeIDs),
			"species":    len(species),
			"moves":      len(moves),
			"combatants": len(combatants),
		})
		return nil
	})
}

func createAll[T any](tx *gorm.DB, rows *[]T) error {
	if len(*rows) == 0 {
		return nil
	}
	return tx.Create(rows).Error
}

// seedTypes inserts the types first and their relations afterwards, since
// relations point at rows that must already exist.
func seedTypes(tx *gorm.DB, types []game.Type) (map[string]uint, error) {
	rows := make([]game.Type, len(types))
	for i, t := range types {
		rows[i] = game.Type{Name: t.Name}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]*game.Type, len(rows))
	for i := range rows {
		ids[rows[i].Name] = &rows[i]
	}
	refs := func(ts []*game.Type) []*game.Type {
		out := make([]*game.Type, 0, len(ts))
		for _, t := range ts {
			out = append(out, ids[t.Name])
		}
		return out
	}
	for _, t := range types {
		row := ids[t.Name]
		for assoc, targets := range map[string][]*game.Type{
			"StrongAgainst":   t.StrongAgainst,
			"WeakAgainst":     t.WeakAgainst,
			"NoEffectAgainst": t.NoEffectAgainst,
		} {
			if len(targets) == 0 {
				continue
			}
			if err := tx.Model(row).Association(assoc).Append(refs(targets)); err != nil {
				return nil, fmt.Errorf("type %s %s: %w", t.Name, assoc, err)
			}
		}
	}
	out := make(map[string]uint, len(rows))
	for _, r := range rows {
		out[r.Name] = r.ID
	}
	return out, nil
}

// LoadTypeChart rebuilds the effectiveness chart from the stored types.
func LoadTypeChart(repo Repository) (*game.TypeChart, error) {
	types, err := repo.GetTypes()
	if err != nil {
		return nil, err
	}
	return game.NewTypeChart(types)
}
