package main

import (
	"os"
	"path/filepath"

	"github.com/stefank0/djangomon/internal/catalog"
	"github.com/stefank0/djangomon/internal/config"
	"github.com/stefank0/djangomon/internal/constants"
	"github.com/stefank0/djangomon/internal/engine"
	"github.com/stefank0/djangomon/internal/logging"
	"github.com/stefank0/djangomon/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{constants.LogFieldPath: path, "hint": "create a battle_config.json with at least a 'catalog_path' pointing at the YAML catalog"})
	}
	return cfg
}

func loadCatalogOrExit(path string) *catalog.Catalog {
	cat, err := catalog.Load(path)
	if err != nil {
		logging.Fatal("Failed to load catalog", err, logging.Fields{constants.LogFieldPath: path})
	}
	logging.Info("Catalog loaded", logging.Fields{
		constants.LogFieldPath:  path,
		constants.LogFieldCount: len(cat.Combatants),
	})
	return cat
}

func createRepositoryOrExit(dbPath string, cat *catalog.Catalog) storage.Repository {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Fatal("Failed to create database directory", err, logging.Fields{constants.LogFieldPath: dir})
		}
	}
	db, err := storage.OpenAndMigrate(dbPath, cat)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldPath: dbPath})
	}
	return storage.NewSQLiteRepository(db)
}

func createEngineOrExit(repo storage.Repository, opts engine.Options) *engine.Engine {
	chart, err := storage.LoadTypeChart(repo)
	if err != nil {
		logging.Fatal("Failed to load type chart", err, nil)
	}
	return engine.New(chart, opts)
}
