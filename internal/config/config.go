package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/stefank0/djangomon/internal/constants"
	"github.com/stefank0/djangomon/internal/engine"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Path of the YAML reference catalog seeded into the database.
	CatalogPath  string `json:"catalog_path"`
	DatabasePath string `json:"database_path"`
	Engine       *struct {
		Horizon      int `json:"horizon"`
		MaxTurns     int `json:"max_turns"`
		MaxIdleTurns int `json:"max_idle_turns"`
	} `json:"engine"`
	Tournament *struct {
		Workers      int   `json:"workers"`
		Seed         int64 `json:"seed"`
		MaxSpeciesID int   `json:"max_species_id"`
	} `json:"tournament"`
}

// TournamentConfig holds the defaults for round-robin runs.
type TournamentConfig struct {
	Workers int
	Seed    int64
	// MaxSpeciesID limits entrants to species numbers up to this value; 0
	// means no limit.
	MaxSpeciesID int
}

// LoadedConfig contains everything the server and the CLI need at startup.
type LoadedConfig struct {
	ServerAddress string
	CatalogPath   string
	DatabasePath  string
	Engine        engine.Options
	Tournament    TournamentConfig
}

const (
	DefaultServerAddress = ":8080"
	DefaultDatabasePath  = "./data/battle.db"
	DefaultWorkers       = 4
	DefaultSeed          = 1
)

// LoadConfig reads the configuration file at path. It requires the key
// `catalog_path` (snake_case). BATTLE_DB overrides the database path.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := &LoadedConfig{
		ServerAddress: DefaultServerAddress,
		CatalogPath:   strings.TrimSpace(rc.CatalogPath),
		DatabasePath:  DefaultDatabasePath,
		Engine:        engine.DefaultOptions(),
		Tournament:    TournamentConfig{Workers: DefaultWorkers, Seed: DefaultSeed},
	}
	if out.CatalogPath == "" {
		return nil, fmt.Errorf("config file %s: missing 'catalog_path'", path)
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if p := strings.TrimSpace(rc.DatabasePath); p != "" {
		out.DatabasePath = p
	}
	if p := strings.TrimSpace(os.Getenv(constants.EnvDatabasePath)); p != "" {
		out.DatabasePath = p
	}

	if e := rc.Engine; e != nil {
		if e.Horizon < 0 || e.MaxTurns < 0 || e.MaxIdleTurns < 0 {
			return nil, fmt.Errorf("config file %s: engine limits must not be negative", path)
		}
		if e.Horizon > 0 {
			out.Engine.Horizon = e.Horizon
		}
		if e.MaxTurns > 0 {
			out.Engine.MaxTurns = e.MaxTurns
		}
		if e.MaxIdleTurns > 0 {
			out.Engine.MaxIdleTurns = e.MaxIdleTurns
		}
	}
	if out.Engine.MaxIdleTurns > out.Engine.MaxTurns {
		return nil, fmt.Errorf("config file %s: engine.max_idle_turns (%d) exceeds engine.max_turns (%d)",
			path, out.Engine.MaxIdleTurns, out.Engine.MaxTurns)
	}

	if t := rc.Tournament; t != nil {
		if t.Workers < 0 {
			return nil, fmt.Errorf("config file %s: tournament.workers must not be negative", path)
		}
		if t.MaxSpeciesID < 0 {
			return nil, fmt.Errorf("config file %s: tournament.max_species_id must not be negative", path)
		}
		if t.Workers > 0 {
			out.Tournament.Workers = t.Workers
		}
		if t.Seed != 0 {
			out.Tournament.Seed = t.Seed
		}
		out.Tournament.MaxSpeciesID = t.MaxSpeciesID
	}
	return out, nil
}

// Path returns the config file location, honouring BATTLE_CONFIG.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(constants.EnvConfigPath)); p != "" {
		return p
	}
	return constants.DefaultConfigPath
}
