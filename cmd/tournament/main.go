package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/stefank0/djangomon/internal/catalog"
	"github.com/stefank0/djangomon/internal/config"
	"github.com/stefank0/djangomon/internal/constants"
	"github.com/stefank0/djangomon/internal/engine"
	"github.com/stefank0/djangomon/internal/logging"
	"github.com/stefank0/djangomon/internal/service"
	"github.com/stefank0/djangomon/internal/storage"
)

// progress logs roughly every tenth of the tournament.
type progress struct {
	every int
}

func (p *progress) Publish(ev service.BattleEvent) {
	if p.every == 0 {
		p.every = max(ev.Total/10, 1)
	}
	if ev.Index%p.every != 0 && ev.Index != ev.Total-1 {
		return
	}
	logging.Info("battle stored", logging.Fields{
		constants.LogFieldBattleID: ev.BattleID,
		constants.LogFieldWinner:   ev.Winner,
		constants.LogFieldLoser:    ev.Loser,
		constants.LogFieldTurns:    ev.Turns,
		"index":                    ev.Index,
		"total":                    ev.Total,
	})
}

// cliFlags are the command-line overrides. set records which flags were
// given explicitly, so zero values can override the config too.
type cliFlags struct {
	config     string
	workers    int
	seed       int64
	maxSpecies int
	reset      bool
	quiet      bool
	set        map[string]bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("tournament", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", config.Path(), "battle configuration file")
	fs.IntVar(&f.workers, "workers", 0, "parallel battles (default from config)")
	fs.Int64Var(&f.seed, "seed", 0, "base seed (default from config)")
	fs.IntVar(&f.maxSpecies, "max-species", 0, "only species numbers up to this value, 0 for all (default from config)")
	fs.BoolVar(&f.reset, "reset", false, "delete previous battle logs first")
	fs.BoolVar(&f.quiet, "quiet", false, "only log errors")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	if f.workers < 0 || f.maxSpecies < 0 {
		return nil, fmt.Errorf("-workers and -max-species must not be negative")
	}
	return f, nil
}

// options applies the explicit flags over the configured defaults.
func (f *cliFlags) options(t config.TournamentConfig) service.TournamentOptions {
	opts := service.TournamentOptions{
		Workers:      t.Workers,
		Seed:         t.Seed,
		MaxSpeciesID: t.MaxSpeciesID,
		Reset:        f.reset,
	}
	if f.set["workers"] && f.workers > 0 {
		opts.Workers = f.workers
	}
	if f.set["seed"] {
		opts.Seed = f.seed
	}
	if f.set["max-species"] {
		opts.MaxSpeciesID = f.maxSpecies
	}
	return opts
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	quiet := flags.quiet

	logging.SetLevel(os.Getenv(constants.EnvLogLevel))
	if quiet {
		logging.SetLevel("error")
	}

	cfg, err := config.LoadConfig(flags.config)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{constants.LogFieldPath: flags.config})
	}
	opts := flags.options(cfg.Tournament)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logging.Fatal("Failed to load catalog", err, logging.Fields{constants.LogFieldPath: cfg.CatalogPath})
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		logging.Fatal("Failed to create database directory", err, logging.Fields{constants.LogFieldPath: cfg.DatabasePath})
	}
	db, err := storage.OpenAndMigrate(cfg.DatabasePath, cat)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldPath: cfg.DatabasePath})
	}
	repo := storage.NewSQLiteRepository(db)
	chart, err := storage.LoadTypeChart(repo)
	if err != nil {
		logging.Fatal("Failed to load type chart", err, nil)
	}
	eng := engine.New(chart, cfg.Engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub service.Publisher
	if !quiet {
		pub = &progress{}
	}
	res, err := service.RunTournament(ctx, repo, eng, opts, pub)
	if err != nil {
		logging.Fatal("Tournament failed", err, nil)
	}
	printSummary(os.Stdout, res)
}

func printSummary(w io.Writer, res *service.TournamentResult) {
	fmt.Fprintf(w, "Tournament finished in %s: %d entrants, %d battles, %d stalemates, %d skipped\n",
		res.Elapsed.Round(time.Millisecond), res.Entrants, res.Battles, res.Stalemates, res.Skipped)
}
