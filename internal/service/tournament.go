package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stefank0/djangomon/internal/constants"
	"github.com/stefank0/djangomon/internal/engine"
	"github.com/stefank0/djangomon/internal/game"
	"github.com/stefank0/djangomon/internal/logging"
	"github.com/stefank0/djangomon/internal/storage"
)

var ErrTournamentRunning = errors.New("a tournament is already running")

// SeedStride separates the seeds of consecutive battles.
const SeedStride = 7919

const saveBatchSize = 100

type TournamentOptions struct {
	Workers int
	Seed    int64
	// MaxSpeciesID limits entrants by species number; 0 means everyone.
	MaxSpeciesID int
	// Reset clears previous battle logs before the first battle.
	Reset bool
}

type TournamentResult struct {
	Entrants   int           `json:"entrants"`
	Battles    int           `json:"battles"`
	Stalemates int           `json:"stalemates"`
	Skipped    int           `json:"skipped"`
	Elapsed    time.Duration `json:"elapsed"`
}

// BattleEvent announces one persisted tournament battle.
type BattleEvent struct {
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	BattleID uint   `json:"battle_id"`
	Winner   string `json:"winner"`
	Loser    string `json:"loser"`
	Turns    int    `json:"turns"`
	Seed     int64  `json:"seed"`
}

// Publisher receives battle events as they are persisted. Publish must not
// block.
type Publisher interface {
	Publish(ev BattleEvent)
}

type tournamentRepo interface {
	ListCombatants(f storage.CombatantFilter) ([]game.Combatant, error)
	SaveBattleLogs(logs []*game.BattleLog) error
	ClearBattleLogs() error
}

type pairing struct {
	index int
	a, b  int
}

// roundRobin lists every ordered pair of distinct entrants.
func roundRobin(n int) []pairing {
	out := make([]pairing, 0, n*(n-1))
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a != b {
				out = append(out, pairing{index: len(out), a: a, b: b})
			}
		}
	}
	return out
}

type battleResult struct {
	pairing
	seed    int64
	outcome *game.BattleOutcome
	err     error
}

// RunTournament lets every entrant battle every other entrant once per
// side. Battles run on a pool of opts.Workers goroutines; each uses its own
// generator seeded with opts.Seed + index*SeedStride, so the results do not
// depend on the worker count. Logs are written from the calling goroutine.
func RunTournament(ctx context.Context, repo tournamentRepo, eng *engine.Engine, opts TournamentOptions, pub Publisher) (*TournamentResult, error) {
	start := time.Now()
	entrants, err := repo.ListCombatants(storage.CombatantFilter{MaxSpeciesNumber: opts.MaxSpeciesID})
	if err != nil {
		return nil, err
	}
	if opts.Reset {
		if err := repo.ClearBattleLogs(); err != nil {
			return nil, err
		}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	pairs := roundRobin(len(entrants))
	res := &TournamentResult{Entrants: len(entrants)}
	logging.Info("tournament started", logging.Fields{
		constants.LogFieldCount:   len(entrants),
		constants.LogFieldBattles: len(pairs),
		constants.LogFieldWorkers: workers,
		constants.LogFieldSeed:    opts.Seed,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	results := make(chan battleResult, workers)
	waitErr := make(chan error, 1)

	go func() {
		for _, p := range pairs {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				seed := opts.Seed + int64(p.index)*SeedStride
				out, err := eng.ResolveBattle(&entrants[p.a], &entrants[p.b], engine.NewRand(seed))
				select {
				case results <- battleResult{pairing: p, seed: seed, outcome: out, err: err}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		waitErr <- g.Wait()
		close(results)
	}()

	var (
		batch   []*game.BattleLog
		events  []BattleEvent
		saveErr error
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := repo.SaveBattleLogs(batch); err != nil {
			return err
		}
		for i := range events {
			events[i].BattleID = batch[i].ID
			if pub != nil {
				pub.Publish(events[i])
			}
		}
		res.Battles += len(batch)
		batch, events = batch[:0], events[:0]
		return nil
	}

	for r := range results {
		if saveErr != nil {
			continue
		}
		if r.err != nil {
			a, b := entrants[r.a].Label(), entrants[r.b].Label()
			if errors.Is(r.err, game.ErrStalemate) {
				res.Stalemates++
			} else {
				res.Skipped++
			}
			logging.Info("battle skipped", logging.Fields{"a": a, "b": b, "reason": r.err.Error(), constants.LogFieldSeed: r.seed})
			continue
		}
		batch = append(batch, NewBattleLog(r.outcome, r.seed))
		events = append(events, BattleEvent{
			Index:  r.index,
			Total:  len(pairs),
			Winner: r.outcome.Winner.Label(),
			Loser:  r.outcome.Loser.Label(),
			Turns:  r.outcome.Turns,
			Seed:   r.seed,
		})
		if len(batch) >= saveBatchSize {
			if err := flush(); err != nil {
				saveErr = err
				cancel()
			}
		}
	}
	if saveErr == nil {
		saveErr = flush()
	}
	werr := <-waitErr
	if saveErr != nil {
		return res, fmt.Errorf("save battle logs: %w", saveErr)
	}
	if werr != nil {
		return res, werr
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	res.Elapsed = time.Since(start)
	logging.Info("tournament finished", logging.Fields{
		constants.LogFieldBattles:    res.Battles,
		constants.LogFieldStalemates: res.Stalemates,
		constants.LogFieldElapsed:    res.Elapsed.String(),
	})
	return res, nil
}

var tournamentRunning atomic.Bool

// StartTournament runs a tournament in the background and reports through
// done when it ends. Only one tournament runs at a time.
func StartTournament(ctx context.Context, repo tournamentRepo, eng *engine.Engine, opts TournamentOptions, pub Publisher, done func(*TournamentResult, error)) error {
	if !tournamentRunning.CompareAndSwap(false, true) {
		return ErrTournamentRunning
	}
	go func() {
		res, err := RunTournament(ctx, repo, eng, opts, pub)
		tournamentRunning.Store(false)
		if err != nil {
			logging.Error("tournament failed", err, nil)
		}
		if done != nil {
			done(res, err)
		}
	}()
	return nil
}
