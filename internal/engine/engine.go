package engine

import (
	"math/rand"

	"github.com/stefank0/djangomon/internal/game"
)

// Options bounds the decision horizon and the battle loop.
type Options struct {
	// Horizon is the number of turns the outcome distributions look ahead.
	Horizon int
	// MaxTurns caps a battle; exceeding it is a stalemate.
	MaxTurns int
	// MaxIdleTurns caps consecutive turns in which no HP changed.
	MaxIdleTurns int
}

const (
	DefaultHorizon      = 10
	DefaultMaxTurns     = 500
	DefaultMaxIdleTurns = 50
)

// DefaultOptions returns the standard bounds.
func DefaultOptions() Options {
	return Options{Horizon: DefaultHorizon, MaxTurns: DefaultMaxTurns, MaxIdleTurns: DefaultMaxIdleTurns}
}

// Engine evaluates and resolves battles against one type chart. It holds no
// mutable state and may be shared between goroutines.
type Engine struct {
	chart *game.TypeChart
	opts  Options
}

// New returns an Engine. Zero option fields fall back to the defaults.
func New(chart *game.TypeChart, opts Options) *Engine {
	d := DefaultOptions()
	if opts.Horizon <= 0 {
		opts.Horizon = d.Horizon
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = d.MaxTurns
	}
	if opts.MaxIdleTurns <= 0 {
		opts.MaxIdleTurns = d.MaxIdleTurns
	}
	return &Engine{chart: chart, opts: opts}
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Rand is the random source used by battle resolution. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a seeded generator; seed 0 is mapped to 1.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

func (e *Engine) effectiveness(moveType string, defender game.Species) float64 {
	if e.chart == nil {
		return 1.0
	}
	return e.chart.Against(moveType, defender)
}
