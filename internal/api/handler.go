package api

import (
	"context"

	"github.com/stefank0/djangomon/internal/config"
	"github.com/stefank0/djangomon/internal/engine"
	"github.com/stefank0/djangomon/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	ctx        context.Context
	repo       storage.Repository
	engine     *engine.Engine
	hub        *Hub
	tournament config.TournamentConfig
}

// NewBattleHandler creates a BattleHandler. Tournaments started through the
// API run until ctx is cancelled and publish their battles to hub.
func NewBattleHandler(ctx context.Context, repo storage.Repository, eng *engine.Engine, hub *Hub, tournament config.TournamentConfig) *BattleHandler {
	return &BattleHandler{ctx: ctx, repo: repo, engine: eng, hub: hub, tournament: tournament}
}
