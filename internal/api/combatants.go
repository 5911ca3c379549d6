package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stefank0/djangomon/internal/constants"
	"github.com/stefank0/djangomon/internal/engine"
	"github.com/stefank0/djangomon/internal/game"
	"github.com/stefank0/djangomon/internal/logging"
	"github.com/stefank0/djangomon/internal/service"
	"github.com/stefank0/djangomon/internal/storage"
)

type speciesView struct {
	Number    int            `json:"number"`
	Name      string         `json:"name"`
	Types     []string       `json:"types"`
	BaseStats game.StatTable `json:"base_stats"`
}

type combatantView struct {
	ID      uint           `json:"id"`
	Name    string         `json:"name"`
	Species speciesView    `json:"species"`
	Nature  string         `json:"nature"`
	Ability string         `json:"ability,omitempty"`
	Level   int            `json:"level"`
	Stats   game.StatTable `json:"stats"`
	Moves   []string       `json:"moves"`
}

func newCombatantView(c *game.Combatant) combatantView {
	v := combatantView{
		ID:      c.ID,
		Name:    c.DisplayName(),
		Species: speciesView{
			Number:    c.Species.Number,
			Name:      c.Species.Name,
			Types:     []string{c.Species.Type1},
			BaseStats: c.Species.BaseStats,
		},
		Nature:  c.Nature.Name,
		Ability: c.Ability.Name,
		Level:   c.Level,
		Stats:   engine.EffectiveStats(c),
		Moves:   make([]string, 0, len(c.Moves)),
	}
	if c.Species.Type2 != "" {
		v.Species.Types = append(v.Species.Types, c.Species.Type2)
	}
	for _, m := range c.Moves {
		v.Moves = append(v.Moves, m.Name)
	}
	return v
}

// ListCombatants returns combatants, optionally filtered by ?q= on the
// species name.
func (h *BattleHandler) ListCombatants(c *gin.Context) {
	cs, err := h.repo.ListCombatants(storage.CombatantFilter{Query: c.Query("q")})
	if err != nil {
		logging.Error("list combatants failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCombatants})
		return
	}
	out := make([]combatantView, 0, len(cs))
	for i := range cs {
		out = append(out, newCombatantView(&cs[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetCombatant returns a combatant together with its standing.
func (h *BattleHandler) GetCombatant(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCombatantID})
		return
	}
	s, err := service.GetStandings(h.repo, id)
	if err != nil {
		if errors.Is(err, service.ErrCombatantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCombatantNotFound})
			return
		}
		logging.Error("standings failed", err, logging.Fields{constants.LogFieldCombatantID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStandings})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"combatant":        newCombatantView(&s.Combatant),
		"wins":             s.Wins,
		"losses":           s.Losses,
		"win_percentage":   s.WinPercentage,
		"used_moves":       s.UsedMoves,
		"noteworthy_moves": s.NoteworthyMoves,
		"evolutions":       s.Evolutions,
	})
}

// SearchMoves returns moves whose name contains ?q=.
func (h *BattleHandler) SearchMoves(c *gin.Context) {
	moves, err := h.repo.SearchMoves(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMoves})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(moves)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMoves})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top combatants by win percentage, limited to
// top 10 by default.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	board, err := service.GetLeaderboard(h.repo, queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	type row struct {
		Rank          int           `json:"rank"`
		Combatant     combatantView `json:"combatant"`
		Wins          int64         `json:"wins"`
		Losses        int64         `json:"losses"`
		WinPercentage float64       `json:"win_percentage"`
	}
	out := make([]row, 0, len(board))
	for i := range board {
		e := &board[i]
		out = append(out, row{
			Rank:          e.Rank,
			Combatant:     newCombatantView(&e.Combatant),
			Wins:          e.Wins,
			Losses:        e.Losses,
			WinPercentage: e.WinPercentage,
		})
	}
	c.JSON(http.StatusOK, out)
}
