package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stefank0/djangomon/internal/constants"
	"github.com/stefank0/djangomon/internal/game"
	"github.com/stefank0/djangomon/internal/logging"
	"github.com/stefank0/djangomon/internal/service"
)

type battleSummary struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	WinnerID  uint      `json:"winner_id"`
	Winner    string    `json:"winner"`
	LoserID   uint      `json:"loser_id"`
	Loser     string    `json:"loser"`
	Turns     int       `json:"turns"`
	Seed      int64     `json:"seed"`
}

func newBattleSummary(l *game.BattleLog) battleSummary {
	return battleSummary{
		ID:        l.ID,
		CreatedAt: l.CreatedAt,
		WinnerID:  l.WinnerID,
		Winner:    l.Winner.DisplayName(),
		LoserID:   l.LoserID,
		Loser:     l.Loser.DisplayName(),
		Turns:     l.Turns,
		Seed:      l.Seed,
	}
}

// ListBattles returns the most recent battle logs, optionally filtered by
// ?species= on either side.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	logs, err := h.repo.SearchBattleLogs(c.Query("species"), queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out := make([]battleSummary, 0, len(logs))
	for i := range logs {
		out = append(out, newBattleSummary(&logs[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetBattle returns one battle log including its transcript.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	l, err := h.repo.GetBattleLogByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	usages, err := MarshalIntoSnakeTimestamps(l.MoveUsages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"battle":      newBattleSummary(l),
		"report":      l.Report,
		"move_usages": usages,
	})
}

type SimulatePayload struct {
	A    uint  `json:"a" binding:"required"`
	B    uint  `json:"b" binding:"required"`
	Seed int64 `json:"seed"`
}

// SimulateBattle resolves and stores one battle between two combatants.
func (h *BattleHandler) SimulateBattle(c *gin.Context) {
	var req SimulatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	l, err := service.SimulateBattle(h.repo, h.engine, req.A, req.B, req.Seed)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSameCombatant):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrSameCombatant})
		case errors.Is(err, service.ErrCombatantNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCombatantNotFound})
		case errors.Is(err, game.ErrStalemate):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrStalemate, constants.JSONKeyDetails: err.Error()})
		case errors.Is(err, game.ErrInvalidState):
			c.JSON(http.StatusUnprocessableEntity, gin.H{constants.JSONKeyError: constants.ErrFailedResolveBattle, constants.JSONKeyDetails: err.Error()})
		default:
			logging.Error("simulate battle failed", err, logging.Fields{constants.LogFieldSeed: req.Seed})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveBattle})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"battle": newBattleSummary(l),
		"report": l.Report,
	})
}

// GetMatchup scores both sides of ?a=&b= at full HP.
func (h *BattleHandler) GetMatchup(c *gin.Context) {
	a, okA := parseID(c.Query("a"))
	b, okB := parseID(c.Query("b"))
	if !okA || !okB {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMatchupParamsRequired})
		return
	}
	m, err := service.EvaluateMatchup(h.repo, h.engine, a, b)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSameCombatant):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrSameCombatant})
		case errors.Is(err, service.ErrCombatantNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCombatantNotFound})
		case errors.Is(err, game.ErrInvalidState):
			c.JSON(http.StatusUnprocessableEntity, gin.H{constants.JSONKeyError: constants.ErrFailedEvaluateMatchup, constants.JSONKeyDetails: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEvaluateMatchup})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"a": newMatchupView(&m.A),
		"b": newMatchupView(&m.B),
	})
}

type moveScoreView struct {
	Move           string  `json:"move"`
	WorstCase      float64 `json:"worst_case"`
	ExpectedDamage float64 `json:"expected_damage"`
}

type matchupView struct {
	Combatant combatantView   `json:"combatant"`
	Scores    []moveScoreView `json:"scores"`
	Selected  string          `json:"selected"`
}

func newMatchupView(s *service.MatchupSide) matchupView {
	v := matchupView{
		Combatant: newCombatantView(&s.Combatant),
		Scores:    make([]moveScoreView, 0, len(s.Scores)),
		Selected:  s.Selected,
	}
	for _, sc := range s.Scores {
		v.Scores = append(v.Scores, moveScoreView{Move: sc.Move.Name, WorstCase: sc.WorstCase, ExpectedDamage: sc.ExpectedDamage})
	}
	return v
}

type TournamentPayload struct {
	Workers      int    `json:"workers"`
	Seed         *int64 `json:"seed"`
	MaxSpeciesID *int   `json:"max_species_id"`
	Reset        bool   `json:"reset"`
}

// StartTournament launches a round-robin tournament in the background.
// Battles are streamed to live feed subscribers as they are stored.
func (h *BattleHandler) StartTournament(c *gin.Context) {
	var req TournamentPayload
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
	}
	opts := service.TournamentOptions{
		Workers:      h.tournament.Workers,
		Seed:         h.tournament.Seed,
		MaxSpeciesID: h.tournament.MaxSpeciesID,
		Reset:        req.Reset,
	}
	if req.Workers > 0 {
		opts.Workers = req.Workers
	}
	if req.Seed != nil {
		opts.Seed = *req.Seed
	}
	if req.MaxSpeciesID != nil && *req.MaxSpeciesID >= 0 {
		opts.MaxSpeciesID = *req.MaxSpeciesID
	}
	err := service.StartTournament(h.ctx, h.repo, h.engine, opts, h.hub, func(res *service.TournamentResult, err error) {
		if err != nil || res == nil {
			return
		}
		logging.Info("tournament finished", logging.Fields{
			constants.LogFieldBattles:    res.Battles,
			constants.LogFieldStalemates: res.Stalemates,
			constants.LogFieldElapsed:    res.Elapsed.String(),
		})
	})
	if err != nil {
		if errors.Is(err, service.ErrTournamentRunning) {
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrTournamentRunning})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStartTournament})
		return
	}
	logging.Info("tournament started", logging.Fields{constants.LogFieldWorkers: opts.Workers, constants.LogFieldSeed: opts.Seed})
	c.JSON(http.StatusAccepted, gin.H{
		constants.JSONKeyStatus: "started",
		"workers":               opts.Workers,
		"seed":                  opts.Seed,
		"max_species_id":        opts.MaxSpeciesID,
	})
}
