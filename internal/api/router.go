package api

import (
	"github.com/gin-gonic/gin"

	"github.com/stefank0/djangomon/internal/constants"
)

// RegisterRoutes mounts the API under /api. Mutating endpoints require the
// admin token.
func RegisterRoutes(router *gin.Engine, h *BattleHandler, adminToken string) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteCombatants, h.ListCombatants)
		apiRoutes.GET(constants.RouteCombatantByID, h.GetCombatant)
		apiRoutes.GET(constants.RouteMoves, h.SearchMoves)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.GET(constants.RouteBattles, h.ListBattles)
		apiRoutes.GET(constants.RouteBattleByID, h.GetBattle)
		apiRoutes.GET(constants.RouteMatchups, h.GetMatchup)
		apiRoutes.GET(constants.RouteLive, h.hub.ServeLive)

		admin := apiRoutes.Group("")
		admin.Use(AdminRequired(adminToken))
		admin.POST(constants.RouteBattles, h.SimulateBattle)
		admin.POST(constants.RouteTournaments, h.StartTournament)
	}
}
