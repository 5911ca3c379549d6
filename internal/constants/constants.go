package constants

// Centralized constants for headers, env keys, routes and log fields.
const (
	// Environment variable keys
	EnvConfigPath   = "BATTLE_CONFIG"
	EnvDatabasePath = "BATTLE_DB"
	EnvAdminToken   = "ADMIN_TOKEN"
	EnvLogLevel     = "LOG_LEVEL"

	DefaultConfigPath = "./battle_config.json"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Authorization prefix
	BearerPrefix = "Bearer "
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteVersion       = "/version"
	RouteCombatants    = "/combatants"
	RouteCombatantByID = "/combatants/:id"
	RouteMoves         = "/moves"
	RouteLeaderboard   = "/leaderboard"
	RouteBattles       = "/battles"
	RouteBattleByID    = "/battles/:id"
	RouteMatchups      = "/matchups"
	RouteTournaments   = "/tournaments"
	RouteLive          = "/live"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest          = "Invalid request"
	ErrInvalidCombatantID      = "Invalid combatant ID"
	ErrInvalidBattleID         = "Invalid battle ID"
	ErrCombatantNotFound       = "Combatant not found"
	ErrBattleNotFound          = "Battle not found"
	ErrSameCombatant           = "A combatant cannot battle itself"
	ErrFailedFetchCombatants   = "Failed to fetch combatants"
	ErrFailedFetchMoves        = "Failed to fetch moves"
	ErrFailedFetchBattles      = "Failed to fetch battles"
	ErrFailedFetchLeaderboard  = "Failed to fetch leaderboard"
	ErrFailedFetchStandings    = "Failed to fetch standings"
	ErrFailedResolveBattle     = "Failed to resolve battle"
	ErrFailedEvaluateMatchup   = "Failed to evaluate matchup"
	ErrStalemate               = "Battle ended in a stalemate"
	ErrTournamentRunning       = "A tournament is already running"
	ErrFailedStartTournament   = "Failed to start tournament"
	ErrMatchupParamsRequired   = "query parameters a and b are required"
	ErrAuthRequired            = "Authentication required"
	ErrAdminTokenNotConfigured = "ADMIN_TOKEN not set on server"
)

// Logging field names
const (
	LogFieldBattleID    = "battle_id"
	LogFieldCombatantID = "combatant_id"
	LogFieldWinner      = "winner"
	LogFieldLoser       = "loser"
	LogFieldTurns       = "turns"
	LogFieldSeed        = "seed"
	LogFieldWorkers     = "workers"
	LogFieldBattles     = "battles"
	LogFieldStalemates  = "stalemates"
	LogFieldElapsed     = "elapsed"
	LogFieldSource      = "source"
	LogFieldName        = "name"
	LogFieldKey         = "key"
	LogFieldAddr        = "addr"
	LogFieldPath        = "path"
	LogFieldCount       = "count"
)
