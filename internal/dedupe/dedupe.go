package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent requests for the same expensive computation. Only one job runs
// for a given key while other callers wait for its result.

import "golang.org/x/sync/singleflight"

// StandingsGroup deduplicates standings computations keyed by
// keys.StandingsKey.
var StandingsGroup singleflight.Group

// MatchupGroup deduplicates matchup evaluations keyed by keys.MatchupKey.
var MatchupGroup singleflight.Group
