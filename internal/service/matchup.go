package service

import (
	"github.com/stefank0/djangomon/internal/dedupe"
	"github.com/stefank0/djangomon/internal/engine"
	"github.com/stefank0/djangomon/internal/game"
	"github.com/stefank0/djangomon/internal/keys"
)

// MatchupSide is one combatant's view of a matchup at full HP.
type MatchupSide struct {
	Combatant game.Combatant     `json:"combatant"`
	Stats     game.StatTable     `json:"stats"`
	Scores    []engine.MoveScore `json:"scores"`
	Selected  string             `json:"selected"`
}

// Matchup evaluates two combatants against each other.
type Matchup struct {
	A MatchupSide `json:"a"`
	B MatchupSide `json:"b"`
}

type matchupRepo interface {
	GetCombatantsByIDs(ids []uint) ([]game.Combatant, error)
}

// EvaluateMatchup scores every reduced move of both sides by its worst-case
// win probability and reports the move each side would select.
func EvaluateMatchup(repo matchupRepo, eng *engine.Engine, aID, bID uint) (*Matchup, error) {
	v, err, _ := dedupe.MatchupGroup.Do(keys.MatchupKey(aID, bID), func() (interface{}, error) {
		a, b, err := loadPair(repo, aID, bID)
		if err != nil {
			return nil, err
		}
		sa, sb := engine.NewSide(a), engine.NewSide(b)
		left, err := evaluateSide(eng, sa, sb)
		if err != nil {
			return nil, err
		}
		right, err := evaluateSide(eng, sb, sa)
		if err != nil {
			return nil, err
		}
		return &Matchup{A: left, B: right}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Matchup), nil
}

func evaluateSide(eng *engine.Engine, self, opp engine.Side) (MatchupSide, error) {
	scores, err := eng.Evaluate(self, opp)
	if err != nil {
		return MatchupSide{}, err
	}
	sel, err := eng.SelectMove(self, opp)
	if err != nil {
		return MatchupSide{}, err
	}
	return MatchupSide{
		Combatant: *self.Combatant,
		Stats:     engine.EffectiveStats(self.Combatant),
		Scores:    scores,
		Selected:  sel.Name,
	}, nil
}
