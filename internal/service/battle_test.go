package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefank0/djangomon/internal/game"
)

func TestNewBattleLog(t *testing.T) {
	a := combatant(1, 1, "a", "normal", 50)
	b := combatant(2, 2, "b", "normal", 50)
	out := &game.BattleOutcome{
		Winner: &a,
		Loser:  &b,
		Turns:  2,
		Events: []game.TurnEvent{
			{Turn: 1, Slot: 0, ActorID: 1, Move: "tackle"},
			{Turn: 1, Slot: 1, ActorID: 2, Move: "growl"},
			{Turn: 2, Slot: 0, ActorID: 1, Move: "body-slam"},
			{Turn: 2, Slot: 1, ActorID: 2, Move: "growl"},
			{Turn: 3, Slot: 0, ActorID: 1, Move: "tackle"},
		},
	}
	l := NewBattleLog(out, 42)
	assert.Equal(t, uint(1), l.WinnerID)
	assert.Equal(t, uint(2), l.LoserID)
	assert.Equal(t, int64(42), l.Seed)
	assert.Equal(t, []game.MoveUsage{
		{CombatantID: 1, MoveName: "tackle", Count: 2},
		{CombatantID: 1, MoveName: "body-slam", Count: 1},
		{CombatantID: 2, MoveName: "growl", Count: 2},
	}, l.MoveUsages)
}

func TestNewBattleLog_SharedIDsStaySeparate(t *testing.T) {
	a := combatant(0, 1, "a", "normal", 50)
	b := combatant(0, 2, "b", "normal", 50)
	out := &game.BattleOutcome{
		Winner:     &b,
		Loser:      &a,
		WinnerSlot: 1,
		Events: []game.TurnEvent{
			{Slot: 0, Move: "tackle"},
			{Slot: 1, Move: "tackle"},
			{Slot: 0, Move: "tackle"},
		},
	}
	l := NewBattleLog(out, 1)
	assert.Equal(t, []game.MoveUsage{
		{MoveName: "tackle", Count: 1},
		{MoveName: "tackle", Count: 2},
	}, l.MoveUsages)
}

func TestSimulateBattle(t *testing.T) {
	repo := testRepo()
	eng := testEngine(t)

	l, err := SimulateBattle(repo, eng, 1, 3, 7)
	require.NoError(t, err)
	require.Len(t, repo.logs, 1)
	assert.Equal(t, uint(1), l.ID)
	// snorlax outclasses raticate
	assert.Equal(t, uint(1), l.WinnerID)
	assert.Equal(t, "snorlax", l.Winner.Species.Name)
	assert.Contains(t, l.Report, "is a winner with")
	assert.NotEmpty(t, l.MoveUsages)

	again, err := SimulateBattle(repo, eng, 1, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, l.Report, again.Report)
}

func TestSimulateBattle_Errors(t *testing.T) {
	repo := testRepo()
	eng := testEngine(t)

	_, err := SimulateBattle(repo, eng, 1, 1, 1)
	assert.ErrorIs(t, err, ErrSameCombatant)

	_, err = SimulateBattle(repo, eng, 1, 99, 1)
	assert.ErrorIs(t, err, ErrCombatantNotFound)

	// neither side can touch the other
	_, err = SimulateBattle(repo, eng, 1, 2, 1)
	assert.ErrorIs(t, err, game.ErrStalemate)
	assert.Empty(t, repo.logs)
}
