package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type combatantJSON struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Species struct {
		Number int      `json:"number"`
		Types  []string `json:"types"`
	} `json:"species"`
	Stats [6]int   `json:"stats"`
	Moves []string `json:"moves"`
}

func TestVersion(t *testing.T) {
	s := newTestServer(t, testToken)
	w := s.do(http.MethodGet, "/api/version", "", "")
	requireStatus(t, http.StatusOK, w)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "dev", body["version"])
}

func TestListCombatants(t *testing.T) {
	s := newTestServer(t, testToken)

	all := decode[[]combatantJSON](t, s.do(http.MethodGet, "/api/combatants", "", ""))
	require.Len(t, all, 3)

	w := s.do(http.MethodGet, "/api/combatants?q=SNOR", "", "")
	requireStatus(t, http.StatusOK, w)
	got := decode[[]combatantJSON](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, "Snorlax", got[0].Name)
	assert.Equal(t, 143, got[0].Species.Number)
	assert.Equal(t, []string{"normal"}, got[0].Species.Types)
	assert.Equal(t, []string{"tackle", "body-slam"}, got[0].Moves)
	assert.Equal(t, 150, got[0].Stats[0])
}

func TestGetCombatant(t *testing.T) {
	s := newTestServer(t, testToken)

	requireStatus(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/combatants/abc", "", ""))
	requireStatus(t, http.StatusNotFound, s.do(http.MethodGet, "/api/combatants/999", "", ""))

	w := s.do(http.MethodGet, "/api/combatants/2", "", "")
	requireStatus(t, http.StatusOK, w)
	body := decode[struct {
		Combatant       combatantJSON `json:"combatant"`
		Wins            int           `json:"wins"`
		WinPercentage   float64       `json:"win_percentage"`
		UsedMoves       []any         `json:"used_moves"`
		NoteworthyMoves []string      `json:"noteworthy_moves"`
	}](t, w)
	assert.Equal(t, "Snorlax", body.Combatant.Name)
	assert.Zero(t, body.Wins)
	assert.Zero(t, body.WinPercentage)
	assert.NotNil(t, body.UsedMoves)
	assert.Equal(t, []string{"body-slam"}, body.NoteworthyMoves)

	w = s.do(http.MethodGet, "/api/combatants/3", "", "")
	requireStatus(t, http.StatusOK, w)
	evo := decode[struct {
		Evolutions []string `json:"evolutions"`
	}](t, w)
	assert.Empty(t, evo.Evolutions)
}

func TestSearchMoves(t *testing.T) {
	s := newTestServer(t, testToken)
	w := s.do(http.MethodGet, "/api/moves?q=slam", "", "")
	requireStatus(t, http.StatusOK, w)
	moves := decode[[]map[string]any](t, w)
	require.Len(t, moves, 1)
	assert.Equal(t, "body-slam", moves[0]["name"])
	assert.Contains(t, moves[0], "id")
	assert.NotContains(t, moves[0], "CreatedAt")
}

func TestSimulateBattle(t *testing.T) {
	s := newTestServer(t, testToken)

	w := s.do(http.MethodPost, "/api/battles", `{"a": 2, "b": 3, "seed": 7}`, testToken)
	requireStatus(t, http.StatusCreated, w)
	created := decode[struct {
		Battle battleSummary `json:"battle"`
		Report string        `json:"report"`
	}](t, w)
	require.NotZero(t, created.Battle.ID)
	assert.Equal(t, int64(7), created.Battle.Seed)
	assert.Contains(t, created.Report, "is a winner with")

	w = s.do(http.MethodGet, "/api/battles/"+strconv.FormatUint(uint64(created.Battle.ID), 10), "", "")
	requireStatus(t, http.StatusOK, w)
	got := decode[struct {
		Battle battleSummary `json:"battle"`
		Report string        `json:"report"`
	}](t, w)
	assert.Equal(t, created.Report, got.Report)
	assert.Equal(t, created.Battle.Winner, got.Battle.Winner)

	list := decode[[]battleSummary](t, s.do(http.MethodGet, "/api/battles?species=bibarel", "", ""))
	assert.Len(t, list, 1)
	list = decode[[]battleSummary](t, s.do(http.MethodGet, "/api/battles?species=gengar", "", ""))
	assert.Empty(t, list)

	board := decode[[]map[string]any](t, s.do(http.MethodGet, "/api/leaderboard", "", ""))
	require.Len(t, board, 2)
	assert.Equal(t, 100.0, board[0]["win_percentage"])

	requireStatus(t, http.StatusNotFound, s.do(http.MethodGet, "/api/battles/999", "", ""))
	requireStatus(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/battles/0", "", ""))
}

func TestSimulateBattle_Errors(t *testing.T) {
	s := newTestServer(t, testToken)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"a": "x"}`, http.StatusBadRequest},
		{"missing side", `{"a": 2}`, http.StatusBadRequest},
		{"same combatant", `{"a": 2, "b": 2}`, http.StatusBadRequest},
		{"unknown combatant", `{"a": 2, "b": 99}`, http.StatusNotFound},
		{"stalemate", `{"a": 1, "b": 2, "seed": 3}`, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireStatus(t, tc.want, s.do(http.MethodPost, "/api/battles", tc.body, testToken))
		})
	}
	list := decode[[]battleSummary](t, s.do(http.MethodGet, "/api/battles", "", ""))
	assert.Empty(t, list)
}

func TestGetMatchup(t *testing.T) {
	s := newTestServer(t, testToken)

	requireStatus(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/matchups?a=2", "", ""))
	requireStatus(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/matchups?a=2&b=2", "", ""))
	requireStatus(t, http.StatusNotFound, s.do(http.MethodGet, "/api/matchups?a=2&b=50", "", ""))

	w := s.do(http.MethodGet, "/api/matchups?a=2&b=3", "", "")
	requireStatus(t, http.StatusOK, w)
	m := decode[map[string]matchupJSON](t, w)
	assert.Equal(t, "body-slam", m["a"].Selected)
	require.Len(t, m["a"].Scores, 1)
	assert.InDelta(t, 1.0, m["a"].Scores[0].WorstCase, 1e-9)
	assert.Equal(t, "tackle", m["b"].Selected)
}

type matchupJSON struct {
	Selected string `json:"selected"`
	Scores   []struct {
		Move      string  `json:"move"`
		WorstCase float64 `json:"worst_case"`
	} `json:"scores"`
}
